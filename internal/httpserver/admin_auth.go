package httpserver

import (
	"errors"
	"log"
	"net/http"

	"bossboarding/internal/domain"
	identitysvc "bossboarding/internal/service/identity"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func adminLoginHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "email and password required")
			return
		}
		u, token, err := deps.Identity.AdminLogin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, identitysvc.ErrInvalidCredentials) {
				respondError(c, http.StatusUnauthorized, "invalid credentials")
				return
			}
			respondInternal(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
	}
}

func adminLogoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := c.Get(ctxAuthToken); ok {
			deps.Identity.Logout(c.Request.Context(), token.(string))
		}
		c.Status(http.StatusNoContent)
	}
}

type passwordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

func adminPasswordResetRequestHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req passwordResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "email required")
			return
		}
		base := c.GetHeader("Origin")
		if base == "" {
			base = "http://" + c.Request.Host
		}
		if err := deps.Identity.RequestAdminPasswordReset(c.Request.Context(), req.Email, base); err != nil {
			respondInternal(c, logger, err)
			return
		}
		// Always 202 so callers cannot probe which emails exist.
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
	}
}

type passwordResetConfirm struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func adminPasswordResetConfirmHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req passwordResetConfirm
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "token and password required")
			return
		}
		err := deps.Identity.ResetAdminPassword(c.Request.Context(), req.Token, req.Password)
		if err != nil {
			if errors.Is(err, identitysvc.ErrInvalidToken) {
				respondError(c, http.StatusUnauthorized, "invalid or expired reset token")
				return
			}
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "password updated"})
	}
}

type createAdminRequest struct {
	Email    string           `json:"email" binding:"required"`
	Name     string           `json:"name"`
	Password string           `json:"password" binding:"required"`
	Role     domain.AdminRole `json:"role"`
}

func adminCreateUserHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "email and password required")
			return
		}
		if req.Role == "" {
			req.Role = domain.AdminRoleAdmin
		}
		u, err := deps.Identity.CreateAdmin(c.Request.Context(), req.Email, req.Name, req.Password, req.Role)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				respondError(c, http.StatusConflict, "email already registered")
				return
			}
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": u})
	}
}

func adminListUsersHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := deps.Identity.ListAdmins(c.Request.Context())
		if err != nil {
			respondInternal(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

func adminDeleteUserHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Identity.DeleteAdmin(c.Request.Context(), c.Param("id")); err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
