package httpserver

import (
	"errors"
	"log"
	"net/http"

	"bossboarding/internal/domain"
	"bossboarding/internal/progress"
	identitysvc "bossboarding/internal/service/identity"
	"github.com/gin-gonic/gin"
)

type portalRegisterRequest struct {
	CustomerID string            `json:"customerId" binding:"required"`
	Email      string            `json:"email" binding:"required"`
	Name       string            `json:"name"`
	Password   string            `json:"password" binding:"required"`
	Role       domain.PortalRole `json:"role"`
}

func portalRegisterHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req portalRegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "customerId, email and password required")
			return
		}
		if req.Role == "" {
			req.Role = domain.PortalRoleOwner
		}
		u, err := deps.Identity.RegisterPortalUser(c.Request.Context(), req.CustomerID, req.Email, req.Name, req.Password, req.Role)
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

func portalLoginHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "email and password required")
			return
		}
		u, token, err := deps.Identity.PortalLogin(c.Request.Context(), req.Email, req.Password)
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

// portalStatusHandler is the post-submission status check: lifecycle
// status, progress percentage and the stage timeline for the user's
// customer, nothing editable.
func portalStatusHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := portalFromContext(c)
		if u == nil {
			respondError(c, http.StatusUnauthorized, "invalid token")
			return
		}
		cust, _, err := deps.CustomerSvc.Get(c.Request.Context(), u.CustomerID)
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"businessName":    cust.BusinessName,
			"status":          cust.Status,
			"progressPercent": progress.OverallPercent(deps.Catalog, cust.TaskStatuses),
			"timeline":        progress.Timeline(deps.Catalog, *cust),
		})
	}
}
