package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"bossboarding/internal/domain"
	identitysvc "bossboarding/internal/service/identity"
	"github.com/gin-gonic/gin"
)

const (
	ctxAdminUser  = "adminUser"
	ctxPortalUser = "portalUser"
	ctxAuthToken  = "authToken"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// adminAuth resolves the bearer token to a staff user.
func adminAuth(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		u, err := deps.Identity.AdminByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, identitysvc.ErrInvalidToken) {
				respondError(c, http.StatusUnauthorized, "invalid token")
			} else {
				respondInternal(c, logger, err)
			}
			c.Abort()
			return
		}
		c.Set(ctxAdminUser, u)
		c.Set(ctxAuthToken, token)
		c.Next()
	}
}

// superAdminOnly gates user management behind the super_admin role.
func superAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := adminFromContext(c)
		if u == nil || u.Role != domain.AdminRoleSuper {
			respondError(c, http.StatusForbidden, "super_admin required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// portalAuth resolves the bearer token to a portal user.
func portalAuth(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		u, err := deps.Identity.PortalUserByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, identitysvc.ErrInvalidToken) {
				respondError(c, http.StatusUnauthorized, "invalid token")
			} else {
				respondInternal(c, logger, err)
			}
			c.Abort()
			return
		}
		c.Set(ctxPortalUser, u)
		c.Next()
	}
}

func adminFromContext(c *gin.Context) *domain.AdminUser {
	if v, ok := c.Get(ctxAdminUser); ok {
		if u, ok := v.(*domain.AdminUser); ok {
			return u
		}
	}
	return nil
}

func portalFromContext(c *gin.Context) *domain.CustomerUser {
	if v, ok := c.Get(ctxPortalUser); ok {
		if u, ok := v.(*domain.CustomerUser); ok {
			return u
		}
	}
	return nil
}
