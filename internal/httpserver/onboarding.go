package httpserver

import (
	"log"
	"net/http"

	onboardingsvc "bossboarding/internal/service/onboarding"
	"github.com/gin-gonic/gin"
)

func onboardingResolveHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := deps.Onboarding.Resolve(c.Request.Context(), c.Param("token"))
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

func onboardingSaveHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req onboardingsvc.SaveInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		session, err := deps.Onboarding.SaveProgress(c.Request.Context(), c.Param("token"), req)
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

func onboardingSubmitHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := deps.Onboarding.Submit(c.Request.Context(), c.Param("token"))
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}
