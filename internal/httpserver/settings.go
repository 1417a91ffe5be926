package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func getSettingsHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := deps.Settings.GetAll(c.Request.Context())
		if err != nil {
			respondInternal(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

func putSettingsHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req map[string]string
		if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
			respondError(c, http.StatusBadRequest, "expected a non-empty key/value object")
			return
		}
		for k, v := range req {
			if err := deps.Settings.Set(c.Request.Context(), k, v); err != nil {
				respondInternal(c, logger, err)
				return
			}
		}
		settings, err := deps.Settings.GetAll(c.Request.Context())
		if err != nil {
			respondInternal(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}
