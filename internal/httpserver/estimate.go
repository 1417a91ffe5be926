package httpserver

import (
	"errors"
	"log"
	"net/http"

	"bossboarding/internal/estimate"
	"bossboarding/internal/progress"
	"github.com/gin-gonic/gin"
)

// estimateHandler asks the configured text provider for a completion-date
// estimate. Advisory only; failures never affect stored state.
func estimateHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cust, _, err := deps.CustomerSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}

		remaining := 0
		for _, sv := range progress.Timeline(deps.Catalog, *cust) {
			if sv.Status != progress.StageComplete {
				remaining++
			}
		}
		pct := progress.OverallPercent(deps.Catalog, cust.TaskStatuses)

		text, err := deps.Estimator.CompletionDate(c.Request.Context(), cust.BusinessName, pct, remaining)
		if err != nil {
			if errors.Is(err, estimate.ErrDisabled) {
				respondError(c, http.StatusServiceUnavailable, "estimate provider not configured")
				return
			}
			logger.Printf("estimate for customer %s failed: %v", cust.ID, err)
			respondError(c, http.StatusBadGateway, "estimate provider unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"estimate": text, "progressPercent": pct})
	}
}
