package httpserver

import (
	"log"
	"net/http"
	"time"

	"bossboarding/internal/commission"
	"github.com/gin-gonic/gin"
)

// commissionsHandler serves the commission report. ?format=csv|xlsx streams
// a file download; the default is JSON.
func commissionsHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := commission.Filter{
			RepID:         c.Query("rep"),
			PaymentStatus: commission.PaymentStatus(c.Query("paymentStatus")),
		}
		var err error
		if f.From, err = parseDate(c.Query("from")); err != nil {
			respondError(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		if f.To, err = parseDate(c.Query("to")); err != nil {
			respondError(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}

		switch c.Query("format") {
		case "csv":
			c.Header("Content-Type", "text/csv")
			c.Header("Content-Disposition", `attachment; filename="commissions.csv"`)
			if err := deps.Reports.WriteCSV(c.Request.Context(), c.Writer, f); err != nil {
				respondInternal(c, logger, err)
			}
		case "xlsx":
			c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Header("Content-Disposition", `attachment; filename="commissions.xlsx"`)
			if err := deps.Reports.WriteXLSX(c.Request.Context(), c.Writer, f); err != nil {
				respondInternal(c, logger, err)
			}
		default:
			entries, err := deps.Reports.Commissions(c.Request.Context(), f)
			if err != nil {
				respondInternal(c, logger, err)
				return
			}
			if entries == nil {
				entries = []commission.Entry{}
			}
			c.JSON(http.StatusOK, gin.H{"entries": entries})
		}
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
