package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

func sendEmailHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "to, subject and body required")
			return
		}
		if err := deps.Mailer.Send(req.To, req.Subject, req.Body); err != nil {
			logger.Printf("email send to %s failed: %v", req.To, err)
			respondError(c, http.StatusBadGateway, "email delivery failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "sent"})
	}
}

func testEmailHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !deps.Mailer.Enabled() {
			respondError(c, http.StatusServiceUnavailable, "smtp not configured")
			return
		}
		u := adminFromContext(c)
		if u == nil {
			respondError(c, http.StatusUnauthorized, "invalid token")
			return
		}
		body := "<html><body><p>This is a BossBoarding test email. SMTP is configured correctly.</p></body></html>"
		if err := deps.Mailer.Send(u.Email, "BossBoarding test email", body); err != nil {
			logger.Printf("test email to %s failed: %v", u.Email, err)
			respondError(c, http.StatusBadGateway, "email delivery failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "sent", "to": u.Email})
	}
}
