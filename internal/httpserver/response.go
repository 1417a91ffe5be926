package httpserver

import (
	"context"
	"errors"
	"net/http"

	"bossboarding/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is written when the client went away before a
// response could be produced.
const statusClientClosedRequest = 499

// respondError writes the {error} envelope. Messages passed here are safe
// for clients; raw store errors go through respondInternal instead.
func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// respondInternal logs the cause and returns a generic message, never the
// raw error text. A canceled request context becomes a 499 with no body
// logged as an error.
func respondInternal(c *gin.Context, logger interface{ Printf(string, ...interface{}) }, err error) {
	if errors.Is(err, context.Canceled) || c.Request.Context().Err() != nil {
		c.Status(statusClientClosedRequest)
		c.Abort()
		return
	}
	logger.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	respondError(c, http.StatusInternalServerError, "internal error")
}

// respondDomainError maps domain sentinels to statuses, falling back to a
// logged 500.
func respondDomainError(c *gin.Context, logger interface{ Printf(string, ...interface{}) }, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(c, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrCompleted):
		respondError(c, http.StatusGone, "onboarding already completed")
	default:
		respondInternal(c, logger, err)
	}
}
