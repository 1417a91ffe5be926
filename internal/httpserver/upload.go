package httpserver

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// uploadHandler stores one multipart file and returns its public location.
// The client enforces the size cap before sending; the server re-checks it.
func uploadHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			respondError(c, http.StatusBadRequest, "multipart field 'file' required")
			return
		}
		if max := deps.Uploads.MaxBytes(); max > 0 && fh.Size > max {
			respondError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d byte limit", max))
			return
		}
		res, err := deps.Uploads.Save(fh)
		if err != nil {
			respondInternal(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}
