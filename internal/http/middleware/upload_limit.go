package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxUploadSize caps the request body for upload routes. The cap is enforced
// while the multipart form is read, so an oversized payload fails before any
// bytes reach blob storage.
func MaxUploadSize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
