package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/overair/overair-backend/internal/platform/apierr"
)

// Envelope is the uniform response body for every endpoint. Details is only
// populated for server errors outside production deployments.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Details string `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func OK(c *gin.Context, data any, message string) {
	Success(c, http.StatusOK, data, message)
}

func Created(c *gin.Context, data any, message string) {
	Success(c, http.StatusCreated, data, message)
}

// NoContent signals "success but nothing applicable", e.g. no update
// available. 204 carries no body by definition.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Err maps any error onto the envelope via the apierr taxonomy. Causes of
// unexpected failures are exposed through Details only when exposeDetails is
// set (non-production deployments).
func Err(c *gin.Context, err error, exposeDetails bool) {
	ae := apierr.From(err)
	message := ae.Error()
	details := ""
	if ae.Code == apierr.CodeInternal {
		message = "an unexpected server error occurred"
		if exposeDetails && ae.Err != nil {
			details = ae.Err.Error()
		}
	} else if ae.Status >= http.StatusInternalServerError && exposeDetails && ae.Err != nil {
		details = ae.Err.Error()
	}
	c.JSON(ae.Status, Envelope{
		Success: false,
		Message: message,
		Details: details,
	})
}
