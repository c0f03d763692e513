package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/overair/overair-backend/internal/http/response"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthPayload struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbState := "connected"
	status := http.StatusOK
	if err := h.ping(c); err != nil {
		dbState = "disconnected"
		status = http.StatusServiceUnavailable
	}
	payload := healthPayload{
		Status:    "OK",
		Database:  dbState,
		Timestamp: time.Now().UTC(),
	}
	if status != http.StatusOK {
		payload.Status = "DEGRADED"
	}
	c.JSON(status, response.Envelope{
		Success: status == http.StatusOK,
		Message: "Health check",
		Data:    payload,
	})
}

func (h *HealthHandler) ping(c *gin.Context) error {
	if h.db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}
