package handlers

import (
	"crypto/subtle"
	"net/http"

	"vibezone/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SweepHandler exposes the expiry/reminder sweep to external schedulers.
type SweepHandler struct {
	Service booking.BookingService
	Secret  string
	Logger  *zap.Logger
}

// NewSweepHandler creates a SweepHandler.
func NewSweepHandler(svc booking.BookingService, secret string, logger *zap.Logger) *SweepHandler {
	return &SweepHandler{Service: svc, Secret: secret, Logger: logger}
}

// RunSweep handles POST /api/sweep, guarded by a shared-secret header.
func (h *SweepHandler) RunSweep(c *gin.Context) {
	provided := c.GetHeader("X-Sweep-Secret")
	if h.Secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.Secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := h.Service.Sweep(c.Request.Context())
	if err != nil {
		h.Logger.Error("Sweep invocation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sweep failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "sweep completed",
		"count":   summary.Count,
		"results": summary.Results,
	})
}
