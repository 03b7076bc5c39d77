package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"vibezone/services/booking"
	"vibezone/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes force transitions and booking listings for the
// operator's tooling.
type AdminHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc booking.BookingService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Service: svc, Logger: logger}
}

// ListBookings handles GET /api/admin/bookings?status=&limit=.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	bookings, err := h.Service.ListBookings(status, limit)
	if err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		h.Logger.Error("Admin booking list failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "unable to list bookings", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// ConfirmBooking handles POST /api/admin/bookings/:id/confirm.
func (h *AdminHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.Service.AdminConfirm)
}

// CancelBooking handles POST /api/admin/bookings/:id/cancel.
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.Service.AdminCancel)
}

// ExpireBooking handles POST /api/admin/bookings/:id/expire.
func (h *AdminHandler) ExpireBooking(c *gin.Context) {
	h.transition(c, h.Service.AdminExpire)
}

func (h *AdminHandler) transition(c *gin.Context, fn func(ctx context.Context, bookingID string) error) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking id is required"})
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, booking.ErrStateConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.Logger.Error("Admin transition failed", zap.String("booking_id", id), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "transition failed", "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookingId": id})
}
