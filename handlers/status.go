package handlers

import (
	"errors"
	"net/http"

	"vibezone/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingStatus handles GET /api/bookings/status?bookingId=&sessionId=.
// The session id must match the one recorded at checkout before any data
// comes back; a mismatch is indistinguishable from a missing booking.
func (h *BookingHandler) BookingStatus(c *gin.Context) {
	bookingID := c.Query("bookingId")
	sessionID := c.Query("sessionId")
	if bookingID == "" || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookingId and sessionId are required"})
		return
	}

	b, err := h.Service.GetBookingForSession(bookingID, sessionID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.Logger.Error("Booking status lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to fetch booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}
