package handlers

import (
	"errors"
	"net/http"

	"vibezone/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type checkoutRequest struct {
	BookingID     string `json:"bookingId"`
	PackageType   string `json:"packageType"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	EventDate     string `json:"eventDate"`
	EventDetails  string `json:"eventDetails"`
	Notes         string `json:"notes"`
}

// StartCheckout handles POST /api/checkout.
func (h *BookingHandler) StartCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.Service.StartCheckout(c.Request.Context(), booking.CheckoutInput{
		BookingID:     req.BookingID,
		PackageType:   req.PackageType,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		EventDate:     req.EventDate,
		EventDetails:  req.EventDetails,
		Notes:         req.Notes,
	})
	if err != nil {
		var verr *booking.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "booking not found"})
		case errors.Is(err, booking.ErrDateUnavailable), errors.Is(err, booking.ErrStateConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.Logger.Error("Checkout session creation failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to start payment, try again"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
