package handlers

import (
	"errors"
	"net/http"

	"vibezone/middleware"
	"vibezone/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking hold lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

type bookingSubmission struct {
	PackageType    string   `json:"packageType"`
	SelectedAddOns []string `json:"selectedAddOns"`
	Customer       struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`
	Event struct {
		Date          string `json:"date"`
		StartTime     string `json:"startTime"`
		EndTime       string `json:"endTime"`
		VenueName     string `json:"venueName"`
		StreetAddress string `json:"streetAddress"`
		City          string `json:"city"`
		State         string `json:"state"`
		ZipCode       string `json:"zipCode"`
	} `json:"event"`
	Notes    string `json:"notes"`
	Honeypot string `json:"honeypot"`
}

// SubmitBooking handles POST /api/bookings.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req bookingSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input := booking.BookingInput{
		PackageType:    req.PackageType,
		SelectedAddOns: req.SelectedAddOns,
		CustomerName:   req.Customer.Name,
		CustomerEmail:  req.Customer.Email,
		CustomerPhone:  req.Customer.Phone,
		EventDate:      req.Event.Date,
		StartTime:      req.Event.StartTime,
		EndTime:        req.Event.EndTime,
		VenueName:      req.Event.VenueName,
		StreetAddress:  req.Event.StreetAddress,
		City:           req.Event.City,
		State:          req.Event.State,
		ZipCode:        req.Event.ZipCode,
		Notes:          req.Notes,
		Honeypot:       req.Honeypot,
	}
	fingerprint := booking.Fingerprint(middleware.GetClientIP(c), c.Request.UserAgent())

	result, err := h.Service.SubmitBooking(c.Request.Context(), input, fingerprint)
	if err != nil {
		h.respondIntakeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":   result.Booking,
		"rateLimit": result.RateLimit,
	})
}

// respondIntakeError maps intake failures to HTTP statuses. A honeypot trip
// answers success-shaped so bots learn nothing.
func (h *BookingHandler) respondIntakeError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, booking.ErrSuspiciousSubmission):
		c.JSON(http.StatusCreated, gin.H{"booking": gin.H{"id": uuid.New().String(), "status": "pending"}})
	case errors.Is(err, booking.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrDateUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrVerificationRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrLookupFailed):
		h.Logger.Error("Booking intake lookup failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unable to process bookings, please retry"})
	default:
		h.Logger.Error("Booking intake failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to process booking, please try again"})
	}
}

// Availability handles GET /api/bookings/availability?date=YYYY-MM-DD.
func (h *BookingHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	available, err := h.Service.IsDateAvailable(date)
	if err != nil {
		h.Logger.Error("Availability check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "unable to check availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "available": available})
}
