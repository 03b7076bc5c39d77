package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vibezone/models"
	"vibezone/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService returns canned results so handler tests exercise only
// the HTTP mapping.
type stubBookingService struct {
	submitResult *booking.IntakeResult
	submitErr    error
	available    bool
	availableErr error
	statusResult *models.Booking
	statusErr    error
}

func (s *stubBookingService) SubmitBooking(_ context.Context, _ booking.BookingInput, _ string) (*booking.IntakeResult, error) {
	return s.submitResult, s.submitErr
}

func (s *stubBookingService) StartCheckout(_ context.Context, _ booking.CheckoutInput) (*booking.CheckoutResult, error) {
	return &booking.CheckoutResult{SessionID: "cs_1", URL: "https://example.com"}, nil
}

func (s *stubBookingService) ConfirmFromCheckout(_ context.Context, _, _ string) error { return nil }
func (s *stubBookingService) MarkPaymentFailed(_ context.Context, _ string) error      { return nil }

func (s *stubBookingService) GetBookingForSession(_, _ string) (*models.Booking, error) {
	return s.statusResult, s.statusErr
}

func (s *stubBookingService) IsDateAvailable(_ string) (bool, error) {
	return s.available, s.availableErr
}

func (s *stubBookingService) Sweep(_ context.Context) (*booking.SweepSummary, error) {
	return &booking.SweepSummary{}, nil
}

func (s *stubBookingService) AdminConfirm(_ context.Context, _ string) error { return nil }
func (s *stubBookingService) AdminCancel(_ context.Context, _ string) error  { return nil }
func (s *stubBookingService) AdminExpire(_ context.Context, _ string) error  { return nil }

func (s *stubBookingService) ListBookings(_ string, _ int64) ([]models.Booking, error) {
	return nil, nil
}

func newBookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/api/bookings", h.SubmitBooking)
	r.GET("/api/bookings/availability", h.Availability)
	r.GET("/api/bookings/status", h.BookingStatus)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitBookingCreated(t *testing.T) {
	svc := &stubBookingService{
		submitResult: &booking.IntakeResult{
			Booking: &models.Booking{ID: "b1", Status: models.StatusPending},
			RateLimit: models.RateLimitStatus{
				WindowMinutes: 10, MaxAttempts: 3, AttemptsRemaining: 2,
			},
		},
	}
	r := newBookingRouter(svc)

	w := postJSON(r, "/api/bookings", gin.H{"packageType": "essentialVibe"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Booking   models.Booking         `json:"booking"`
		RateLimit models.RateLimitStatus `json:"rateLimit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.Booking.ID)
	assert.Equal(t, 2, resp.RateLimit.AttemptsRemaining)
}

func TestSubmitBookingValidationError(t *testing.T) {
	svc := &stubBookingService{
		submitErr: &booking.ValidationError{Field: "email", Message: "a valid email address is required"},
	}
	r := newBookingRouter(svc)

	w := postJSON(r, "/api/bookings", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid email")
}

func TestSubmitBookingHoneypotLooksLikeSuccess(t *testing.T) {
	svc := &stubBookingService{submitErr: booking.ErrSuspiciousSubmission}
	r := newBookingRouter(svc)

	w := postJSON(r, "/api/bookings", gin.H{"honeypot": "gotcha"})
	require.Equal(t, http.StatusCreated, w.Code)

	// The fabricated body is shaped like a real creation.
	var resp struct {
		Booking struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Booking.ID)
	assert.Equal(t, "pending", resp.Booking.Status)
}

func TestSubmitBookingRateLimited(t *testing.T) {
	svc := &stubBookingService{submitErr: booking.ErrRateLimited}
	r := newBookingRouter(svc)

	w := postJSON(r, "/api/bookings", gin.H{})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestSubmitBookingDateUnavailable(t *testing.T) {
	svc := &stubBookingService{submitErr: booking.ErrDateUnavailable}
	r := newBookingRouter(svc)

	w := postJSON(r, "/api/bookings", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitBookingLookupFailureIsRetryable(t *testing.T) {
	svc := &stubBookingService{submitErr: booking.ErrLookupFailed}
	r := newBookingRouter(svc)

	w := postJSON(r, "/api/bookings", gin.H{})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubmitBookingInternalErrorIsGeneric(t *testing.T) {
	svc := &stubBookingService{submitErr: assert.AnError}
	r := newBookingRouter(svc)

	w := postJSON(r, "/api/bookings", gin.H{})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestAvailability(t *testing.T) {
	svc := &stubBookingService{available: true}
	r := newBookingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/availability?date=2026-08-15", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)
}

func TestAvailabilityRequiresDate(t *testing.T) {
	r := newBookingRouter(&stubBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/availability", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityInfraFailure(t *testing.T) {
	r := newBookingRouter(&stubBookingService{availableErr: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/availability?date=2026-08-15", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBookingStatusMismatchIsNotFound(t *testing.T) {
	r := newBookingRouter(&stubBookingService{statusErr: booking.ErrBookingNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/status?bookingId=b1&sessionId=cs_wrong", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingStatusRequiresBothParams(t *testing.T) {
	r := newBookingRouter(&stubBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/status?bookingId=b1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
