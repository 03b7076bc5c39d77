package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	bookingRepo "vibezone/database/repository/booking"
	"vibezone/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IntakeResult is a created hold plus remaining-attempts telemetry.
type IntakeResult struct {
	Booking   *models.Booking        `json:"booking"`
	RateLimit models.RateLimitStatus `json:"rateLimit"`
}

// Fingerprint derives a stable one-way hash from request metadata. Raw IPs
// are never stored.
func Fingerprint(clientIP, userAgent string) string {
	sum := sha256.Sum256([]byte(clientIP + "|" + userAgent))
	return hex.EncodeToString(sum[:])
}

// SubmitBooking validates a submission and creates a hold in pending
// status. Rejections are, in order: first schema violation, honeypot,
// unknown package, missing verification (when required), rate limit,
// date unavailable.
func (svc *DefaultBookingService) SubmitBooking(ctx context.Context, input BookingInput, fingerprint string) (*IntakeResult, error) {
	now := svc.now()

	if verr := validateInput(&input, now); verr != nil {
		return nil, verr
	}

	if input.Honeypot != "" {
		svc.Logger.Info("Honeypot tripped, rejecting silently",
			zap.String("email", input.CustomerEmail))
		return nil, ErrSuspiciousSubmission
	}

	pkg, ok := models.PackageCatalog[input.PackageType]
	if !ok {
		return nil, newValidationError("packageType", "unknown package type")
	}
	addOns := FilterKnownAddOns(input.SelectedAddOns)
	total := ComputeTotal(pkg, addOns)
	deposit := DepositFromTotal(total)

	if svc.Policy.RequireVerified {
		if err := svc.Verifier.ConsumeVerified(input.CustomerEmail, now); err != nil {
			return nil, ErrVerificationRequired
		}
	}

	emailKey := "email:" + input.CustomerEmail
	fpKey := "fp:" + fingerprint
	since := now.Add(-svc.Policy.RateLimitWindow)

	emailCount, err := svc.RateRepo.CountSince(emailKey, "intake", since)
	if err != nil {
		return nil, fmt.Errorf("%w: rate limit check: %v", ErrLookupFailed, err)
	}
	fpCount, err := svc.RateRepo.CountSince(fpKey, "intake", since)
	if err != nil {
		return nil, fmt.Errorf("%w: rate limit check: %v", ErrLookupFailed, err)
	}
	if emailCount >= int64(svc.Policy.RateLimitMax) || fpCount >= int64(svc.Policy.RateLimitMax) {
		svc.Logger.Warn("Booking intake rate limited",
			zap.String("email", input.CustomerEmail),
			zap.Int64("email_attempts", emailCount),
			zap.Int64("fingerprint_attempts", fpCount))
		return nil, ErrRateLimited
	}

	// Availability pre-check. The partial unique index re-validates at
	// insert time, so two near-simultaneous submissions cannot both land.
	available, err := svc.IsDateAvailable(input.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: availability check: %v", ErrLookupFailed, err)
	}
	if !available {
		return nil, ErrDateUnavailable
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Notes:         input.Notes,
		EventDate:     input.EventDate,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		VenueName:     input.VenueName,
		StreetAddress: input.StreetAddress,
		City:          input.City,
		State:         input.State,
		ZipCode:       input.ZipCode,
		PackageType:   input.PackageType,
		AddOns:        addOns,
		TotalAmount:   total,
		DepositAmount: deposit,
		Status:        models.StatusPending,
		CreatedAt:     now,
	}
	if err := svc.Repo.Create(booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDateTaken) {
			return nil, ErrDateUnavailable
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	// Attempts are recorded only on successful intake; rejected submissions
	// do not burn the caller's budget.
	svc.recordAttempt(emailKey, now)
	svc.recordAttempt(fpKey, now)

	used := emailCount
	if fpCount > used {
		used = fpCount
	}
	remaining := svc.Policy.RateLimitMax - int(used) - 1
	if remaining < 0 {
		remaining = 0
	}

	svc.Logger.Info("Booking hold created",
		zap.String("booking_id", booking.ID),
		zap.String("event_date", booking.EventDate),
		zap.Int("total", total),
		zap.Int("deposit", deposit))

	return &IntakeResult{
		Booking: booking,
		RateLimit: models.RateLimitStatus{
			WindowMinutes:     int(svc.Policy.RateLimitWindow.Minutes()),
			MaxAttempts:       svc.Policy.RateLimitMax,
			AttemptsRemaining: remaining,
		},
	}, nil
}

// IsDateAvailable applies the availability rule: a date is unavailable iff
// it has a booking in pending (with a live hold) or confirmed status.
func (svc *DefaultBookingService) IsDateAvailable(date string) (bool, error) {
	active, err := svc.Repo.FindActiveByDate(date)
	if err != nil {
		return false, fmt.Errorf("failed to query bookings for date %s: %w", date, err)
	}
	now := svc.now()
	for i := range active {
		if active[i].BlocksDate(now, svc.Policy.HoldWindow) {
			return false, nil
		}
	}
	return true, nil
}

func (svc *DefaultBookingService) recordAttempt(key string, now time.Time) {
	attempt := &models.RateLimitAttempt{
		ID:        uuid.New().String(),
		Key:       key,
		Kind:      "intake",
		CreatedAt: now,
	}
	if err := svc.RateRepo.Record(attempt); err != nil {
		svc.Logger.Error("Failed to record rate-limit attempt", zap.Error(err))
	}
}
