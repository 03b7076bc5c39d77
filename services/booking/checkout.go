package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "vibezone/database/repository/booking"
	"vibezone/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutInput starts a payment session. BookingID set means the hold was
// created by intake; empty means create the booking inline before checkout.
type CheckoutInput struct {
	BookingID     string
	PackageType   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	EventDate     string
	EventDetails  string
	Notes         string
}

// CheckoutResult is the session handle the client redirects to.
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// StartCheckout resolves or creates a pending booking, opens an external
// payment session for its deposit, and records the session id on the
// booking.
func (svc *DefaultBookingService) StartCheckout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	var booking *models.Booking
	var err error

	if input.BookingID != "" {
		booking, err = svc.Repo.GetByID(input.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, fmt.Errorf("failed to load booking for checkout: %w", err)
		}
		if booking.Status != models.StatusPending && booking.Status != models.StatusPaymentFailed {
			return nil, ErrStateConflict
		}
	} else {
		booking, err = svc.createAtCheckout(input)
		if err != nil {
			return nil, err
		}
	}

	if booking.DepositAmount <= 0 || booking.DepositAmount > booking.TotalAmount {
		return nil, fmt.Errorf("booking %s has invalid deposit amount %d", booking.ID, booking.DepositAmount)
	}

	pkg := models.PackageCatalog[booking.PackageType]
	sessionID, url, err := svc.Payments.CreateCheckoutSession(ctx, CheckoutSessionRequest{
		BookingID:     booking.ID,
		CustomerEmail: booking.CustomerEmail,
		Description:   fmt.Sprintf("Booking deposit: %s on %s", pkg.DisplayName, booking.EventDate),
		AmountDollars: booking.DepositAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if err := svc.Repo.SetCheckoutSession(booking.ID, sessionID); err != nil {
		return nil, fmt.Errorf("failed to record checkout session: %w", err)
	}

	svc.Logger.Info("Checkout session started",
		zap.String("booking_id", booking.ID),
		zap.String("session_id", sessionID))

	return &CheckoutResult{SessionID: sessionID, URL: url}, nil
}

// createAtCheckout creates a pending booking inline from the minimal
// checkout fields. This path knows only the package, so the deposit is the
// catalog's flat per-package amount rather than the 50%-of-total derivation.
func (svc *DefaultBookingService) createAtCheckout(input CheckoutInput) (*models.Booking, error) {
	pkg, ok := models.PackageCatalog[input.PackageType]
	if !ok {
		return nil, newValidationError("packageType", "unknown package type")
	}
	intake := BookingInput{
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
	}
	now := svc.now()
	if verr := validateContact(&intake); verr != nil {
		return nil, verr
	}
	if input.EventDate == "" {
		return nil, newValidationError("eventDate", "event date is required")
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		CustomerName:  intake.CustomerName,
		CustomerEmail: intake.CustomerEmail,
		CustomerPhone: intake.CustomerPhone,
		Notes:         input.Notes,
		EventDate:     input.EventDate,
		VenueName:     input.EventDetails,
		PackageType:   pkg.Key,
		TotalAmount:   pkg.BasePrice,
		DepositAmount: pkg.FlatDeposit,
		Status:        models.StatusPending,
		CreatedAt:     now,
	}
	if err := svc.Repo.Create(booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDateTaken) {
			return nil, ErrDateUnavailable
		}
		return nil, fmt.Errorf("failed to persist checkout booking: %w", err)
	}
	return booking, nil
}

// GetBookingForSession returns a booking only when the supplied session id
// matches the one recorded at checkout. This is an authorization check, not
// just a lookup key: a mismatch reveals nothing.
func (svc *DefaultBookingService) GetBookingForSession(bookingID, sessionID string) (*models.Booking, error) {
	booking, err := svc.Repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if sessionID == "" || booking.StripeSessionID != sessionID {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}
