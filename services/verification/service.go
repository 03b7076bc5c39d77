package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"vibezone/database/repository"
	verificationRepo "vibezone/database/repository/verification"
	"vibezone/models"
	"vibezone/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Distinguishable verification failures; the UI renders different messaging
// for each.
var (
	// ErrRateLimited means too many codes were issued to this email.
	ErrRateLimited = errors.New("too many verification codes requested, try again later")
	// ErrCodeInvalid means no matching code exists for (email, code).
	ErrCodeInvalid = errors.New("invalid verification code")
	// ErrCodeExpired means the matching code outlived its TTL.
	ErrCodeExpired = errors.New("verification code has expired")
	// ErrCodeUsed means a booking already consumed this verification.
	ErrCodeUsed = errors.New("verification code has already been used")
	// ErrNotVerified means no verified, unconsumed code exists for the email.
	ErrNotVerified = errors.New("email has no completed verification")
)

// VerificationService issues and checks one-time email codes.
type VerificationService interface {
	RequestCode(ctx context.Context, email string) (*RequestResult, error)
	VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error)
	// ConsumeVerified marks the most recent verified code for an email as
	// used. Called by booking intake; this is the only single-use call site.
	ConsumeVerified(email string, now time.Time) error
}

// RequestResult reports how long the issued code remains valid.
type RequestResult struct {
	ExpiresIn int `json:"expiresIn"` // Seconds
}

// VerifyResult reports the verification outcome.
type VerifyResult struct {
	Verified        bool `json:"verified"`
	AlreadyVerified bool `json:"alreadyVerified,omitempty"`
}

// DefaultVerificationService implements VerificationService.
type DefaultVerificationService struct {
	Repo        repository.VerificationRepository
	Email       notification.EmailSender
	CodeTTL     time.Duration // 10 minutes
	MaxPerEmail int           // 3 codes per rolling window
	Window      time.Duration // 10 minutes
	Logger      *zap.Logger

	// Now is the clock hook; tests override it. Nil means time.Now.
	Now func() time.Time
}

func (svc *DefaultVerificationService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

// generateCode returns a 6-digit numeric code from a CSPRNG.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestCode issues a fresh code, persists it with its expiry, and emails
// it. Issuance is rate limited independently of booking intake, counting
// rows in the verification log itself.
func (svc *DefaultVerificationService) RequestCode(ctx context.Context, email string) (*RequestResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := svc.now()

	issued, err := svc.Repo.CountIssuedSince(email, now.Add(-svc.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to count issued codes: %w", err)
	}
	if issued >= int64(svc.MaxPerEmail) {
		svc.Logger.Warn("Verification code request rate limited", zap.String("email", email))
		return nil, ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	record := &models.VerificationCode{
		ID:        uuid.New().String(),
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(svc.CodeTTL),
	}
	if err := svc.Repo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to persist verification code: %w", err)
	}

	message := notification.Email{
		To:      email,
		Subject: "Your verification code",
		Body: fmt.Sprintf("<p>Your Vibe Zone verification code is <strong>%s</strong>. It expires in %d minutes.</p>",
			code, int(svc.CodeTTL.Minutes())),
	}
	if err := svc.Email.Send(ctx, message); err != nil {
		svc.Logger.Error("Failed to send verification code", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to send verification code")
	}

	return &RequestResult{ExpiresIn: int(svc.CodeTTL.Seconds())}, nil
}

// VerifyCode checks the most recently created row matching (email, code).
// Success stamps verified_at only; the code is not consumed here, so a
// repeat verify reports already-verified rather than failing. used_at is
// stamped by ConsumeVerified when an intake claims the verification.
func (svc *DefaultVerificationService) VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := svc.now()

	record, err := svc.Repo.FindLatest(email, code)
	if err != nil {
		if errors.Is(err, verificationRepo.ErrNotFound) {
			return nil, ErrCodeInvalid
		}
		return nil, fmt.Errorf("failed to look up verification code: %w", err)
	}
	if record.IsUsed() {
		return nil, ErrCodeUsed
	}
	if record.IsExpired(now) {
		return nil, ErrCodeExpired
	}
	if record.IsVerified() {
		return &VerifyResult{Verified: true, AlreadyVerified: true}, nil
	}

	if err := svc.Repo.MarkVerified(record.ID, now); err != nil {
		return nil, fmt.Errorf("failed to mark code verified: %w", err)
	}
	svc.Logger.Info("Email verified", zap.String("email", email))
	return &VerifyResult{Verified: true}, nil
}

// ConsumeVerified marks the latest verified, unconsumed code for an email
// as used.
func (svc *DefaultVerificationService) ConsumeVerified(email string, now time.Time) error {
	email = strings.ToLower(strings.TrimSpace(email))

	record, err := svc.Repo.FindLatestVerified(email)
	if err != nil {
		if errors.Is(err, verificationRepo.ErrNotFound) {
			return ErrNotVerified
		}
		return fmt.Errorf("failed to look up verified code: %w", err)
	}
	if err := svc.Repo.MarkUsed(record.ID, now); err != nil {
		return fmt.Errorf("failed to consume verification: %w", err)
	}
	return nil
}
