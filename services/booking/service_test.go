package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "vibezone/database/repository/booking"
	"vibezone/models"
	"vibezone/services/notification"

	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory BookingRepository that mirrors the
// conditional-update semantics of the Mongo implementation, including the
// partial unique index on active event dates.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.EventDate == booking.EventDate &&
			(b.Status == models.StatusPending || b.Status == models.StatusConfirmed) {
			return bookingRepo.ErrDateTaken
		}
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByPaymentIntentID(paymentIntentID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.StripePaymentIntentID == paymentIntentID && paymentIntentID != "" {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) TransitionStatus(id, from, to string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = at
	b.Version++
	return true, nil
}

func (r *fakeBookingRepo) SetConfirmed(id, paymentIntentID, from string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = models.StatusConfirmed
	confirmedAt := at
	b.ConfirmedAt = &confirmedAt
	if paymentIntentID != "" {
		b.StripePaymentIntentID = paymentIntentID
	}
	b.UpdatedAt = at
	b.Version++
	return true, nil
}

func (r *fakeBookingRepo) SetCheckoutSession(id, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.StripeSessionID = sessionID
	}
	return nil
}

func (r *fakeBookingRepo) SetCalendarEventID(id, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.GoogleCalendarEventID = eventID
	}
	return nil
}

func (r *fakeBookingRepo) SetReminderSent(id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.StatusPending || b.ReminderSentAt != nil {
		return false, nil
	}
	sentAt := at
	b.ReminderSentAt = &sentAt
	b.UpdatedAt = at
	b.Version++
	return true, nil
}

func (r *fakeBookingRepo) FindPendingForReminder(oldest, newest time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.StatusPending && b.ReminderSentAt == nil &&
			b.CreatedAt.After(oldest) && !b.CreatedAt.After(newest) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindPendingCreatedBefore(cutoff time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.StatusPending && !b.CreatedAt.After(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindActiveByDate(date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.EventDate == date &&
			(b.Status == models.StatusPending || b.Status == models.StatusConfirmed) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByStatus(status string, limit int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

// fakeRateRepo is an in-memory append-only attempt log.
type fakeRateRepo struct {
	mu       sync.Mutex
	attempts []models.RateLimitAttempt
}

func (r *fakeRateRepo) Record(attempt *models.RateLimitAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, *attempt)
	return nil
}

func (r *fakeRateRepo) CountSince(key, kind string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.attempts {
		if a.Key == key && a.Kind == kind && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// fakeEmailSender records every send and can be told to fail for a given
// recipient.
type fakeEmailSender struct {
	mu     sync.Mutex
	sent   []notification.Email
	failTo map[string]error
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{failTo: make(map[string]error)}
}

func (s *fakeEmailSender) Send(_ context.Context, email notification.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failTo[email.To]; ok {
		return err
	}
	s.sent = append(s.sent, email)
	return nil
}

func (s *fakeEmailSender) sentTo(addr string) []notification.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []notification.Email
	for _, e := range s.sent {
		if e.To == addr {
			out = append(out, e)
		}
	}
	return out
}

// fakeCalendar counts upserts and cancels.
type fakeCalendar struct {
	mu      sync.Mutex
	upserts int
	cancels int
	eventID string
}

func (c *fakeCalendar) Upsert(_ context.Context, booking *models.Booking) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upserts++
	if booking.GoogleCalendarEventID != "" {
		return booking.GoogleCalendarEventID, nil
	}
	if c.eventID == "" {
		c.eventID = "evt-1"
	}
	return c.eventID, nil
}

func (c *fakeCalendar) Cancel(_ context.Context, _ *models.Booking) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancels++
	return nil
}

// fakePayments returns a canned session.
type fakePayments struct {
	lastRequest CheckoutSessionRequest
	err         error
}

func (p *fakePayments) CreateCheckoutSession(_ context.Context, req CheckoutSessionRequest) (string, string, error) {
	p.lastRequest = req
	if p.err != nil {
		return "", "", p.err
	}
	return "cs_test_123", "https://checkout.example.com/cs_test_123", nil
}

// fakeReminderRepo stores reminder rows.
type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders map[string]*models.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[string]*models.Reminder)}
}

func (r *fakeReminderRepo) Create(reminder *models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reminder
	r.reminders[reminder.ID] = &cp
	return nil
}

func (r *fakeReminderRepo) GetByID(id string) (*models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rem, ok := r.reminders[id]; ok {
		cp := *rem
		return &cp, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeReminderRepo) MarkSent(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rem, ok := r.reminders[id]; ok {
		rem.Status = models.ReminderSent
		rem.UpdatedAt = at
	}
	return nil
}

func (r *fakeReminderRepo) MarkFailed(id string, at time.Time, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rem, ok := r.reminders[id]; ok {
		rem.Status = models.ReminderFailed
		rem.ErrorMessage = errMsg
		rem.UpdatedAt = at
	}
	return nil
}

// fakeScheduler records enqueued reminder tasks.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []models.ReminderPayload
}

func (s *fakeScheduler) ScheduleEventReminder(payload models.ReminderPayload, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, payload)
	return nil
}

// fakeVerifier satisfies EmailVerifier for intake tests.
type fakeVerifier struct {
	err      error
	consumed []string
}

func (v *fakeVerifier) ConsumeVerified(email string, _ time.Time) error {
	if v.err != nil {
		return v.err
	}
	v.consumed = append(v.consumed, email)
	return nil
}

type testEnv struct {
	svc       *DefaultBookingService
	repo      *fakeBookingRepo
	rate      *fakeRateRepo
	email     *fakeEmailSender
	calendar  *fakeCalendar
	payments  *fakePayments
	reminders *fakeReminderRepo
	scheduler *fakeScheduler
	now       time.Time
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:      newFakeBookingRepo(),
		rate:      &fakeRateRepo{},
		email:     newFakeEmailSender(),
		calendar:  &fakeCalendar{},
		payments:  &fakePayments{},
		reminders: newFakeReminderRepo(),
		scheduler: &fakeScheduler{},
		now:       time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local),
	}
	env.svc = &DefaultBookingService{
		Repo:         env.repo,
		RateRepo:     env.rate,
		ReminderRepo: env.reminders,
		Payments:     env.payments,
		Email:        env.email,
		Calendar:     env.calendar,
		Scheduler:    env.scheduler,
		Policy:       DefaultPolicy("operator@vibezone.example"),
		Logger:       zap.NewNop(),
		Now:          func() time.Time { return env.now },
	}
	return env
}

func validInput() BookingInput {
	return BookingInput{
		PackageType:    "essentialVibe",
		SelectedAddOns: []string{"Basic Lighting Package"},
		CustomerName:   "Jamie Rivera",
		CustomerEmail:  "jamie@example.com",
		CustomerPhone:  "(555) 123-4567 x1",
		EventDate:      "2026-08-15",
		StartTime:      "18:00",
		EndTime:        "01:00",
		VenueName:      "The Grand Hall",
		StreetAddress:  "100 Main St",
		City:           "Austin",
		State:          "TX",
		ZipCode:        "78701",
	}
}
