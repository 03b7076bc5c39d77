package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"vibezone/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedHold plants a pending booking created age before env.now.
func seedHold(t *testing.T, env *testEnv, id, date string, age time.Duration) *models.Booking {
	t.Helper()
	b := &models.Booking{
		ID:            id,
		CustomerName:  "Jamie Rivera",
		CustomerEmail: "jamie@example.com",
		EventDate:     date,
		PackageType:   "essentialVibe",
		TotalAmount:   620,
		DepositAmount: 310,
		Status:        models.StatusPending,
		CreatedAt:     env.now.Add(-age),
	}
	require.NoError(t, env.repo.Create(b))
	return b
}

func TestSweepExpiresStaleHold(t *testing.T) {
	env := newTestEnv()
	seedHold(t, env, "b1", "2026-08-15", 73*time.Hour)

	summary, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	assert.Equal(t, "expire", summary.Results[0].Action)
	assert.True(t, summary.Results[0].Success)

	stored, _ := env.repo.GetByID("b1")
	assert.Equal(t, models.StatusExpired, stored.Status)

	// Exactly one customer email and one operator email.
	assert.Len(t, env.email.sentTo("jamie@example.com"), 1)
	assert.Len(t, env.email.sentTo("operator@vibezone.example"), 1)
}

func TestSweepIsIdempotent(t *testing.T) {
	env := newTestEnv()
	seedHold(t, env, "b1", "2026-08-15", 73*time.Hour)

	_, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)

	// Second run finds nothing: the booking is no longer pending.
	summary, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Len(t, env.email.sentTo("jamie@example.com"), 1)
}

func TestSweepExpiryBoundary(t *testing.T) {
	env := newTestEnv()
	// One second short of the window: not expired, but inside the reminder
	// band, so the sweep sends the 24-hours-left email instead.
	seedHold(t, env, "b1", "2026-08-15", 72*time.Hour-time.Second)

	summary, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	assert.Equal(t, "reminder", summary.Results[0].Action)

	stored, _ := env.repo.GetByID("b1")
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestSweepExpiresHoldAtExactWindow(t *testing.T) {
	env := newTestEnv()
	// Created exactly one hold window ago: already expired for availability,
	// so the sweep must materialize the expiry rather than skip it.
	seedHold(t, env, "b1", "2026-08-15", 72*time.Hour)

	summary, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	assert.Equal(t, "expire", summary.Results[0].Action)

	stored, _ := env.repo.GetByID("b1")
	assert.Equal(t, models.StatusExpired, stored.Status)
	assert.Nil(t, stored.ReminderSentAt)
}

func TestSweepSendsReminderOnce(t *testing.T) {
	env := newTestEnv()
	seedHold(t, env, "b1", "2026-08-15", 48*time.Hour+time.Second)

	summary, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	assert.Equal(t, "reminder", summary.Results[0].Action)
	assert.True(t, summary.Results[0].Success)

	stored, _ := env.repo.GetByID("b1")
	require.NotNil(t, stored.ReminderSentAt)

	// The guard keeps the next sweep quiet.
	summary, err = env.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Len(t, env.email.sentTo("jamie@example.com"), 1)
}

func TestSweepYoungHoldUntouched(t *testing.T) {
	env := newTestEnv()
	seedHold(t, env, "b1", "2026-08-15", 47*time.Hour)

	summary, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Empty(t, env.email.sent)
}

func TestSweepReminderRetriesAfterSendFailure(t *testing.T) {
	env := newTestEnv()
	seedHold(t, env, "b1", "2026-08-15", 50*time.Hour)
	env.email.failTo["jamie@example.com"] = errors.New("smtp down")

	summary, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	assert.False(t, summary.Results[0].Success)

	// Guard stays unset so the next sweep retries.
	stored, _ := env.repo.GetByID("b1")
	assert.Nil(t, stored.ReminderSentAt)

	delete(env.email.failTo, "jamie@example.com")
	summary, err = env.svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	assert.True(t, summary.Results[0].Success)
}

func TestSweepMixedBatch(t *testing.T) {
	env := newTestEnv()
	seedHold(t, env, "expired", "2026-08-15", 80*time.Hour)
	seedHold(t, env, "remind", "2026-08-16", 50*time.Hour)
	seedHold(t, env, "young", "2026-08-17", 10*time.Hour)

	summary, err := env.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)

	expired, _ := env.repo.GetByID("expired")
	assert.Equal(t, models.StatusExpired, expired.Status)
	reminded, _ := env.repo.GetByID("remind")
	assert.Equal(t, models.StatusPending, reminded.Status)
	assert.NotNil(t, reminded.ReminderSentAt)
	young, _ := env.repo.GetByID("young")
	assert.Equal(t, models.StatusPending, young.Status)
	assert.Nil(t, young.ReminderSentAt)
}

func TestSweepExpiryLosesRaceGracefully(t *testing.T) {
	env := newTestEnv()
	b := seedHold(t, env, "b1", "2026-08-15", 73*time.Hour)

	// A payment confirms the booking between the query and the transition.
	result := env.svc.expireOne(context.Background(), b)
	require.True(t, result.Success)

	// Replay against an already-confirmed copy: the conditional transition
	// matches nothing and no expiry emails go out.
	env.email.sent = nil
	_, err := env.repo.TransitionStatus("b1", models.StatusExpired, models.StatusPending, env.now)
	require.NoError(t, err)
	_, err = env.repo.SetConfirmed("b1", "pi_1", models.StatusPending, env.now)
	require.NoError(t, err)

	result = env.svc.expireOne(context.Background(), b)
	assert.True(t, result.Success)
	assert.Empty(t, env.email.sent)
}
