package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)

func TestValidateInputAcceptsValidSubmission(t *testing.T) {
	in := validInput()
	require.Nil(t, validateInput(&in, testNow))

	// Normalization happened in place.
	assert.Equal(t, "jamie@example.com", in.CustomerEmail)
	assert.Equal(t, "55512345671", in.CustomerPhone)
	assert.Equal(t, "TX", in.State)
}

func TestValidateInputNormalizesEmailCase(t *testing.T) {
	in := validInput()
	in.CustomerEmail = "  Jamie@Example.COM "
	require.Nil(t, validateInput(&in, testNow))
	assert.Equal(t, "jamie@example.com", in.CustomerEmail)
}

func TestValidateInputReturnsFirstViolation(t *testing.T) {
	in := validInput()
	in.CustomerName = "X"
	in.CustomerEmail = "not-an-email"

	verr := validateInput(&in, testNow)
	require.NotNil(t, verr)
	// Name is checked before email; the first violation wins.
	assert.Equal(t, "name", verr.Field)
}

func TestValidateInputRejectsPastAndTodayDates(t *testing.T) {
	for _, date := range []string{"2026-05-31", "2026-06-01", "2020-01-01"} {
		in := validInput()
		in.EventDate = date
		verr := validateInput(&in, testNow)
		require.NotNil(t, verr, "date %s must be rejected", date)
		assert.Equal(t, "eventDate", verr.Field)
	}
}

func TestValidateInputRejectsMalformedDate(t *testing.T) {
	in := validInput()
	in.EventDate = "08/15/2026"
	verr := validateInput(&in, testNow)
	require.NotNil(t, verr)
	assert.Equal(t, "eventDate", verr.Field)
}

func TestValidateInputAllowsOvernightEvent(t *testing.T) {
	in := validInput()
	in.StartTime = "21:00"
	in.EndTime = "02:00"
	assert.Nil(t, validateInput(&in, testNow))
}

func TestValidateInputRejectsBadTimes(t *testing.T) {
	in := validInput()
	in.StartTime = "25:00"
	verr := validateInput(&in, testNow)
	require.NotNil(t, verr)
	assert.Equal(t, "startTime", verr.Field)

	in = validInput()
	in.EndTime = "9pm"
	verr = validateInput(&in, testNow)
	require.NotNil(t, verr)
	assert.Equal(t, "endTime", verr.Field)
}

func TestValidateInputRejectsUnknownState(t *testing.T) {
	in := validInput()
	in.State = "ZZ"
	verr := validateInput(&in, testNow)
	require.NotNil(t, verr)
	assert.Equal(t, "state", verr.Field)
}

func TestValidateInputAcceptsLowercaseState(t *testing.T) {
	in := validInput()
	in.State = "tx"
	require.Nil(t, validateInput(&in, testNow))
	assert.Equal(t, "TX", in.State)
}

func TestValidateInputRejectsBadZip(t *testing.T) {
	for _, zip := range []string{"1234", "123456", "ABCDE"} {
		in := validInput()
		in.ZipCode = zip
		verr := validateInput(&in, testNow)
		require.NotNil(t, verr, "zip %q must be rejected", zip)
		assert.Equal(t, "zipCode", verr.Field)
	}
}

func TestValidateInputRejectsPhoneOutOfRange(t *testing.T) {
	in := validInput()
	in.CustomerPhone = "555-1234"
	verr := validateInput(&in, testNow)
	require.NotNil(t, verr)
	assert.Equal(t, "phone", verr.Field)
}

func TestValidateInputRejectsLongNotes(t *testing.T) {
	in := validInput()
	in.Notes = strings.Repeat("a", maxNotesLen+1)
	verr := validateInput(&in, testNow)
	require.NotNil(t, verr)
	assert.Equal(t, "notes", verr.Field)
}
