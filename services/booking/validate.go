package booking

import (
	"regexp"
	"strings"
	"time"

	"vibezone/models"
)

// BookingInput is a booking submission before validation. Validation
// normalizes email and phone in place.
type BookingInput struct {
	PackageType    string
	SelectedAddOns []string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	EventDate      string
	StartTime      string
	EndTime        string
	VenueName      string
	StreetAddress  string
	City           string
	State          string
	ZipCode        string
	Notes          string
	Honeypot       string
}

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,99}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	zipRe   = regexp.MustCompile(`^\d{5}$`)
	timeRe  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	digitRe = regexp.MustCompile(`\D`)
)

const maxNotesLen = 1000

// validateContact checks only the customer identity fields, normalizing
// email and phone in place. Used by the create-at-checkout path, which has
// no venue fields yet.
func validateContact(in *BookingInput) *ValidationError {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if !nameRe.MatchString(in.CustomerName) {
		return newValidationError("name", "name must be 2-100 letters, spaces or basic punctuation")
	}
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	if !emailRe.MatchString(in.CustomerEmail) {
		return newValidationError("email", "a valid email address is required")
	}
	in.CustomerPhone = digitRe.ReplaceAllString(in.CustomerPhone, "")
	if len(in.CustomerPhone) < 10 || len(in.CustomerPhone) > 15 {
		return newValidationError("phone", "phone number must contain 10-15 digits")
	}
	return nil
}

// validateInput checks every field in a fixed order and returns the first
// violation. It runs before the honeypot check so the error messages a
// legitimate user sees are deterministic.
func validateInput(in *BookingInput, now time.Time) *ValidationError {
	if verr := validateContact(in); verr != nil {
		return verr
	}

	eventDate, err := time.ParseInLocation("2006-01-02", in.EventDate, time.Local)
	if err != nil {
		return newValidationError("eventDate", "event date must be in YYYY-MM-DD format")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !eventDate.After(today) {
		return newValidationError("eventDate", "event date must be in the future")
	}

	if !timeRe.MatchString(in.StartTime) {
		return newValidationError("startTime", "start time must be in HH:MM format")
	}
	// An end time earlier than the start time is valid: the event runs past
	// midnight into the next day.
	if !timeRe.MatchString(in.EndTime) {
		return newValidationError("endTime", "end time must be in HH:MM format")
	}

	if strings.TrimSpace(in.VenueName) == "" {
		return newValidationError("venueName", "venue name is required")
	}
	if strings.TrimSpace(in.StreetAddress) == "" {
		return newValidationError("streetAddress", "street address is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return newValidationError("city", "city is required")
	}

	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	if !models.USStateCodes[in.State] {
		return newValidationError("state", "state must be a valid 2-letter US state code")
	}
	if !zipRe.MatchString(in.ZipCode) {
		return newValidationError("zipCode", "zip code must be 5 digits")
	}

	if len(in.Notes) > maxNotesLen {
		return newValidationError("notes", "notes must be 1000 characters or fewer")
	}
	return nil
}
