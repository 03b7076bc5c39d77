package calendar

import (
	"context"
	"fmt"
	"time"

	"vibezone/models"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarService implements CalendarService against the Google
// Calendar API using a service-account credential.
type GoogleCalendarService struct {
	svc        *gcal.Service
	calendarID string
	logger     *zap.Logger
}

// NewGoogleCalendarService builds a CalendarService from service-account
// credentials JSON.
func NewGoogleCalendarService(ctx context.Context, credentialsJSON, calendarID string, logger *zap.Logger) (*GoogleCalendarService, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	return &GoogleCalendarService{svc: svc, calendarID: calendarID, logger: logger}, nil
}

// Upsert creates or updates the calendar event for a booking.
func (g *GoogleCalendarService) Upsert(ctx context.Context, booking *models.Booking) (string, error) {
	event := g.buildEvent(booking)

	if booking.GoogleCalendarEventID != "" {
		updated, err := g.svc.Events.Update(g.calendarID, booking.GoogleCalendarEventID, event).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("failed to update calendar event %s: %w", booking.GoogleCalendarEventID, err)
		}
		return updated.Id, nil
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event for booking %s: %w", booking.ID, err)
	}
	g.logger.Info("Calendar event created",
		zap.String("booking_id", booking.ID),
		zap.String("event_id", created.Id),
	)
	return created.Id, nil
}

// Cancel marks the external event cancelled.
func (g *GoogleCalendarService) Cancel(ctx context.Context, booking *models.Booking) error {
	if booking.GoogleCalendarEventID == "" {
		return nil
	}
	patch := &gcal.Event{Status: "cancelled"}
	if _, err := g.svc.Events.Patch(g.calendarID, booking.GoogleCalendarEventID, patch).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to cancel calendar event %s: %w", booking.GoogleCalendarEventID, err)
	}
	return nil
}

func (g *GoogleCalendarService) buildEvent(booking *models.Booking) *gcal.Event {
	start, end := eventWindow(booking)
	return &gcal.Event{
		Summary: fmt.Sprintf("DJ Booking: %s (%s)", booking.CustomerName, booking.PackageType),
		Description: fmt.Sprintf("Booking %s\nVenue: %s\n%s, %s, %s %s\nNotes: %s",
			booking.ID, booking.VenueName, booking.StreetAddress,
			booking.City, booking.State, booking.ZipCode, booking.Notes),
		Location: fmt.Sprintf("%s, %s, %s %s", booking.StreetAddress, booking.City, booking.State, booking.ZipCode),
		Start:    &gcal.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:      &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
}

// eventWindow derives the event start/end instants. An end time earlier
// than the start time means the event runs past midnight into the next day.
func eventWindow(booking *models.Booking) (time.Time, time.Time) {
	layout := "2006-01-02 15:04"
	start, err := time.ParseInLocation(layout, booking.EventDate+" "+booking.StartTime, time.Local)
	if err != nil {
		start = time.Now()
	}
	end, err := time.ParseInLocation(layout, booking.EventDate+" "+booking.EndTime, time.Local)
	if err != nil {
		end = start.Add(4 * time.Hour)
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}
