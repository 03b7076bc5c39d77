package notification

import "context"

// Email is one outbound templated message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// EmailSender sends a templated message to a single recipient. Senders are
// best-effort collaborators: callers that have already committed a state
// transition log failures and move on, they never roll back.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}
