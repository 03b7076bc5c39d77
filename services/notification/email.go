package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPEmailSender delivers email through an HTTP provider API with a single
// JSON POST per message.
type HTTPEmailSender struct {
	Endpoint string
	APIKey   string
	From     string
	Client   *http.Client
	Logger   *zap.Logger
}

// NewHTTPEmailSender creates an EmailSender backed by an HTTP provider API.
func NewHTTPEmailSender(endpoint, apiKey, from string, logger *zap.Logger) *HTTPEmailSender {
	return &HTTPEmailSender{
		Endpoint: endpoint,
		APIKey:   apiKey,
		From:     from,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Logger:   logger,
	}
}

type providerEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts the message to the provider API.
func (s *HTTPEmailSender) Send(ctx context.Context, email Email) error {
	payload, err := json.Marshal(providerEmail{
		From:    s.From,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("email provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(body))
	}

	s.Logger.Debug("Email dispatched", zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}

// LogEmailSender logs messages instead of sending them. Used in development
// when no provider API key is configured.
type LogEmailSender struct {
	Logger *zap.Logger
}

// Send logs the outgoing message.
func (s *LogEmailSender) Send(_ context.Context, email Email) error {
	s.Logger.Sugar().Infof("Sending email to %s: %s", email.To, email.Subject)
	return nil
}
