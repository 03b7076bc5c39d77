package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"vibezone/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const webhookDedupTTL = 24 * time.Hour

// WebhookHandler processes signed payment-processor events.
type WebhookHandler struct {
	Service       booking.BookingService
	WebhookSecret string
	Cache         *redis.Client
	Logger        *zap.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(svc booking.BookingService, webhookSecret string, cache *redis.Client, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Service: svc, WebhookSecret: webhookSecret, Cache: cache, Logger: logger}
}

// HandleStripeWebhook handles POST /api/webhooks/stripe. The signature is
// verified before any payload field is trusted; a Redis SETNX on the event
// id short-circuits redeliveries before they touch the store.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		h.Logger.Warn("Webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	if h.Cache != nil {
		fresh, err := h.Cache.SetNX(c.Request.Context(), "stripe:event:"+event.ID, 1, webhookDedupTTL).Result()
		if err != nil {
			// Dedup cache down: fall through, the conditional status update
			// still guarantees exactly-once side effects.
			h.Logger.Error("Webhook dedup cache unavailable", zap.Error(err))
		} else if !fresh {
			h.Logger.Info("Duplicate webhook event skipped", zap.String("event_id", event.ID))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}
		bookingID := session.Metadata["bookingId"]
		if bookingID == "" {
			h.Logger.Warn("Checkout session completed without bookingId metadata",
				zap.String("session_id", session.ID))
			break
		}
		var paymentIntentID string
		if session.PaymentIntent != nil {
			paymentIntentID = session.PaymentIntent.ID
		}
		if err := h.Service.ConfirmFromCheckout(c.Request.Context(), bookingID, paymentIntentID); err != nil {
			h.Logger.Error("Failed to confirm booking from webhook",
				zap.String("booking_id", bookingID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
			return
		}

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}
		if err := h.Service.MarkPaymentFailed(c.Request.Context(), intent.ID); err != nil {
			h.Logger.Error("Failed to mark payment failed",
				zap.String("payment_intent", intent.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
			return
		}

	default:
		h.Logger.Debug("Ignoring webhook event", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
