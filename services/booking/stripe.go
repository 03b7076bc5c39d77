package booking

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeProvider implements PaymentProvider against Stripe Checkout. The
// package-level stripe.Key is set at startup.
type StripeProvider struct {
	SuccessURL string
	CancelURL  string
}

// CreateCheckoutSession opens a Stripe Checkout session for the deposit and
// stamps the booking id into the session metadata for webhook reconciliation.
func (p *StripeProvider) CreateCheckoutSession(_ context.Context, req CheckoutSessionRequest) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		SuccessURL:    stripe.String(p.SuccessURL + "?bookingId=" + req.BookingID + "&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(int64(req.AmountDollars) * 100),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("bookingId", req.BookingID)

	sess, err := session.New(params)
	if err != nil {
		return "", "", fmt.Errorf("stripe checkout session creation failed: %w", err)
	}
	return sess.ID, sess.URL, nil
}
