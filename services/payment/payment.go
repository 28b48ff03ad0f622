package payment

import (
	"context"
	"fmt"

	"deskhive/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Gateway opens payments for pending bookings. The outcome arrives later via
// the gateway webhook, which drives the booking's confirm/cancel transition.
type Gateway interface {
	CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error)
}

// StripeGateway implements Gateway against the Stripe PaymentIntents API.
type StripeGateway struct {
	Logger   *zap.Logger
	Currency string
}

// NewStripeGateway constructs a StripeGateway. The global stripe.Key must be
// set before use.
func NewStripeGateway(logger *zap.Logger, currency string) *StripeGateway {
	return &StripeGateway{Logger: logger, Currency: currency}
}

// CreateIntent opens a PaymentIntent for the booking amount. The booking and
// user ids travel as metadata so the webhook can resolve the booking to
// confirm or cancel.
func (g *StripeGateway) CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(req.Amount),
		Currency:     stripe.String(g.Currency),
		ReceiptEmail: stripe.String(req.Email),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", req.BookingID)
	params.AddMetadata("user_id", req.UserID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.Logger.Info("payment intent created",
		zap.String("booking_id", req.BookingID),
		zap.String("intent_id", pi.ID),
		zap.Int64("amount", req.Amount),
	)
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}
