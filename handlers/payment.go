package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"deskhive/config"
	"deskhive/services/booking"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const maxWebhookBodyBytes = 65536

// PaymentWebhookHandler receives the payment gateway's outcome callbacks and
// drives the booking's confirm/cancel transition.
type PaymentWebhookHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// NewPaymentWebhookHandler constructs a PaymentWebhookHandler.
func NewPaymentWebhookHandler(svc booking.BookingService, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{Svc: svc, Logger: logger}
}

// HandleWebhook handles POST /api/payments/webhook. The payload signature is
// verified before anything is trusted; the booking id rides in the payment
// intent's metadata.
func (h *PaymentWebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read webhook body", err.Error())
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		h.Logger.Warn("rejected webhook with bad signature", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid webhook signature", "")
		return
	}

	var intent stripe.PaymentIntent
	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "malformed event payload", err.Error())
			return
		}
	default:
		// Not an outcome we act on; acknowledge so the gateway stops retrying.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	bookingID := intent.Metadata["booking_id"]
	if bookingID == "" {
		h.Logger.Warn("webhook payment intent missing booking metadata", zap.String("intent_id", intent.ID))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ctx := c.Request.Context()
	if event.Type == "payment_intent.succeeded" {
		err = h.Svc.Confirm(ctx, bookingID)
	} else {
		err = h.Svc.Cancel(ctx, bookingID, "")
	}
	if err != nil {
		// A lifecycle violation here means the sweeper or the user got there
		// first; that is not a delivery failure, so do not make the gateway retry.
		var stateErr *booking.InvalidStateError
		if errors.As(err, &stateErr) {
			h.Logger.Info("webhook outcome arrived after transition",
				zap.String("booking_id", bookingID),
				zap.String("event", string(event.Type)),
				zap.String("current_status", string(stateErr.Current)),
			)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		h.Logger.Error("failed to apply payment outcome",
			zap.String("booking_id", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to apply payment outcome", err.Error())
		return
	}

	h.Logger.Info("payment outcome applied",
		zap.String("booking_id", bookingID),
		zap.String("event", string(event.Type)),
	)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
