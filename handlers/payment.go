package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"belissimo/config"
	"belissimo/services/payment"
	"belissimo/utils"
)

// PaymentService is wired in main before the router starts serving.
var PaymentService payment.PaymentService

type createSessionRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

// CreateCheckoutSession handles POST /api/payments/create-session.
func CreateCheckoutSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := PaymentService.CreateCheckoutSession(c.Request.Context(), req.BookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

// StripeWebhook handles POST /api/payments/webhook. The signature check makes
// the endpoint safe to expose publicly.
func StripeWebhook(c *gin.Context) {
	logger := utils.GetLogger()

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn("stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			logger.Error("failed to decode checkout session event", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
			return
		}
		if err := PaymentService.HandleCheckoutCompleted(c.Request.Context(), &session); err != nil {
			logger.Error("failed to process completed checkout", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
			return
		}
	default:
		logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
