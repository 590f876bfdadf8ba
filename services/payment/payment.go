// File: services/payment/payment.go
package payment

import (
	"context"
	"errors"
	"fmt"

	"belissimo/config"
	paymentRepo "belissimo/database/repository/payment"
	serviceRepo "belissimo/database/repository/service"
	"belissimo/models"
	"belissimo/services/booking"
	"belissimo/utils"

	"github.com/stripe/stripe-go/v76"
	checkoutSession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// PaymentService creates deposit checkout sessions and consumes the
// provider's completion events. Booking creation and payment-link generation
// are decoupled: a checkout failure never unwinds a committed booking.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, bookingID string) (*models.CheckoutSession, error)
	HandleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error
}

// StripePaymentService is the production implementation backed by Stripe
// Checkout.
type StripePaymentService struct {
	Payments    paymentRepo.PaymentRepository
	Bookings    booking.BookingService
	ServiceRepo serviceRepo.ServiceRepository
}

// CreateCheckoutSession charges the deposit share of the booking's service
// price through a Stripe Checkout session.
func (s *StripePaymentService) CreateCheckoutSession(ctx context.Context, bookingID string) (*models.CheckoutSession, error) {
	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	svc, err := s.ServiceRepo.GetByID(ctx, b.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, booking.NewNotFound("Service not found")
		}
		return nil, err
	}

	totalCents := b.PriceCents
	if totalCents <= 0 {
		totalCents = svc.PriceCents
	}
	depositPct := svc.DepositPercentage
	if depositPct <= 0 {
		depositPct = models.DefaultDepositPercentage
	}
	amountCents := (totalCents*depositPct + 50) / 100

	if amountCents <= 0 {
		return nil, booking.NewValidation("invalid deposit amount")
	}

	currency := config.AppConfig.PaymentCurrency
	p := &models.Payment{
		BookingID:   bookingID,
		AmountCents: amountCents,
		Currency:    currency,
		Provider:    "stripe",
		Status:      models.PaymentPending,
	}
	if err := s.Payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment record: %w", err)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Deposit for " + svc.Name),
					},
					UnitAmount: stripe.Int64(int64(amountCents)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s?booking=%s", config.AppConfig.FrontendSuccessURL, bookingID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s?booking=%s", config.AppConfig.FrontendCancelURL, bookingID)),
	}
	params.AddMetadata("bookingId", bookingID)
	params.AddMetadata("paymentId", p.ID)

	sess, err := checkoutSession.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe session: %w", err)
	}

	p.ProviderRef = sess.ID
	if err := s.Payments.Update(ctx, p); err != nil {
		utils.GetLogger().Warn("failed to store stripe session id",
			zap.String("paymentId", p.ID), zap.Error(err))
	}
	if err := s.Bookings.AttachPayment(ctx, bookingID, p.ID); err != nil {
		utils.GetLogger().Warn("failed to attach payment to booking",
			zap.String("bookingId", bookingID), zap.Error(err))
	}

	return &models.CheckoutSession{URL: sess.URL, SessionID: sess.ID, PaymentID: p.ID}, nil
}

// HandleCheckoutCompleted marks the payment paid and confirms the booking.
// It is the payment-confirmation hook behind the provider webhook.
func (s *StripePaymentService) HandleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	logger := utils.GetLogger()

	var p *models.Payment
	var err error
	if id := session.Metadata["paymentId"]; id != "" {
		p, err = s.Payments.GetByID(ctx, id)
	}
	if p == nil {
		if bookingID := session.Metadata["bookingId"]; bookingID != "" {
			p, err = s.Payments.GetByBookingID(ctx, bookingID)
		}
	}
	if p == nil {
		logger.Warn("payment not found for stripe session",
			zap.String("sessionId", session.ID), zap.Error(err))
		return nil
	}

	p.Status = models.PaymentPaid
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		p.ProviderRef = session.PaymentIntent.ID
	} else {
		p.ProviderRef = session.ID
	}
	if err := s.Payments.Update(ctx, p); err != nil {
		return fmt.Errorf("mark payment paid: %w", err)
	}

	if _, err := s.Bookings.ConfirmPayment(ctx, p.BookingID); err != nil {
		// Already confirmed or cancelled in the meantime; the paid payment
		// record stands either way.
		logger.Warn("could not confirm booking after payment",
			zap.String("bookingId", p.BookingID), zap.Error(err))
		return nil
	}

	logger.Info("payment marked paid and booking confirmed",
		zap.String("paymentId", p.ID), zap.String("bookingId", p.BookingID))
	return nil
}
