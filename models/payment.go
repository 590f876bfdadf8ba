package models

import "time"

// PaymentStatus tracks the lifecycle of a deposit payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment records a deposit checkout session created for a booking.
// Exactly one payment references one booking.
type Payment struct {
	ID          string        `bson:"id" json:"id"`
	BookingID   string        `bson:"booking_id" json:"bookingId"`
	AmountCents int           `bson:"amount_cents" json:"amountCents"`
	Currency    string        `bson:"currency" json:"currency"`
	Provider    string        `bson:"provider" json:"provider"` // e.g. "stripe"
	ProviderRef string        `bson:"provider_ref,omitempty" json:"providerRef,omitempty"`
	Status      PaymentStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updatedAt"`
}

// CheckoutSession is the external payment-provider construct handed back to
// the client for completing a deposit.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
	PaymentID string `json:"paymentId"`
}
