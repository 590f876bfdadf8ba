package models

import "time"

// BookingStatus is the lifecycle state of a booking. Bookings are never
// deleted; they only move between statuses.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// ValidTransition reports whether a booking may move from one status to
// another. There is no way out of cancelled.
func ValidTransition(from, to BookingStatus) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCancelled
	default:
		return false
	}
}

// Booking is a time-boxed appointment for a service, optionally narrowed to
// a named sub-service (e.g. "balayage" under "color").
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	ServiceID       string        `bson:"service_id" json:"serviceId"`
	SubServiceName  string        `bson:"sub_service_name,omitempty" json:"subServiceName,omitempty"`
	ClientName      string        `bson:"client_name" json:"clientName"`
	ClientPhone     string        `bson:"client_phone" json:"clientPhone"`
	StartAt         time.Time     `bson:"start_at" json:"startAt"`
	EndAt           time.Time     `bson:"end_at" json:"endAt"` // Always StartAt + duration, never client-supplied
	DurationMinutes int           `bson:"duration_minutes" json:"durationMinutes"`
	PriceCents      int           `bson:"price_cents" json:"priceCents"`
	Status          BookingStatus `bson:"status" json:"status"`
	PaymentID       string        `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
}

// Active reports whether the booking still occupies its time slot.
func (b *Booking) Active() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
