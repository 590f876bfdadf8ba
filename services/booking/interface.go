package booking

import (
	"context"
	"time"

	bookingRepo "belissimo/database/repository/booking"
	serviceRepo "belissimo/database/repository/service"
	"belissimo/models"
	"belissimo/services/notification"
)

// CreateBookingInput carries the client-supplied fields for a new booking.
// EndAt is never part of the input; it is always computed from the duration.
type CreateBookingInput struct {
	ServiceID       string
	SubServiceName  string
	ClientName      string
	ClientPhone     string
	StartAt         time.Time
	DurationMinutes int // optional override; 0 means use the service's duration
	PriceCents      int // optional override; 0 means use the service's price
}

// BookingService owns booking creation and cancellation as atomic operations
// and is the single source of truth for conflict decisions.
type BookingService interface {
	CheckAvailability(ctx context.Context, serviceID, subServiceName string, startAt time.Time, durationMinutes int) (*AvailabilityResult, error)
	Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	// ConfirmPayment is the payment-confirmation hook driven by the provider
	// webhook; it moves a pending booking to confirmed.
	ConfirmPayment(ctx context.Context, id string) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	ListByDate(ctx context.Context, day time.Time) ([]models.Booking, error)
	// AttachPayment records the payment reference on a booking once a
	// checkout session exists for it.
	AttachPayment(ctx context.Context, id, paymentID string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo            bookingRepo.BookingRepository
	ServiceRepo     serviceRepo.ServiceRepository
	Notifier        notification.NotificationService
	Limits          bookingRepo.CapacityLimits
	DefaultDuration int // minutes, used when the catalog entry carries none
}
