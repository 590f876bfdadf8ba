// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"belissimo/database"
	"belissimo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced by the repository. The booking service maps these
// into its public error taxonomy.
var (
	ErrNotFound          = errors.New("booking not found")
	ErrSubServiceTaken   = errors.New("sub-service already booked for this interval")
	ErrCapacityReached   = errors.New("service capacity reached for this interval")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// OverlapCounts reports how many active bookings overlap a proposed window.
type OverlapCounts struct {
	SameSubService int64
	Total          int64
}

// CapacityLimits are the two-tier capacity rules applied to a create.
type CapacityLimits struct {
	MaxSameSubService int
	MaxTotalCapacity  int
}

// BookingRepository owns persistence of bookings, including the transactional
// guarded insert that enforces the overlap rules under concurrency.
type BookingRepository interface {
	// CreateGuarded re-checks the overlap rules inside a transaction and
	// inserts the booking. Returns ErrSubServiceTaken or ErrCapacityReached
	// when a rule is violated, regardless of which guard caught it.
	CreateGuarded(ctx context.Context, b *models.Booking, limits CapacityLimits) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	CountOverlapping(ctx context.Context, serviceID, subServiceName string, start, end time.Time) (OverlapCounts, error)
	// Cancel moves any non-cancelled booking to cancelled and is a no-op on an
	// already-cancelled one.
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	// Confirm moves a pending booking to confirmed.
	Confirm(ctx context.Context, id string) (*models.Booking, error)
	SetPaymentID(ctx context.Context, id, paymentID string) error
	ListByDate(ctx context.Context, day time.Time) ([]models.Booking, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll     *mongo.Collection
	schedule *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		coll:     db.Collection("bookings"),
		schedule: db.Collection("schedule_markers"),
	}
}
