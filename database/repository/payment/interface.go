// File: database/repository/payment/interface.go
package paymentRepo

import (
	"context"
	"errors"

	"belissimo/database"
	"belissimo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a payment record does not resolve.
var ErrNotFound = errors.New("payment not found")

// PaymentRepository persists deposit payment records.
type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo constructs a new MongoDB PaymentRepository.
func NewMongoPaymentRepo() PaymentRepository {
	return &mongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
}
