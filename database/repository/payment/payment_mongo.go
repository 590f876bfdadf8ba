// File: database/repository/payment/payment_mongo.go
package paymentRepo

import (
	"context"
	"time"

	"belissimo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *mongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoPaymentRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.findOne(ctx, bson.M{"booking_id": bookingID})
}

func (r *mongoPaymentRepo) findOne(ctx context.Context, filter bson.M) (*models.Payment, error) {
	var p models.Payment
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPaymentRepo) Update(ctx context.Context, p *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
