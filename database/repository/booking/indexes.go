// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on booking ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index backing the overlap queries
		{
			Keys: bson.D{
				{Key: "service_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "start_at", Value: 1},
				{Key: "end_at", Value: 1},
			},
			Options: options.Index().SetName("service_status_window_idx"),
		},
		// Last line of defense against double-booking: an active booking for
		// the exact same service/sub-service/start is unique. Violations are
		// surfaced as the same conflict error the in-transaction check raises.
		{
			Keys: bson.D{
				{Key: "service_id", Value: 1},
				{Key: "sub_service_name", Value: 1},
				{Key: "start_at", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("active_slot_unique").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{"pending", "confirmed"}},
				}),
		},
		// Day listings
		{
			Keys:    bson.D{{Key: "start_at", Value: 1}},
			Options: options.Index().SetName("start_at_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	markerIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "service_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_service_marker"),
	}
	if _, err := r.schedule.Indexes().CreateOne(ctx, markerIdx); err != nil {
		return fmt.Errorf("failed to create schedule marker index: %w", err)
	}
	return nil
}
