// File: database/repository/booking/booking_mongo.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"belissimo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// activeStatuses are the statuses that occupy a time slot.
var activeStatuses = bson.A{models.BookingPending, models.BookingConfirmed}

// overlapFilter matches active bookings whose [start_at, end_at) interval
// intersects [start, end). Half-open: a booking ending exactly at `start`
// does not match.
func overlapFilter(serviceID string, start, end time.Time) bson.M {
	return bson.M{
		"service_id": serviceID,
		"status":     bson.M{"$in": activeStatuses},
		"start_at":   bson.M{"$lt": end},
		"end_at":     bson.M{"$gt": start},
	}
}

func (r *mongoBookingRepo) CountOverlapping(ctx context.Context, serviceID, subServiceName string, start, end time.Time) (OverlapCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.countOverlapping(ctx, serviceID, subServiceName, start, end)
}

func (r *mongoBookingRepo) countOverlapping(ctx context.Context, serviceID, subServiceName string, start, end time.Time) (OverlapCounts, error) {
	var counts OverlapCounts

	total, err := r.coll.CountDocuments(ctx, overlapFilter(serviceID, start, end))
	if err != nil {
		return counts, fmt.Errorf("count overlapping bookings: %w", err)
	}
	counts.Total = total

	subFilter := overlapFilter(serviceID, start, end)
	subFilter["sub_service_name"] = subServiceName
	sameSub, err := r.coll.CountDocuments(ctx, subFilter)
	if err != nil {
		return counts, fmt.Errorf("count overlapping sub-service bookings: %w", err)
	}
	counts.SameSubService = sameSub

	return counts, nil
}

// CreateGuarded inserts a booking after re-validating the capacity rules
// inside a multi-document transaction. Every create for the same service
// bumps a per-service marker document first, so two concurrent creates for
// one service cannot both read a stale view and commit: one of them aborts
// with a transient write conflict, is retried by the driver, and then sees
// the winner's row during the re-check. The unique active-slot index is the
// last line of defense and is mapped to the same conflict error.
func (r *mongoBookingRepo) CreateGuarded(ctx context.Context, b *models.Booking, limits CapacityLimits) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.Status = models.BookingPending
	b.CreatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		marker := bson.M{"service_id": b.ServiceID}
		bump := bson.M{"$inc": bson.M{"version": 1}}
		if _, err := r.schedule.UpdateOne(sc, marker, bump, options.Update().SetUpsert(true)); err != nil {
			return nil, fmt.Errorf("bump schedule marker: %w", err)
		}

		counts, err := r.countOverlapping(sc, b.ServiceID, b.SubServiceName, b.StartAt, b.EndAt)
		if err != nil {
			return nil, err
		}
		if counts.SameSubService >= int64(limits.MaxSameSubService) {
			return nil, ErrSubServiceTaken
		}
		if counts.Total >= int64(limits.MaxTotalCapacity) {
			return nil, ErrCapacityReached
		}

		if _, err := r.coll.InsertOne(sc, b); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrSubServiceTaken
			}
			return nil, fmt.Errorf("insert booking: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSubServiceTaken
		}
		return err
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *mongoBookingRepo) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	after := options.After
	var b models.Booking
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": models.BookingCancelled}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *mongoBookingRepo) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	after := options.After
	var b models.Booking
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": models.BookingPending},
		bson.M{"$set": bson.M{"status": models.BookingConfirmed}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&b)
	if err == mongo.ErrNoDocuments {
		// Distinguish an unknown id from a booking that already left pending.
		if _, lookupErr := r.GetByID(ctx, id); lookupErr == nil {
			return nil, ErrInvalidTransition
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *mongoBookingRepo) SetPaymentID(ctx context.Context, id, paymentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"payment_id": paymentID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepo) ListByDate(ctx context.Context, day time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	filter := bson.M{"start_at": bson.M{"$gte": startOfDay, "$lt": endOfDay}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
