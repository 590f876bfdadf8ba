// File: database/repository/service/service_mongo.go
package serviceRepo

import (
	"context"
	"errors"
	"time"

	"belissimo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a service id does not resolve.
var ErrNotFound = errors.New("service not found")

func (r *mongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *mongoServiceRepo) GetAll(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Service
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if svc.DepositPercentage == 0 {
		svc.DepositPercentage = models.DefaultDepositPercentage
	}
	svc.CreatedAt = time.Now().UTC()

	_, err := r.coll.InsertOne(ctx, svc)
	return err
}
