// File: database/repository/service/interface.go
package serviceRepo

import (
	"context"

	"belissimo/database"
	"belissimo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository provides read access to the service catalog. Catalog
// editing happens through a separate admin surface and is out of scope here.
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetAll(ctx context.Context) ([]models.Service, error)
	Create(ctx context.Context, svc *models.Service) error
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new MongoDB ServiceRepository.
func NewMongoServiceRepo() ServiceRepository {
	return &mongoServiceRepo{
		coll: database.DB().Collection("services"),
	}
}
