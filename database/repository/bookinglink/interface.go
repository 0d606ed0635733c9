// File: database/repository/bookinglink/interface.go
package linkRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"hireslot/models"
)

type BookingLinkRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, link *models.BookingLink) error
	GetByID(ctx context.Context, id string) (*models.BookingLink, error)
	GetBySlug(ctx context.Context, slug string) (*models.BookingLink, error)
	FindByTemplateID(ctx context.Context, templateID string) ([]models.BookingLink, error)
	Update(ctx context.Context, link *models.BookingLink) error
	Delete(ctx context.Context, id string) error
}

type mongoLinkRepo struct {
	coll *mongo.Collection
}

// NewMongoLinkRepo constructs a new MongoDB BookingLinkRepository.
func NewMongoLinkRepo(client *mongo.Client, dbName string) BookingLinkRepository {
	return &mongoLinkRepo{
		coll: client.Database(dbName).Collection("booking_links"),
	}
}
