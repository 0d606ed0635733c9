// File: database/repository/template/interface.go
package templateRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"hireslot/models"
)

type TemplateRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, tpl *models.Template) error
	GetByID(ctx context.Context, id string) (*models.Template, error)
	Update(ctx context.Context, tpl *models.Template) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Template, error)
}

type mongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo constructs a new MongoDB TemplateRepository.
func NewMongoTemplateRepo(client *mongo.Client, dbName string) TemplateRepository {
	return &mongoTemplateRepo{
		coll: client.Database(dbName).Collection("templates"),
	}
}
