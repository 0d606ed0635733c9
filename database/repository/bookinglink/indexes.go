// File: database/repository/bookinglink/indexes.go
package linkRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the booking_links collection.
func (r *mongoLinkRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "urlSlug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_url_slug"),
		},
		// Fan-out query pattern for template-edit invalidation.
		{
			Keys:    bson.D{{Key: "templateId", Value: 1}},
			Options: options.Index().SetName("template_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking link indexes: %w", err)
	}
	return nil
}
