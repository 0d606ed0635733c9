// File: database/repository/bookinglink/mongo.go
package linkRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hireslot/models"
)

// ErrSlugTaken is returned when a create or update collides with another
// link's urlSlug; the unique index is the sole enforcement.
var ErrSlugTaken = errors.New("url slug already in use")

func (r *mongoLinkRepo) Create(ctx context.Context, link *models.BookingLink) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, link)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlugTaken
	}
	return err
}

func (r *mongoLinkRepo) GetByID(ctx context.Context, id string) (*models.BookingLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var link models.BookingLink
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *mongoLinkRepo) GetBySlug(ctx context.Context, slug string) (*models.BookingLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var link models.BookingLink
	if err := r.coll.FindOne(ctx, bson.M{"urlSlug": slug}).Decode(&link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *mongoLinkRepo) FindByTemplateID(ctx context.Context, templateID string) ([]models.BookingLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"templateId": templateID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []models.BookingLink
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (r *mongoLinkRepo) Update(ctx context.Context, link *models.BookingLink) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": link.ID}, link)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlugTaken
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoLinkRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
