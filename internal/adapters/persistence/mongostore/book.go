package mongostore

import (
	"context"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type bookStore struct {
	col *mongo.Collection
}

func (s *bookStore) Create(ctx context.Context, book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	book.CreatedAt, book.UpdatedAt = now, now
	return insertOne(ctx, s.col, book)
}

func (s *bookStore) GetByID(ctx context.Context, id string) (*models.Book, error) {
	return findOne[models.Book](ctx, s.col, byID(id))
}

func (s *bookStore) UpdateFields(ctx context.Context, id string, fields repositories.Fields) (*models.Book, error) {
	return updateFields[models.Book](ctx, s.col, id, fields)
}

func (s *bookStore) ListActive(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	filter := bson.D{{Key: "active", Value: true}}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	books, err := findMany[models.Book](ctx, s.col, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}
