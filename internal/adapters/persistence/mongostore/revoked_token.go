package mongostore

import (
	"context"
	"errors"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type revokedTokenStore struct {
	col *mongo.Collection
}

func (s *revokedTokenStore) Revoke(ctx context.Context, token *models.RevokedToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	err := insertOne(ctx, s.col, token)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil
	}
	return err
}

func (s *revokedTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.col.CountDocuments(ctx, byID(tokenID), options.Count().SetLimit(1))
	return n > 0, wrapError(err)
}

// DeleteExpired complements the TTL index, which only runs about once a minute
func (s *revokedTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: now}}}})
	if err != nil {
		return 0, wrapError(err)
	}
	return res.DeletedCount, nil
}
