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

type userStore struct {
	col *mongo.Collection
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	return insertOne(ctx, s.col, user)
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.col, byID(id))
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.col, bson.D{{Key: "email", Value: email}})
}

func (s *userStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.D{{Key: "email", Value: email}}, options.Count().SetLimit(1))
	return n > 0, wrapError(err)
}

func (s *userStore) UpdateFields(ctx context.Context, id string, fields repositories.Fields) (*models.User, error) {
	return updateFields[models.User](ctx, s.col, id, fields)
}
