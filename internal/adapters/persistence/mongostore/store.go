// Package mongostore implements the repositories on MongoDB.
//
// Documents are encoded through the bson tags of the models package, so
// document keys match the SQL column names used by repositories.Fields.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names
const (
	ColUsers         = "users"
	ColBooks         = "books"
	ColReservations  = "reservations"
	ColRevokedTokens = "revoked_tokens"
)

// Store is the MongoDB storage driver
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and prepares the indexes of dbName
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}

	// The unique email index is what makes registration race-free.
	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("mongostore: ensure indexes failed: %w", err)
	}

	logger.With("mongostore").WithField("db", dbName).Info("mongodb connected")
	return s, nil
}

// Close disconnects the client
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Stores returns the repositories backed by this store
func (s *Store) Stores() *repositories.Stores {
	return &repositories.Stores{
		Users:         &userStore{col: s.col(ColUsers)},
		Books:         &bookStore{col: s.col(ColBooks)},
		RevokedTokens: &revokedTokenStore{col: s.col(ColRevokedTokens)},
		Ping:          s.Ping,
	}
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := []struct {
		col   string
		model mongo.IndexModel
	}{
		{ColUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{ColBooks, mongo.IndexModel{Keys: bson.D{{Key: "active", Value: 1}, {Key: "created_at", Value: -1}}}},
		{ColReservations, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}}},
		{ColReservations, mongo.IndexModel{Keys: bson.D{{Key: "book_id", Value: 1}}}},
		// Denylist entries expire with the token they name
		{ColRevokedTokens, mongo.IndexModel{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		}},
	}

	for _, i := range indexes {
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, i.model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}
	return nil
}
