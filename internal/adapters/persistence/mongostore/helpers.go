package mongostore

import (
	"context"
	"errors"
	"time"

	"bookloan/internal/adapters/persistence/repositories"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// wrapError maps driver errors onto the shared storage errors
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// findOne decodes a single document; a missing document is ErrNotFound
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var result T
	if err := col.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}

// findMany decodes every matching document
func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	results := []*T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	return results, cursor.Err()
}

func insertOne(ctx context.Context, col *mongo.Collection, doc interface{}) error {
	_, err := col.InsertOne(ctx, doc)
	return wrapError(err)
}

// updateFields sets fields on the document with the given _id and returns
// the document as it is after the update
func updateFields[T any](ctx context.Context, col *mongo.Collection, id string, fields repositories.Fields) (*T, error) {
	set := bson.D{{Key: "updated_at", Value: time.Now().UTC()}}
	for k, v := range fields {
		set = append(set, bson.E{Key: k, Value: v})
	}

	var result T
	err := col.FindOneAndUpdate(ctx, byID(id),
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&result)
	if err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}
