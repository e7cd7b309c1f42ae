package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultCollection = "kv"

// Store keeps one document per key: {_id: key, value: <json string>}.
type Store struct {
	coll *mongo.Collection
}

type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// NewStore returns a Store on the named collection ("kv" when empty).
func NewStore(db *mongo.Database, collection string) *Store {
	if collection == "" {
		collection = defaultCollection
	}
	return &Store{coll: db.Collection(collection)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find value: %w", err)
	}
	return []byte(doc.Value), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		kvDocument{Key: key, Value: string(value)},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace value: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete value: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
