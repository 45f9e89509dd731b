package store

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// snapshotDoc is the stored shape: the JSON document kept verbatim as text so
// the file and Mongo backends hold the same layout
type snapshotDoc struct {
	Name      string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend keeps each document as one entry of a snapshots collection
type MongoBackend struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoBackend returns a backend writing into collection
func NewMongoBackend(collection *mongo.Collection) *MongoBackend {
	return &MongoBackend{collection: collection, timeout: 5 * time.Second}
}

// Load fetches the named snapshot; a missing one reports os.ErrNotExist
func (b *MongoBackend) Load(name string) ([]byte, error) {
	if b.collection == nil {
		return nil, errors.New("mongo collection not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	var doc snapshotDoc
	err := b.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, os.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Data), nil
}

// Save replaces the named snapshot in a single write
func (b *MongoBackend) Save(name string, data []byte) error {
	if b.collection == nil {
		return errors.New("mongo collection not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	doc := snapshotDoc{Name: name, Data: string(data), UpdatedAt: time.Now()}
	_, err := b.collection.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	return err
}
