package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store backed by a MongoDB collection, for server
// deployments where results outlive a single process.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures the MongoDB connection.
type MongoOptions struct {
	URI        string // default mongodb://localhost:27017
	Database   string // default scenegraph
	Collection string // default results
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping before returning.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		opts.URI = "mongodb://localhost:27017"
	}
	if opts.Database == "" {
		opts.Database = "scenegraph"
	}
	if opts.Collection == "" {
		opts.Collection = "results"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect %s: %w", opts.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping %s: %w", opts.URI, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Save upserts the result document keyed by its id.
func (s *MongoStore) Save(ctx context.Context, r Result) error {
	if r.ID == "" {
		return fmt.Errorf("store: result id is empty")
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo save %s: %w", r.ID, err)
	}
	return nil
}

// Get loads the result document with the given id.
func (s *MongoStore) Get(ctx context.Context, id string) (Result, error) {
	var r Result
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Result{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Result{}, fmt.Errorf("mongo get %s: %w", id, err)
	}
	return r, nil
}

// List loads result documents newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Result, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOpts = findOpts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cursor.Close(ctx)

	results := []Result{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("mongo list decode: %w", err)
	}
	return results, nil
}

// Delete removes the result document with the given id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
