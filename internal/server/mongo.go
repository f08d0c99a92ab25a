package server

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/canopy/pkg/graph"
)

// graphRecord is the MongoDB document shape for a stored graph.
type graphRecord struct {
	Name  string    `bson:"name"`
	Graph graph.Doc `bson:"graph"`
}

// MongoStore persists graphs in a MongoDB collection, one document per
// name. Use it when graphs must survive restarts or be shared between
// service instances.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB deployment at uri and uses the
// "graphs" collection of the named database. The connection is verified
// with a ping before returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("graphs"),
	}, nil
}

func (s *MongoStore) Put(ctx context.Context, name string, doc graph.Doc) error {
	rec := graphRecord{Name: name, Graph: doc}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"name": name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (graph.Doc, error) {
	var rec graphRecord
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return graph.Doc{}, ErrNotFound
	}
	if err != nil {
		return graph.Doc{}, fmt.Errorf("load %s: %w", name, err)
	}
	return rec.Graph, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1}).SetSort(bson.M{"name": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var rec graphRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("list decode: %w", err)
		}
		names = append(names, rec.Name)
	}
	return names, cur.Err()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
