// Package mongo provides a Sink backed by a MongoDB collection, one
// document per stored object.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/revrec/store"
)

const defaultCollection = "revrec_objects"

// compile-time interface check
var _ store.Sink = (*Store)(nil)

// objectDoc is the document shape persisted per object.
type objectDoc struct {
	Name        string    `bson:"_id"`
	Resource    string    `bson:"resource"`
	GeneratedAt time.Time `bson:"generated_at"`
	Payload     bson.Raw  `bson:"payload"`
}

// Store implements store.Sink on a MongoDB collection.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection

	mu     sync.Mutex
	closed bool
}

// Config holds connection settings for the MongoDB sink.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// New connects to MongoDB and returns a sink writing to the configured
// collection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("revrec/mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx) //nolint:errcheck // best-effort cleanup on failed ping
		return nil, fmt.Errorf("revrec/mongo: ping: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}

	return &Store{
		client: client,
		col:    client.Database(cfg.Database).Collection(collection),
	}, nil
}

// NewWithCollection wraps an existing collection, for callers that manage
// their own client.
func NewWithCollection(col *mongo.Collection) *Store {
	return &Store{col: col}
}

// Put implements store.Sink. Re-putting an object with the same logical
// name replaces it.
func (s *Store) Put(ctx context.Context, obj *store.Object) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return store.ErrClosed
	}

	payload, err := bson.Marshal(bson.M{"records": obj.Payload})
	if err != nil {
		return fmt.Errorf("revrec/mongo: encode %s: %w", obj.Name(), err)
	}

	doc := objectDoc{
		Name:        obj.Name(),
		Resource:    obj.Resource,
		GeneratedAt: obj.GeneratedAt.UTC(),
		Payload:     payload,
	}

	_, err = s.col.ReplaceOne(ctx,
		bson.M{"_id": doc.Name},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("revrec/mongo: put %s: %w", obj.Name(), err)
	}
	return nil
}

// Get fetches a stored object document by logical name.
func (s *Store) Get(ctx context.Context, name string) (*store.Object, error) {
	var doc objectDoc
	err := s.col.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("revrec/mongo: get %s: %w", name, err)
	}

	return &store.Object{
		Resource:    doc.Resource,
		GeneratedAt: doc.GeneratedAt,
		Payload:     doc.Payload,
	}, nil
}

// Close implements store.Sink.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("revrec/mongo: disconnect: %w", err)
	}
	return nil
}
