// Package gcs provides a Sink that writes each object as a JSON blob in a
// Google Cloud Storage bucket, named by the object's logical name.
package gcs

import (
	"context"
	"fmt"
	"sync"

	gstorage "cloud.google.com/go/storage"

	"github.com/xraph/revrec/store"
)

// compile-time interface check
var _ store.Sink = (*Store)(nil)

// Store implements store.Sink on a GCS bucket.
type Store struct {
	client *gstorage.Client
	bucket *gstorage.BucketHandle

	// ownsClient records whether Close should tear the client down.
	ownsClient bool

	mu     sync.Mutex
	closed bool
}

// New creates a GCS sink using application default credentials.
func New(ctx context.Context, bucket string) (*Store, error) {
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("revrec/gcs: client: %w", err)
	}
	return &Store{
		client:     client,
		bucket:     client.Bucket(bucket),
		ownsClient: true,
	}, nil
}

// NewWithClient wraps an existing client, for callers that manage their
// own credentials and lifecycle.
func NewWithClient(client *gstorage.Client, bucket string) *Store {
	return &Store{client: client, bucket: client.Bucket(bucket)}
}

// Put implements store.Sink. The blob name is the object's logical name,
// so re-putting the same object overwrites the blob.
func (s *Store) Put(ctx context.Context, obj *store.Object) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return store.ErrClosed
	}

	data, err := obj.Marshal()
	if err != nil {
		return err
	}

	w := s.bucket.Object(obj.Name()).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close() //nolint:errcheck // the write error is the one worth reporting
		return fmt.Errorf("revrec/gcs: write %s: %w", obj.Name(), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("revrec/gcs: commit %s: %w", obj.Name(), err)
	}
	return nil
}

// Close implements store.Sink.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if !s.ownsClient {
		return nil
	}
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("revrec/gcs: close client: %w", err)
	}
	return nil
}
