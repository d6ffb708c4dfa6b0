// Package memory provides an in-memory Sink for tests and embedded use.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/revrec/store"
)

// Store keeps marshaled objects in a map keyed by their logical name.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
	closed  bool
}

var _ store.Sink = (*Store)(nil)

func New() *Store {
	return &Store{objects: make(map[string][]byte)}
}

// Put implements store.Sink.
func (s *Store) Put(_ context.Context, obj *store.Object) error {
	data, err := obj.Marshal()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	s.objects[obj.Name()] = data
	return nil
}

// Get returns the stored bytes for a logical name.
func (s *Store) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// List returns the logical names of all stored objects.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	return names
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Close implements store.Sink.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
