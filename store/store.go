// Package store defines the outbound sink contract for extracted records
// and generated schedules, plus the logical object naming shared by all
// backends.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors shared by sink backends.
var (
	ErrClosed   = errors.New("store: sink is closed")
	ErrNotFound = errors.New("store: object not found")
)

// Object is one durable artifact: a batch of extracted records or a
// generated schedule, keyed by a logical resource name and the time it
// was produced.
type Object struct {
	Resource    string    `json:"resource"`
	GeneratedAt time.Time `json:"generated_at"`
	Payload     any       `json:"payload"`
}

// NewObject builds an Object stamped with the given generation time.
func NewObject(resource string, generatedAt time.Time, payload any) *Object {
	return &Object{Resource: resource, GeneratedAt: generatedAt, Payload: payload}
}

// Name returns the logical storage name:
// "<resource>/<resource>_<YYYYMMDD_HHMMSS>.json".
func (o *Object) Name() string {
	ts := o.GeneratedAt.UTC().Format("20060102_150405")
	return fmt.Sprintf("%s/%s_%s.json", o.Resource, o.Resource, ts)
}

// Marshal serializes the payload as indented JSON.
func (o *Object) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(o.Payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: marshal %s: %w", o.Name(), err)
	}
	return data, nil
}

// Sink consumes objects for durable storage. Implementations must be safe
// for concurrent use: the extraction runner writes resources in parallel.
type Sink interface {
	// Put stores one object under its logical name.
	Put(ctx context.Context, obj *Object) error
	// Close releases backend resources. Puts after Close fail with ErrClosed.
	Close() error
}
