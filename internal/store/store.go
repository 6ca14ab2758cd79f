// Package store persists the task collection.
//
// A Store always reads and writes the whole collection: Load returns every
// task in collection order and Save replaces the stored collection with the
// given one.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo/internal/service"
)

// Supported backends.
const (
	BackendJSON = "json"
	BackendBolt = "bbolt"
)

// ErrCorrupt is returned by Load when stored data does not decode into a task
// collection.
var ErrCorrupt = errors.New("store: corrupt task data")

// Store describes a backing medium for the task collection.
type Store interface {
	// Load returns the stored collection. A missing backing file yields an
	// empty collection and no error.
	Load(ctx context.Context) ([]service.Task, error)

	// Save replaces the stored collection with tasks.
	Save(ctx context.Context, tasks []service.Task) error

	Close() error
}

// Open opens the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendJSON:
		return NewJSONFile(path)
	case BackendBolt:
		return NewBolt(path)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %v", ErrCorrupt, err)
}
