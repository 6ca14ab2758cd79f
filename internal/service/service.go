// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Service defines the interface for task backend operations.
// Commands never touch the store directly.
type Service interface {
	// ListTasks returns all tasks in collection order.
	ListTasks(ctx context.Context) ([]Task, error)

	// AddTask appends a new, not completed task and returns it.
	AddTask(ctx context.Context, description string) (Task, error)

	// CompleteTask marks the first task with the given ID as completed.
	// Returns ErrNotFound if no task has that ID.
	CompleteTask(ctx context.Context, id int) error

	// DeleteTask removes the first task with the given ID.
	// Returns ErrNotFound if no task has that ID.
	DeleteTask(ctx context.Context, id int) error

	// Close releases the underlying store.
	Close() error
}
