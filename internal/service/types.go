// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single to-do item.
// The JSON field names are the persisted format of the task file.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
