// Package local implements the service.Service interface over a local task store.
package local

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/store"
)

// Options configures a Client.
type Options struct {
	// IDPolicy is config.IDPolicyCount (default) or config.IDPolicyMax.
	IDPolicy string

	// Strict returns load failures instead of treating them as an empty list.
	Strict bool

	Logger *zap.Logger
}

// Client implements service.Service. Every call loads the whole collection
// and mutating calls save it back.
type Client struct {
	store    store.Store
	idPolicy string
	strict   bool
	log      *zap.Logger
}

// New creates a client over st. The client owns st and closes it in Close.
func New(st store.Store, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := opts.IDPolicy
	if policy == "" {
		policy = config.IDPolicyCount
	}
	return &Client{
		store:    st,
		idPolicy: policy,
		strict:   opts.Strict,
		log:      logger,
	}
}

// Open opens the store described by cfg and returns a client for it.
func Open(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	st, err := store.Open(cfg.Backend, cfg.File)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened",
		zap.String("backend", cfg.Backend),
		zap.String("file", cfg.File),
		zap.String("id_policy", cfg.IDPolicy),
		zap.Bool("strict", cfg.Strict),
	)
	return New(st, Options{
		IDPolicy: cfg.IDPolicy,
		Strict:   cfg.Strict,
		Logger:   logger,
	}), nil
}

// Close closes the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}

// ListTasks returns all tasks in collection order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	return c.load(ctx)
}

// AddTask appends a new task.
func (c *Client) AddTask(ctx context.Context, description string) (service.Task, error) {
	tasks, err := c.load(ctx)
	if err != nil {
		return service.Task{}, err
	}

	task := service.Task{
		ID:          c.nextID(tasks),
		Description: description,
	}
	tasks = append(tasks, task)

	if err := c.save(ctx, tasks); err != nil {
		return service.Task{}, err
	}
	c.log.Debug("task added", zap.Int("id", task.ID), zap.Int("count", len(tasks)))
	return task, nil
}

// CompleteTask marks the first task with id as completed.
func (c *Client) CompleteTask(ctx context.Context, id int) error {
	tasks, err := c.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	tasks[i].Completed = true

	return c.save(ctx, tasks)
}

// DeleteTask removes the first task with id, keeping the order of the rest.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	tasks, err := c.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	tasks = slices.Delete(tasks, i, i+1)

	return c.save(ctx, tasks)
}

// load reads the collection. Unless strict, a failed read is logged and
// treated as an empty collection.
func (c *Client) load(ctx context.Context) ([]service.Task, error) {
	tasks, err := c.store.Load(ctx)
	if err == nil {
		return tasks, nil
	}
	if c.strict || ctx.Err() != nil {
		return nil, err
	}
	c.log.Debug("cant load tasks, starting from an empty list", zap.Error(err))
	return []service.Task{}, nil
}

func (c *Client) save(ctx context.Context, tasks []service.Task) error {
	if err := c.store.Save(ctx, tasks); err != nil {
		return err
	}
	c.log.Debug("tasks saved", zap.Int("count", len(tasks)))
	return nil
}

func (c *Client) nextID(tasks []service.Task) int {
	if c.idPolicy == config.IDPolicyMax {
		maxID := 0
		for _, t := range tasks {
			maxID = max(maxID, t.ID)
		}
		return maxID + 1
	}
	return len(tasks) + 1
}

func indexOf(tasks []service.Task, id int) int {
	return slices.IndexFunc(tasks, func(t service.Task) bool {
		return t.ID == id
	})
}
