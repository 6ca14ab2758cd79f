package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"todo/internal/service"
)

// DefaultBoltPath is the database file used when none is configured.
const DefaultBoltPath = "tasks.db"

const boltTasksBucket = "tasks"

// Bolt stores the collection in a bbolt database. Keys are the big-endian
// position of each task, so cursor order is collection order and duplicate
// IDs are kept.
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens (creating if needed) the database at path.
func NewBolt(path string) (*Bolt, error) {
	if path == "" {
		return nil, errors.New("store: required bolt path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create bolt dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: opening bolt: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, berr := tx.CreateBucketIfNotExists([]byte(boltTasksBucket))
		return berr
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: cant init bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (s *Bolt) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Bolt) Load(ctx context.Context) ([]service.Task, error) {
	if s.db == nil {
		return nil, errors.New("store: bolt not open")
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(boltTasksBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var t service.Task
			if err := json.Unmarshal(v, &t); err != nil {
				return corrupt(fmt.Errorf("task at key %x: %w", k, err))
			}
			tasks = append(tasks, t)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Bolt) Save(ctx context.Context, tasks []service.Task) error {
	if s.db == nil {
		return errors.New("store: bolt not open")
	} else if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(boltTasksBucket)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("store: drop bucket: %w", err)
		}
		bucket, err := tx.CreateBucket([]byte(boltTasksBucket))
		if err != nil {
			return fmt.Errorf("store: create bucket: %w", err)
		}
		for i, t := range tasks {
			v, err := json.Marshal(t)
			if err != nil {
				return fmt.Errorf("store: cant marshal task: %w", err)
			}
			if err := bucket.Put(positionKey(i), v); err != nil {
				return fmt.Errorf("store: put task %d: %w", t.ID, err)
			}
		}
		return nil
	})
}

func positionKey(i int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(i))
	return k
}
