package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"todo/internal/service"
)

// DefaultJSONPath is the task file used when none is configured.
const DefaultJSONPath = "tasks.json"

// JSONFile stores the collection as a pretty-printed JSON array in one file.
type JSONFile struct {
	path string
}

// NewJSONFile returns a store backed by the file at path. The file is not
// touched until Load or Save.
func NewJSONFile(path string) (*JSONFile, error) {
	if path == "" {
		return nil, errors.New("store: required task file path")
	}
	return &JSONFile{path: path}, nil
}

func (s *JSONFile) Load(ctx context.Context) ([]service.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []service.Task{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	return decodeTasks(data)
}

func (s *JSONFile) Save(ctx context.Context, tasks []service.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeTasks(tasks)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data, fileMode(s.path, 0o644))
}

// Close is a no-op; the file is only open during Load and Save.
func (s *JSONFile) Close() error {
	return nil
}

// fileMode returns the permissions of the existing file at path, or def.
func fileMode(path string, def os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return def
	}
	return info.Mode().Perm()
}

// writeFileAtomic writes data to a temporary file next to path, syncs it and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("store: open tmp: %w", err)
	}

	// OpenFile applies the umask.
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: chmod tmp: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: write tmp: %w", err)
	} else if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: fsync: %w", err)
	} else if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: close tmp: %w", err)
	} else if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: rename tmp: %w", err)
	}
	return nil
}
