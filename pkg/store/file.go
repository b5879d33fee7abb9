package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// fileTimeFormat keeps directory listings chronological: the format is
// fixed-width, so lexicographic name order equals creation order.
const fileTimeFormat = "2006-01-02_15-04-05"

// FileStore persists results as pretty-printed JSON files, one per
// result, named output_<timestamp>_<id>.json.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates the results directory if needed and returns a
// store writing into it. An empty dir defaults to data/results relative
// to the working directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = filepath.Join("data", "results")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory results are written to.
func (s *FileStore) Dir() string { return s.dir }

// Save writes the result to its own JSON file, replacing any previous
// file for the same id.
func (s *FileStore) Save(ctx context.Context, r Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.ID == "" {
		return fmt.Errorf("store: result id is empty")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result %s: %w", r.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One file per id: drop the old file when a result is re-saved
	// with a different timestamp.
	old, err := s.locate(r.ID)
	switch {
	case err == nil:
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("replace result %s: %w", r.ID, err)
		}
	case errors.Is(err, ErrNotFound):
		// first save for this id
	default:
		return err
	}

	name := fmt.Sprintf("output_%s_%s.json", r.CreatedAt.UTC().Format(fileTimeFormat), r.ID)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write result %s: %w", r.ID, err)
	}
	return nil
}

// Get loads the result with the given id.
func (s *FileStore) Get(ctx context.Context, id string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.locate(id)
	if err != nil {
		return Result{}, err
	}
	return readResult(path)
}

// List loads stored results newest first.
func (s *FileStore) List(ctx context.Context, limit int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "output_") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	slices.Reverse(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		r, err := readResult(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Delete removes the result with the given id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.locate(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete result %s: %w", id, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open resources.
func (s *FileStore) Close() error { return nil }

// locate finds the file holding the given result id. Callers must hold
// at least the read lock.
func (s *FileStore) locate(id string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("read results dir: %w", err)
	}
	suffix := "_" + id + ".json"
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "output_") && strings.HasSuffix(e.Name(), suffix) {
			return filepath.Join(s.dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%s: %w", id, ErrNotFound)
}

func readResult(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return r, nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
