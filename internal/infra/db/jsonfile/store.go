package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

// DefaultFilename matches the file the original CLI wrote next to itself.
const DefaultFilename = "validated_ideas.json"

// Store keeps the whole collection as one JSON array. Every Append reads the
// file, appends in memory and rewrites it. There is no lock: one writer at a time.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFilename
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns every record; a missing or zero-length file is an empty collection.
func (s *Store) Load(ctx context.Context) ([]*domain.ResultRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var out []*domain.ResultRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreCorrupted, s.path, err)
	}
	return out, nil
}

// Append adds rec to the end of the collection. A corrupted file is left untouched.
func (s *Store) Append(ctx context.Context, rec *domain.ResultRecord) error {
	all, err := s.Load(ctx)
	if err != nil {
		return err
	}
	all = append(all, rec)

	data, err := json.MarshalIndent(all, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Check reports whether the collection can be read. Used by health checks.
func (s *Store) Check(ctx context.Context) error {
	_, err := s.Load(ctx)
	return err
}
