// Package file implements ports.FailureStore on the local filesystem.
// Each failure is stored as one JSON file, so a corpus directory can be
// checked into a repo or diffed by hand.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"platcheck/pkg/domain"
	"platcheck/pkg/ports"
)

// FailureStore stores failure records as JSON files in a configured
// directory.
type FailureStore struct {
	BasePath string
}

// NewFailureStore creates a FailureStore rooted at basePath.
// If basePath is empty, it defaults to ".platcheck/failures".
func NewFailureStore(basePath string) *FailureStore {
	if basePath == "" {
		basePath = filepath.Join(".platcheck", "failures")
	}
	return &FailureStore{BasePath: basePath}
}

var _ ports.FailureStore = (*FailureStore)(nil)

func (f *FailureStore) path(id string) string {
	return filepath.Join(f.BasePath, id+".json")
}

// Save persists the failure record to a JSON file.
func (f *FailureStore) Save(_ context.Context, failure *domain.Failure) error {
	if failure.ID == "" {
		return fmt.Errorf("failure ID cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure corpus directory: %w", err)
	}

	data, err := json.MarshalIndent(failure, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal failure: %w", err)
	}

	if err := os.WriteFile(f.path(failure.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write failure file: %w", err)
	}

	return nil
}

// Load retrieves a failure record from its JSON file.
func (f *FailureStore) Load(_ context.Context, id string) (*domain.Failure, error) {
	if id == "" {
		return nil, fmt.Errorf("failure ID cannot be empty")
	}

	data, err := os.ReadFile(f.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFailureNotFound
		}
		return nil, fmt.Errorf("failed to read failure file: %w", err)
	}

	var failure domain.Failure
	if err := json.Unmarshal(data, &failure); err != nil {
		return nil, fmt.Errorf("failed to unmarshal failure: %w", err)
	}

	return &failure, nil
}

// List reads every failure file in the corpus, most recent first.
func (f *FailureStore) List(ctx context.Context) ([]*domain.Failure, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	var out []*domain.Failure
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		failure, err := f.Load(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		out = append(out, failure)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].FoundAt.Equal(out[j].FoundAt) {
			return out[i].FoundAt.After(out[j].FoundAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes the failure file. Deleting a missing ID is a no-op.
func (f *FailureStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("failure ID cannot be empty")
	}

	if err := os.Remove(f.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete failure file: %w", err)
	}
	return nil
}
