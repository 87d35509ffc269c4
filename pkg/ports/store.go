package ports

import (
	"context"

	"platcheck/pkg/domain"
)

// FailureStore defines the interface for persisting failure records found
// by the harness. A durable corpus lets regressions be replayed across runs
// and shared between machines.
type FailureStore interface {
	// Save persists a failure record under its ID.
	Save(ctx context.Context, failure *domain.Failure) error

	// Load retrieves a failure record by ID.
	// Returns domain.ErrFailureNotFound if no such record exists.
	Load(ctx context.Context, id string) (*domain.Failure, error)

	// List returns all stored failures, most recent first.
	List(ctx context.Context) ([]*domain.Failure, error)

	// Delete removes a failure record by ID.
	Delete(ctx context.Context, id string) error
}
