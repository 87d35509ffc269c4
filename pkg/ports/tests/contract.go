package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"platcheck/pkg/domain"
	"platcheck/pkg/ports"
)

// FailureStoreContractTest is a reusable test suite that verifies if an
// adapter complies with ports.FailureStore.
func FailureStoreContractTest(t *testing.T, store ports.FailureStore) {
	t.Helper()
	ctx := context.Background()

	newFailure := func(id string, at time.Time) *domain.Failure {
		return &domain.Failure{
			ID:        id,
			Seed:      42,
			Candidate: "x86_64-darwin-20-gnu",
			Shrunk:    "darwin",
			Shrinks:   2,
			Message:   fmt.Sprintf("round-trip mismatch for %q", "darwin"),
			FoundAt:   at,
		}
	}

	// 1. Save and Load round-trip
	t.Run("SaveLoad", func(t *testing.T) {
		want := newFailure("f-1", time.Now().UTC().Truncate(time.Second))
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("unexpected error saving failure: %v", err)
		}

		got, err := store.Load(ctx, "f-1")
		if err != nil {
			t.Fatalf("unexpected error loading failure: %v", err)
		}
		if got.ID != want.ID || got.Candidate != want.Candidate || got.Shrunk != want.Shrunk {
			t.Errorf("loaded failure mismatch. got %+v, want %+v", got, want)
		}
		if !got.FoundAt.Equal(want.FoundAt) {
			t.Errorf("FoundAt mismatch. got %v, want %v", got.FoundAt, want.FoundAt)
		}
	})

	// 2. Load (NotFound)
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-failure")
		if !errors.Is(err, domain.ErrFailureNotFound) {
			t.Errorf("expected ErrFailureNotFound, got %v", err)
		}
	})

	// 3. List orders most recent first
	t.Run("List_RecentFirst", func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Second)
		older := newFailure("f-older", base.Add(-time.Hour))
		newer := newFailure("f-newer", base.Add(time.Hour))
		if err := store.Save(ctx, older); err != nil {
			t.Fatalf("unexpected error saving failure: %v", err)
		}
		if err := store.Save(ctx, newer); err != nil {
			t.Fatalf("unexpected error saving failure: %v", err)
		}

		failures, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing failures: %v", err)
		}
		if len(failures) < 2 {
			t.Fatalf("expected at least 2 failures, got %d", len(failures))
		}

		pos := make(map[string]int)
		for i, f := range failures {
			pos[f.ID] = i
		}
		if pos["f-newer"] > pos["f-older"] {
			t.Errorf("expected f-newer before f-older, got order %v", pos)
		}
	})

	// 4. Save overwrites an existing record
	t.Run("Save_Overwrite", func(t *testing.T) {
		first := newFailure("f-dup", time.Now().UTC())
		if err := store.Save(ctx, first); err != nil {
			t.Fatalf("unexpected error saving failure: %v", err)
		}
		second := newFailure("f-dup", time.Now().UTC())
		second.Shrunk = "mswin32"
		if err := store.Save(ctx, second); err != nil {
			t.Fatalf("unexpected error overwriting failure: %v", err)
		}

		got, err := store.Load(ctx, "f-dup")
		if err != nil {
			t.Fatalf("unexpected error loading failure: %v", err)
		}
		if got.Shrunk != "mswin32" {
			t.Errorf("overwrite lost. got shrunk %q, want %q", got.Shrunk, "mswin32")
		}
	})

	// 5. Delete removes the record
	t.Run("Delete", func(t *testing.T) {
		f := newFailure("f-del", time.Now().UTC())
		if err := store.Save(ctx, f); err != nil {
			t.Fatalf("unexpected error saving failure: %v", err)
		}
		if err := store.Delete(ctx, "f-del"); err != nil {
			t.Fatalf("unexpected error deleting failure: %v", err)
		}
		if _, err := store.Load(ctx, "f-del"); !errors.Is(err, domain.ErrFailureNotFound) {
			t.Errorf("expected ErrFailureNotFound after delete, got %v", err)
		}
	})

	// 6. Delete is idempotent
	t.Run("Delete_Missing", func(t *testing.T) {
		if err := store.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("deleting a missing failure must not error, got %v", err)
		}
	})
}
