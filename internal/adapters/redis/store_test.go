package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"platcheck/internal/adapters/redis"
	"platcheck/pkg/domain"
	"platcheck/pkg/ports/tests"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	tests.FailureStoreContractTest(t, newTestStore(t))
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	a := redis.NewFromClient(client, redis.WithPrefix("corpus-a:"))
	b := redis.NewFromClient(client, redis.WithPrefix("corpus-b:"))

	ctx := context.Background()
	failure := &domain.Failure{
		ID:        "f-1",
		Candidate: "mswin32-1..",
		FoundAt:   time.Now().UTC(),
	}
	if err := a.Save(ctx, failure); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := b.Load(ctx, "f-1"); err != domain.ErrFailureNotFound {
		t.Errorf("expected ErrFailureNotFound from the other prefix, got %v", err)
	}
	if _, err := a.Load(ctx, "f-1"); err != nil {
		t.Errorf("unexpected error loading from the owning prefix: %v", err)
	}
}
