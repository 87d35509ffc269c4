package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"platcheck/pkg/domain"
	"platcheck/pkg/ports"
)

// Store implements ports.FailureStore using Redis. Failures are stored as
// JSON values with a ZSET index scored by discovery time, so listing comes
// back most recent first without scanning keys.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for failure records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for failure records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "platcheck:failure:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

var _ ports.FailureStore = (*Store)(nil)

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the failure to Redis and indexes it by discovery time.
func (s *Store) Save(ctx context.Context, failure *domain.Failure) error {
	data, err := json.Marshal(failure)
	if err != nil {
		return fmt.Errorf("failed to marshal failure: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(failure.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(failure.FoundAt.UnixNano()),
		Member: failure.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a failure from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Failure, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrFailureNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var failure domain.Failure
	if err := json.Unmarshal([]byte(val), &failure); err != nil {
		return nil, fmt.Errorf("failed to unmarshal failure: %w", err)
	}
	return &failure, nil
}

// List returns all failures, most recent first, using the ZSET index.
// Records whose value expired but whose index entry survived are pruned
// lazily here.
func (s *Store) List(ctx context.Context) ([]*domain.Failure, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list failures: %w", err)
	}

	out := make([]*domain.Failure, 0, len(ids))
	for _, id := range ids {
		failure, err := s.Load(ctx, id)
		if err != nil {
			if err == domain.ErrFailureNotFound {
				s.client.ZRem(ctx, s.indexKey(), id)
				continue
			}
			return nil, err
		}
		out = append(out, failure)
	}
	return out, nil
}

// Delete removes the failure and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
