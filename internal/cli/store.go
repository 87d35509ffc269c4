package cli

import (
	"fmt"

	redisadapter "platcheck/internal/adapters/redis"
	"platcheck/pkg/adapters/file"
	"platcheck/pkg/adapters/memory"
	"platcheck/pkg/ports"
)

// BuildFailureStore assembles the corpus backend named by the
// configuration. The returned closer is a no-op for backends without a
// connection.
func BuildFailureStore(cfg StoreConfig) (ports.FailureStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case "", "memory":
		return memory.NewFailureStore(), noop, nil

	case "file":
		return file.NewFailureStore(cfg.Path), noop, nil

	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("redis store requires an address")
		}
		ttl, err := cfg.Redis.ParseTTL()
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis ttl: %w", err)
		}
		opts := []redisadapter.Option{}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redisadapter.WithPrefix(cfg.Redis.Prefix))
		}
		if ttl > 0 {
			opts = append(opts, redisadapter.WithTTL(ttl))
		}
		store := redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}
