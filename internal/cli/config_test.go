package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platcheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("explicitly requested missing config must error")
	}

	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("missing default config must not error: %v", err)
	}
	if cfg.Trials != 2000 {
		t.Errorf("expected default 2000 trials, got %d", cfg.Trials)
	}
	if cfg.Store.Kind != "memory" {
		t.Errorf("expected default memory store, got %q", cfg.Store.Kind)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
trials: 500
seed: 42
log_level: debug
store:
  kind: redis
  redis:
    addr: localhost:6379
    prefix: "ci:"
    ttl: 1h
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Trials != 500 || cfg.Seed != 42 {
		t.Errorf("overrides not applied: trials=%d seed=%d", cfg.Trials, cfg.Seed)
	}
	if cfg.MaxDiscardRatio != DefaultConfig().MaxDiscardRatio {
		t.Errorf("unset field lost its default: %v", cfg.MaxDiscardRatio)
	}
	ttl, err := cfg.Store.Redis.ParseTTL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ttl != time.Hour {
		t.Errorf("expected 1h TTL, got %v", ttl)
	}
}

func TestBuildVocabularyMergesExtras(t *testing.T) {
	path := writeConfig(t, `
vocabulary:
  versions: ["9.9.9"]
  oses: ["plan9"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vocab, err := cfg.BuildVocabulary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contains := func(list []string, want string) bool {
		for _, s := range list {
			if s == want {
				return true
			}
		}
		return false
	}
	if !contains(vocab.Versions, "9.9.9") {
		t.Error("extra version not merged")
	}
	if !contains(vocab.OSes, "plan9") {
		t.Error("extra os not merged")
	}
	if !contains(vocab.OSes, "linux") {
		t.Error("built-in vocabulary lost during merge")
	}
}

func TestBuildFailureStoreKinds(t *testing.T) {
	if _, _, err := BuildFailureStore(StoreConfig{Kind: "memory"}); err != nil {
		t.Errorf("memory store: %v", err)
	}
	if _, _, err := BuildFailureStore(StoreConfig{Kind: "file", Path: t.TempDir()}); err != nil {
		t.Errorf("file store: %v", err)
	}
	if _, _, err := BuildFailureStore(StoreConfig{Kind: "redis"}); err == nil {
		t.Error("redis store without address must error")
	}
	if _, _, err := BuildFailureStore(StoreConfig{Kind: "bogus"}); err == nil {
		t.Error("unknown store kind must error")
	}
}
