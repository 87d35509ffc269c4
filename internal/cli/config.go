package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"platcheck/pkg/generator"
	"platcheck/pkg/runner"
)

// DefaultConfigPath is where the harness looks for configuration when no
// --config flag is given. A missing default file is not an error.
const DefaultConfigPath = "platcheck.yaml"

// Config is the file-level configuration for the harness.
type Config struct {
	Trials                 int     `yaml:"trials"`
	Seed                   int64   `yaml:"seed"`
	MaxDiscardRatio        float64 `yaml:"max_discard_ratio"`
	MaxConsecutiveDiscards int     `yaml:"max_consecutive_discards"`
	MaxShrinkAttempts      int     `yaml:"max_shrink_attempts"`

	MaxDepth     int `yaml:"max_depth"`
	MaxFragments int `yaml:"max_fragments"`

	// Vocabulary holds extra atoms merged into the built-in vocabulary.
	// Kept loose here and decoded separately so partial sections
	// (e.g. only extra versions) work.
	Vocabulary map[string]any `yaml:"vocabulary"`

	LogLevel string      `yaml:"log_level"`
	LogJSON  bool        `yaml:"log_json"`
	Store    StoreConfig `yaml:"store"`
}

// StoreConfig selects and configures the failure corpus backend.
type StoreConfig struct {
	// Kind is one of "memory", "file" or "redis".
	Kind string `yaml:"kind"`
	// Path is the corpus directory for the file backend.
	Path string `yaml:"path"`
	// Redis configures the redis backend.
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig carries connection settings for the redis corpus. TTL is a
// duration string ("1h", "30m"); empty means records never expire.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
	TTL      string `yaml:"ttl"`
}

// ParseTTL parses the configured record lifetime.
func (r RedisConfig) ParseTTL() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(r.TTL)
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() Config {
	rc := runner.DefaultConfig()
	return Config{
		Trials:                 rc.Trials,
		MaxDiscardRatio:        rc.MaxDiscardRatio,
		MaxConsecutiveDiscards: rc.MaxConsecutiveDiscards,
		MaxShrinkAttempts:      rc.MaxShrinkAttempts,
		MaxDepth:               generator.DefaultMaxDepth,
		MaxFragments:           generator.DefaultMaxFragments,
		LogLevel:               "info",
		Store:                  StoreConfig{Kind: "memory"},
	}
}

// LoadConfig reads a YAML configuration file, layered over the defaults.
// The default path is optional; an explicitly requested file must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// RunnerConfig maps the file configuration onto the trial loop's record.
func (c Config) RunnerConfig() runner.Config {
	return runner.Config{
		Trials:                 c.Trials,
		MaxDiscardRatio:        c.MaxDiscardRatio,
		MaxConsecutiveDiscards: c.MaxConsecutiveDiscards,
		MaxShrinkAttempts:      c.MaxShrinkAttempts,
		Seed:                   c.Seed,
	}
}

// BuildVocabulary decodes the loose vocabulary section and merges it into
// the built-in atoms.
func (c Config) BuildVocabulary() (generator.Vocabulary, error) {
	vocab := generator.DefaultVocabulary()
	if len(c.Vocabulary) == 0 {
		return vocab, nil
	}

	var extra generator.Vocabulary
	if err := mapstructure.Decode(c.Vocabulary, &extra); err != nil {
		return vocab, fmt.Errorf("failed to decode vocabulary: %w", err)
	}
	return vocab.Merge(extra), nil
}

// Level parses the configured log level, defaulting to info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
