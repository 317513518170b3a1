package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depwalk/pkg/deps"
	errs "github.com/matzehuels/depwalk/pkg/errors"
)

// Config holds defaults read from the YAML config file. Command-line flags
// take precedence over every field.
//
//	repo: https://api.nuget.org/v3/index.json
//	mode: online
//	max_depth: 4
//	filter: Tests
//	cache_ttl: 12h
//	redis_url: redis://localhost:6379/0
type Config struct {
	Repo     string `yaml:"repo"`
	Mode     string `yaml:"mode"`
	MaxDepth *int   `yaml:"max_depth"`
	Filter   string `yaml:"filter"`
	CacheTTL string `yaml:"cache_ttl"`
	RedisURL string `yaml:"redis_url"`

	ttl time.Duration
}

// TTL returns the configured cache duration or the default.
func (c Config) TTL() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return deps.DefaultCacheTTL
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return parseConfig(data, path)
}

func parseConfig(data []byte, path string) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if cfg.CacheTTL != "" {
		ttl, err := time.ParseDuration(cfg.CacheTTL)
		if err != nil || ttl <= 0 {
			return Config{}, errs.New(errs.ErrCodeInvalidConfig, "config %s: cache_ttl must be a positive duration, got %q", path, cfg.CacheTTL)
		}
		cfg.ttl = ttl
	}
	if cfg.MaxDepth != nil && *cfg.MaxDepth < 0 {
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "config %s: max_depth must be non-negative, got %d", path, *cfg.MaxDepth)
	}
	return cfg, nil
}
