// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// API backends accepted in GITHUB_API.
const (
	APIREST    = "rest"
	APIGraphQL = "graphql"
)

// GitHubConfig describes how to reach the upstream API.
type GitHubConfig struct {
	Token      string
	API        string
	BaseURL    string
	GraphQLURL string
	Timeout    time.Duration
}

// CacheConfig describes the in-memory response cache.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// HTTPConfig describes the HTTP server.
type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address (with a colon before the port).
func (h HTTPConfig) Addr() string {
	if h.Port == "" {
		return ":5000"
	}
	if h.Port[0] == ':' {
		return h.Port
	}
	return ":" + h.Port
}

// Config gathers all settings.
type Config struct {
	GitHub GitHubConfig
	Cache  CacheConfig
	HTTP   HTTPConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cacheTTL, err := durationEnv("CACHE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	timeout, err := durationEnv("UPSTREAM_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	maxEntries, err := intEnv("CACHE_MAX_ENTRIES", 0)
	if err != nil {
		return nil, err
	}
	api := getenv("GITHUB_API", APIREST)
	if err := ValidateAPI(api); err != nil {
		return nil, err
	}

	return &Config{
		GitHub: GitHubConfig{
			Token:      os.Getenv("GITHUB_TOKEN"),
			API:        api,
			BaseURL:    os.Getenv("GITHUB_API_URL"),
			GraphQLURL: os.Getenv("GITHUB_GRAPHQL_URL"),
			Timeout:    timeout,
		},
		Cache: CacheConfig{
			TTL:        cacheTTL,
			MaxEntries: maxEntries,
		},
		HTTP: HTTPConfig{
			Port:            getenv("PORT", "5000"),
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}, nil
}

// ValidateAPI rejects unknown backend names.
func ValidateAPI(api string) error {
	switch api {
	case APIREST, APIGraphQL:
		return nil
	default:
		return fmt.Errorf("unsupported GitHub API %q (want %q or %q)", api, APIREST, APIGraphQL)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}
