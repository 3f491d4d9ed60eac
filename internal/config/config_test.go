package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"GITHUB_TOKEN", "GITHUB_API", "GITHUB_API_URL", "GITHUB_GRAPHQL_URL",
		"UPSTREAM_TIMEOUT", "CACHE_TTL", "CACHE_MAX_ENTRIES", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.GitHub.Token)
	assert.Equal(t, APIREST, cfg.GitHub.API)
	assert.Equal(t, 15*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 0, cfg.Cache.MaxEntries)
	assert.Equal(t, ":5000", cfg.HTTP.Addr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "secret")
	t.Setenv("GITHUB_API", "graphql")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CACHE_MAX_ENTRIES", "100")
	t.Setenv("UPSTREAM_TIMEOUT", "0s")
	t.Setenv("PORT", ":8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.GitHub.Token)
	assert.Equal(t, APIGraphQL, cfg.GitHub.API)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.Cache.MaxEntries)
	assert.Equal(t, time.Duration(0), cfg.GitHub.Timeout)
	assert.Equal(t, ":8080", cfg.HTTP.Addr())
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad ttl", key: "CACHE_TTL", value: "soon"},
		{name: "bad timeout", key: "UPSTREAM_TIMEOUT", value: "10"},
		{name: "negative max entries", key: "CACHE_MAX_ENTRIES", value: "-1"},
		{name: "unknown api", key: "GITHUB_API", value: "soap"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
