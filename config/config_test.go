package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "localhost:50051", cfg.BackendHost)
	assert.Equal(t, "proto/library.proto", cfg.ProtoPath)
	assert.Empty(t, cfg.EtcdEndpoints)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LIBRARY_GATEWAY_PORT", "8080")
	t.Setenv("LIBRARY_BACKEND_HOST", "backend:50051")
	t.Setenv("LIBRARY_PROTO_PATH", "/etc/library/library.proto")
	t.Setenv("LIBRARY_ETCD_ENDPOINTS", "etcd1:2379, etcd2:2379")
	t.Setenv("LIBRARY_RATE_LIMIT", "50")
	t.Setenv("LIBRARY_RATE_BURST", "100")
	t.Setenv("LIBRARY_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "backend:50051", cfg.BackendHost)
	assert.Equal(t, "/etc/library/library.proto", cfg.ProtoPath)
	assert.Equal(t, []string{"etcd1:2379", "etcd2:2379"}, cfg.EtcdEndpoints)
	assert.Equal(t, 50.0, cfg.RateLimit)
	assert.Equal(t, 100, cfg.RateBurst)
	assert.Equal(t, "debug", cfg.LogLevel)
}
