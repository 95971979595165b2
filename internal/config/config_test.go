package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DOCDB_TYPE", "MONGODB_URI", "MONGODB_DATABASE", "CACHE_TYPE", "CORS_ALLOW_ORIGINS", "MONGODB_CONNECT_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "mongodb", cfg.DocDB.Type)
	assert.Equal(t, "mongodb://localhost:27017", cfg.DocDB.URI)
	assert.Equal(t, "contact", cfg.DocDB.Database)
	assert.Equal(t, "dotenv://MONGO_URI", cfg.DocDB.URISecret)
	assert.Equal(t, 10*time.Second, cfg.DocDB.ConnectTimeout)
	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DOCDB_TYPE", "memory")
	t.Setenv("MONGODB_DATABASE", "people")
	t.Setenv("MONGODB_CONNECT_TIMEOUT_SECONDS", "3")
	t.Setenv("MONGODB_MAX_POOL_SIZE", "20")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.DocDB.Type)
	assert.Equal(t, "people", cfg.DocDB.Database)
	assert.Equal(t, 3*time.Second, cfg.DocDB.ConnectTimeout)
	assert.Equal(t, uint64(20), cfg.DocDB.MaxPoolSize)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, time.Minute, cfg.Cache.IdempotencyTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowOrigins)
}

func TestLoad_RejectsUnknownTypes(t *testing.T) {
	t.Setenv("DOCDB_TYPE", "couchdb")
	_, err := Load()
	assert.ErrorContains(t, err, "DOCDB_TYPE")

	t.Setenv("DOCDB_TYPE", "memory")
	t.Setenv("CACHE_TYPE", "memcached")
	_, err = Load()
	assert.ErrorContains(t, err, "CACHE_TYPE")
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "nope")
	assert.Equal(t, 5, getEnvAsInt("TEST_INT", 5))

	t.Setenv("TEST_DURATION", "-1")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_LIST", " , ")
	assert.Empty(t, getEnvAsList("TEST_LIST", []string{"x"}))
}
