package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rediscache "github.com/docstore/docstore-service/internal/infrastructure/cache/redis"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *rediscache.Cache) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	c, err := rediscache.NewCache(rediscache.Config{
		Host:       mr.Host(),
		Port:       mr.Port(),
		DefaultTTL: time.Hour,
		KeyPrefix:  "docstore:",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
		mr.Close()
	})

	return mr, c
}

func TestNewCache_ConnectionFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err = rediscache.NewCache(rediscache.Config{Host: host, Port: port})
	assert.Error(t, err)
}

func TestCache_SetAndGet(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	assert.True(t, mr.Exists("docstore:key"))
	assert.Equal(t, time.Minute, mr.TTL("docstore:key"))
}

func TestCache_DefaultTTL(t *testing.T) {
	mr, c := setupMiniredis(t)

	require.NoError(t, c.Set(context.Background(), "key", []byte("value"), 0))
	assert.Equal(t, time.Hour, mr.TTL("docstore:key"))
}

func TestCache_GetNotFound(t *testing.T) {
	_, c := setupMiniredis(t)

	got, err := c.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Expiry(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Second))
	mr.FastForward(2 * time.Second)

	got, err := c.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_SetNX(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "key", []byte("first"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "key", []byte("second"), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestCache_Delete(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))

	deleted, err := c.Delete(ctx, "key")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = c.Delete(ctx, "key")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCache_Ping(t *testing.T) {
	_, c := setupMiniredis(t)
	assert.NoError(t, c.Ping(context.Background()))
}
