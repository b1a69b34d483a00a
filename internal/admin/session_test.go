package admin

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "tok-1", time.Hour))

	ok, err := store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "tok-unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Destroy(ctx, "tok-1"))
	ok, err = store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "tok-ttl", time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := store.Exists(ctx, "tok-ttl")
	require.NoError(t, err)
	assert.False(t, ok, "expired session should be gone")
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "tok-1", time.Hour))

	ok, err := store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Destroy(ctx, "tok-1"))
	ok, err = store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "tok-ttl", time.Minute))

	now = now.Add(2 * time.Minute)
	ok, err := store.Exists(ctx, "tok-ttl")
	require.NoError(t, err)
	assert.False(t, ok, "expired session should be gone")
}
