package role

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a real server: REDIS_TEST_ADDR=localhost:6379 go test ./services/role
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	cli, err := NewRedisClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer cli.Close()

	cache := NewRedisCache(cli)
	cache.prefix = "test-role:"

	_, err = cache.Get(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "A@example.com", "rider", time.Minute))
	role, err := cache.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "rider", role)

	require.NoError(t, cache.Delete(ctx, "a@example.com"))
	_, err = cache.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
