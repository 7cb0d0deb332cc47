package role

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("role not cached")

// Cache keeps resolved roles per email.
type Cache interface {
	Get(ctx context.Context, email string) (string, error)
	Set(ctx context.Context, email, role string, ttl time.Duration) error
	Delete(ctx context.Context, email string) error
}

type memoryEntry struct {
	role      string
	expiresAt time.Time
}

// MemoryCache is the default cache for a single instance.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, email string) (string, error) {
	c.mu.RLock()
	entry, ok := c.entries[email]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return "", ErrCacheMiss
	}
	return entry.role, nil
}

func (c *MemoryCache) Set(_ context.Context, email, role string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[email] = memoryEntry{role: role, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, email)
	return nil
}

// RedisCache shares roles across instances.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: "role:"}
}

func (c *RedisCache) key(email string) string { return c.prefix + strings.ToLower(email) }

func (c *RedisCache) Get(ctx context.Context, email string) (string, error) {
	role, err := c.rdb.Get(ctx, c.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("redis get role: %w", err)
	}
	return role, nil
}

func (c *RedisCache) Set(ctx context.Context, email, role string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, c.key(email), role, ttl).Err(); err != nil {
		return fmt.Errorf("redis set role: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, email string) error {
	if err := c.rdb.Del(ctx, c.key(email)).Err(); err != nil {
		return fmt.Errorf("redis delete role: %w", err)
	}
	return nil
}

// NewRedisClient connects and pings, the same way the rest of the app's clients fail fast.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pingCtx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return cli, nil
}
