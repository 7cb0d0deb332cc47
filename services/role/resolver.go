package role

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/logger"
	"parcel-delivery/services/metrics"
	"parcel-delivery/services/session"
)

const DefaultTTL = 5 * time.Minute

var ErrNoIdentity = errors.New("no signed-in identity")

// Lookup is the backend's role endpoint.
type Lookup interface {
	UserRole(ctx context.Context, email string) (string, error)
}

// State is what views gate on while a lookup may still be in flight.
type State struct {
	Role      string `json:"role"`
	IsLoading bool   `json:"is_loading"`
}

// Resolver is advisory: the backend re-derives the role from the bearer token on every mutation.
type Resolver struct {
	lookup Lookup
	cache  Cache
	ttl    time.Duration

	mu      sync.Mutex
	loading map[string]int
}

func NewResolver(lookup Lookup, cache Cache, ttl time.Duration) *Resolver {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{
		lookup:  lookup,
		cache:   cache,
		ttl:     ttl,
		loading: make(map[string]int),
	}
}

// Resolve returns the caller's role. On a lookup failure it still returns the
// least-privileged role alongside the error, and nothing is cached.
func (r *Resolver) Resolve(ctx context.Context, id *session.Identity) (string, error) {
	if id == nil || strings.TrimSpace(id.Email) == "" {
		return "", ErrNoIdentity
	}
	email := strings.ToLower(strings.TrimSpace(id.Email))

	cached, err := r.cache.Get(ctx, email)
	switch {
	case err == nil:
		metrics.RoleCacheResults.WithLabelValues("hit").Inc()
		return cached, nil
	case !errors.Is(err, ErrCacheMiss):
		metrics.RoleCacheResults.WithLabelValues("error").Inc()
		logger.Warning(fmt.Sprintf("Role cache unavailable for %s: %v", email, err))
	default:
		metrics.RoleCacheResults.WithLabelValues("miss").Inc()
	}

	r.begin(email)
	stored, err := r.lookup.UserRole(ctx, email)
	r.end(email)
	if err != nil {
		return constants.RoleUser, fmt.Errorf("resolve role for %s: %w", email, err)
	}

	role := Normalize(stored)
	if err := r.cache.Set(ctx, email, role, r.ttl); err != nil {
		logger.Warning(fmt.Sprintf("Failed to cache role for %s: %v", email, err))
	}
	return role, nil
}

// State reports the cached role, or loading while a lookup is running.
func (r *Resolver) State(ctx context.Context, email string) State {
	email = strings.ToLower(strings.TrimSpace(email))

	r.mu.Lock()
	inFlight := r.loading[email] > 0
	r.mu.Unlock()
	if inFlight {
		return State{IsLoading: true}
	}

	role, err := r.cache.Get(ctx, email)
	if err != nil {
		return State{}
	}
	return State{Role: role}
}

func (r *Resolver) Invalidate(ctx context.Context, email string) error {
	return r.cache.Delete(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Watch drops cached roles on sign-out until events closes or ctx ends.
func (r *Resolver) Watch(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Kind != session.SignedOut || ev.Email == "" {
				continue
			}
			if err := r.Invalidate(ctx, ev.Email); err != nil {
				logger.Warning(fmt.Sprintf("Failed to invalidate role for %s: %v", ev.Email, err))
			}
		}
	}
}

func (r *Resolver) begin(email string) {
	r.mu.Lock()
	r.loading[email]++
	r.mu.Unlock()
}

func (r *Resolver) end(email string) {
	r.mu.Lock()
	r.loading[email]--
	if r.loading[email] <= 0 {
		delete(r.loading, email)
	}
	r.mu.Unlock()
}

// Normalize maps anything the backend may return onto a known role.
func Normalize(stored string) string {
	stored = strings.ToLower(strings.TrimSpace(stored))
	for _, known := range constants.AllRoles {
		if stored == known {
			return known
		}
	}
	return constants.RoleUser
}
