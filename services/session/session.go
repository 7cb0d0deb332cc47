package session

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"parcel-delivery/config"
	"parcel-delivery/logger"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid session token")
	ErrNoKeys         = errors.New("signing keys not loaded")
)

const (
	DefaultRefreshInterval = time.Hour
	issuerPrefix           = "https://securetoken.google.com/"
)

// Identity is the verified holder of an access token.
type Identity struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	Provider      string    `json:"provider,omitempty"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type claims struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
	Firebase      struct {
		SignInProvider string `json:"sign_in_provider"`
	} `json:"firebase"`
	jwt.RegisteredClaims
}

// Manager verifies access tokens against the provider's rotating keys and
// fans session changes out to subscribers.
type Manager struct {
	keysURL   string
	projectID string
	client    *http.Client
	refresh   time.Duration
	now       func() time.Time

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey

	subsMu sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool

	started   bool
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewManager(cfg config.Identity) *Manager {
	return &Manager{
		keysURL:   cfg.KeysURL,
		projectID: cfg.ProjectID,
		client:    &http.Client{Timeout: 10 * time.Second},
		refresh:   DefaultRefreshInterval,
		now:       time.Now,
		keys:      make(map[string]*rsa.PublicKey),
		subs:      make(map[int]chan Event),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Init loads the signing keys once and starts the refresh loop.
func (m *Manager) Init(ctx context.Context) error {
	if err := m.loadKeys(ctx); err != nil {
		return err
	}
	m.started = true
	go m.refreshLoop()
	return nil
}

// Close stops key refresh and closes every subscriber channel.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stop)
		if m.started {
			<-m.done
		}

		m.subsMu.Lock()
		defer m.subsMu.Unlock()
		m.closed = true
		for id, ch := range m.subs {
			close(ch)
			delete(m.subs, id)
		}
	})
}

func (m *Manager) refreshLoop() {
	defer close(m.done)
	ticker := time.NewTicker(m.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := m.loadKeys(ctx); err != nil {
				logger.Error("Failed to refresh signing keys", err)
			}
			cancel()
		}
	}
}

func (m *Manager) loadKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.keysURL, nil)
	if err != nil {
		return fmt.Errorf("build key request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch signing keys: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch signing keys: unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read signing keys: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal signing keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(raw))
	for kid, encoded := range raw {
		// accepts certificates as well as bare public keys
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(encoded))
		if err != nil {
			return fmt.Errorf("signing key %s: %w", kid, err)
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return ErrNoKeys
	}

	m.mu.Lock()
	m.keys = keys
	m.mu.Unlock()

	logger.Debug(fmt.Sprintf("Loaded %d signing keys", len(keys)))
	return nil
}

func (m *Manager) keyFor(token *jwt.Token) (interface{}, error) {
	kid, _ := token.Header["kid"].(string)

	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.keys) == 0 {
		return nil, ErrNoKeys
	}
	key, ok := m.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

// Verify checks signature, issuer, audience and expiry of an access token.
func (m *Manager) Verify(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, m.keyFor,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuerPrefix+m.projectID),
		jwt.WithAudience(m.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	id := &Identity{
		UID:           c.Subject,
		Email:         c.Email,
		Name:          c.Name,
		PhotoURL:      c.Picture,
		EmailVerified: c.EmailVerified,
		Provider:      c.Firebase.SignInProvider,
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id, nil
}
