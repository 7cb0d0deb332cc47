package session

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcel-delivery/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = "parcel-app"

var testNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func certificatePEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken"},
		NotBefore:    testNow.Add(-time.Hour),
		NotAfter:     testNow.Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func publicKeyPEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func newTestManager(t *testing.T, keys map[string]string) *Manager {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(keys)
	}))
	t.Cleanup(srv.Close)

	m := NewManager(config.Identity{KeysURL: srv.URL, ProjectID: testProject})
	m.now = func() time.Time { return testNow }
	require.NoError(t, m.Init(context.Background()))
	t.Cleanup(m.Close)
	return m
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(*claims)) string {
	t.Helper()
	c := claims{
		Email:         "customer@example.com",
		Name:          "Rahim",
		EmailVerified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-1",
			Issuer:    issuerPrefix + testProject,
			Audience:  jwt.ClaimStrings{testProject},
			IssuedAt:  jwt.NewNumericDate(testNow.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		},
	}
	c.Firebase.SignInProvider = "password"
	if mutate != nil {
		mutate(&c)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, c)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestManager_Verify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	m := newTestManager(t, map[string]string{
		"cert": certificatePEM(t, key),
		"pub":  publicKeyPEM(t, key),
	})

	t.Run("valid token from certificate key", func(t *testing.T) {
		id, err := m.Verify(signToken(t, key, "cert", nil))
		require.NoError(t, err)
		assert.Equal(t, "uid-1", id.UID)
		assert.Equal(t, "customer@example.com", id.Email)
		assert.Equal(t, "password", id.Provider)
		assert.Equal(t, testNow.Add(time.Hour), id.ExpiresAt)
	})

	t.Run("valid token from public key", func(t *testing.T) {
		_, err := m.Verify(signToken(t, key, "pub", nil))
		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name: "expired",
			token: signToken(t, key, "cert", func(c *claims) {
				c.ExpiresAt = jwt.NewNumericDate(testNow.Add(-time.Minute))
			}),
			wantErr: ErrSessionExpired,
		},
		{
			name: "wrong audience",
			token: signToken(t, key, "cert", func(c *claims) {
				c.Audience = jwt.ClaimStrings{"another-project"}
			}),
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong issuer",
			token: signToken(t, key, "cert", func(c *claims) {
				c.Issuer = "https://example.com"
			}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "unknown key id",
			token:   signToken(t, key, "rotated-away", nil),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "signed by another key",
			token:   signToken(t, other, "cert", nil),
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing subject",
			token: signToken(t, key, "cert", func(c *claims) {
				c.Subject = ""
			}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty",
			token:   "",
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := m.Verify(tt.token)
			assert.Nil(t, id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManager_RejectsHMACTokens(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	m := newTestManager(t, map[string]string{"cert": certificatePEM(t, key)})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "uid-1",
		Issuer:    issuerPrefix + testProject,
		Audience:  jwt.ClaimStrings{testProject},
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
	})
	token.Header["kid"] = "cert"
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_InitFailures(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		m := NewManager(config.Identity{KeysURL: srv.URL, ProjectID: testProject})
		assert.Error(t, m.Init(context.Background()))
		m.Close()
	})

	t.Run("no keys", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		m := NewManager(config.Identity{KeysURL: srv.URL, ProjectID: testProject})
		assert.ErrorIs(t, m.Init(context.Background()), ErrNoKeys)
	})

	t.Run("garbage key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"k":"not pem"}`))
		}))
		defer srv.Close()

		m := NewManager(config.Identity{KeysURL: srv.URL, ProjectID: testProject})
		assert.Error(t, m.Init(context.Background()))
	})
}

func TestManager_PublishSubscribe(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	m := newTestManager(t, map[string]string{"cert": certificatePEM(t, key)})

	first, _ := m.Subscribe()
	second, unsubscribe := m.Subscribe()

	m.Publish(Event{Kind: SignedOut, Email: "customer@example.com"})

	ev := <-first
	assert.Equal(t, SignedOut, ev.Kind)
	assert.Equal(t, "customer@example.com", ev.Email)
	assert.Equal(t, testNow, ev.At)
	assert.Equal(t, SignedOut, (<-second).Kind)

	unsubscribe()
	_, open := <-second
	assert.False(t, open, "unsubscribed channel is closed")
	unsubscribe()

	m.Close()
	_, open = <-first
	assert.False(t, open, "close ends every subscription")

	late, _ := m.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestManager_PublishDoesNotBlock(t *testing.T) {
	m := NewManager(config.Identity{ProjectID: testProject})
	_, _ = m.Subscribe()

	for i := 0; i < subscriberBuffer*2; i++ {
		m.Publish(Event{Kind: SignedIn})
	}
}
