package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/v1", srv.URL+"/token", "api-key")
}

func TestClient_SignIn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "api-key", r.URL.Query().Get("key"))

		var req passwordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)
		assert.True(t, req.ReturnSecureToken)

		_, _ = w.Write([]byte(`{"localId":"uid-1","email":"alice@example.com","idToken":"id","refreshToken":"rt","expiresIn":"3600"}`))
	})

	s, err := c.SignIn(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", s.UID)
	assert.Equal(t, 3600, s.ExpiresInSeconds())
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"EMAIL_EXISTS", ErrEmailExists},
		{"INVALID_LOGIN_CREDENTIALS", ErrInvalidCredentials},
		{"EMAIL_NOT_FOUND", ErrInvalidCredentials},
		{"USER_DISABLED", ErrUserDisabled},
		{"WEAK_PASSWORD : Password should be at least 6 characters", ErrProvider},
		{"TOKEN_EXPIRED", ErrSessionExpired},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]interface{}{"code": 400, "message": tc.code},
				})
			})

			_, err := c.CreateAccount(context.Background(), "a@b.co", "secret1")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClient_SignInWithFederatedProvider(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithIdp", r.URL.Path)

		var req idpRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		form, err := url.ParseQuery(req.PostBody)
		require.NoError(t, err)
		assert.Equal(t, "google-token", form.Get("id_token"))
		assert.Equal(t, "google.com", form.Get("providerId"))
		assert.Equal(t, "https://app.example.com", req.RequestURI)

		_, _ = w.Write([]byte(`{"localId":"uid-2","email":"bob@example.com","idToken":"id","refreshToken":"rt","expiresIn":"3600"}`))
	})

	s, err := c.SignInWithFederatedProvider(context.Background(), "google.com", "google-token", "https://app.example.com")
	require.NoError(t, err)
	assert.Equal(t, "google.com", s.ProviderID)
}

func TestClient_Refresh(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "rt-old", r.PostForm.Get("refresh_token"))
		_, _ = w.Write([]byte(`{"id_token":"id-new","refresh_token":"rt-new","expires_in":"3600","user_id":"uid-1"}`))
	})

	s, err := c.Refresh(context.Background(), "rt-old")
	require.NoError(t, err)
	assert.Equal(t, "id-new", s.IDToken)
	assert.Equal(t, "rt-new", s.RefreshToken)
	assert.Equal(t, "uid-1", s.UID)
}

func TestClient_LookupProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"users":[{"localId":"uid-1","email":"a@b.co","emailVerified":true,"providerUserInfo":[{"providerId":"password"},{"providerId":"google.com"}]}]}`))
	})

	p, err := c.LookupProfile(context.Background(), "id")
	require.NoError(t, err)
	assert.True(t, p.EmailVerified)
	assert.Equal(t, []string{"password", "google.com"}, p.ProviderIDs())

	t.Run("no users", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})
		_, err := c.LookupProfile(context.Background(), "id")
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestClient_SendPasswordReset(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req oobRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "PASSWORD_RESET", req.RequestType)
		_, _ = w.Write([]byte(`{"email":"a@b.co"}`))
	})

	require.NoError(t, c.SendPasswordReset(context.Background(), "a@b.co"))
}
