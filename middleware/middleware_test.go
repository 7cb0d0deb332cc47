package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"parcel-delivery/constants"
	"parcel-delivery/httpServices/backend"
	"parcel-delivery/services/session"
	"parcel-delivery/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier map[string]error

func (f fakeVerifier) Verify(token string) (*session.Identity, error) {
	if err, ok := f[token]; ok && err != nil {
		return nil, err
	}
	if _, ok := f[token]; !ok {
		return nil, session.ErrInvalidToken
	}
	return &session.Identity{UID: "uid-" + token, Email: token + "@example.com"}, nil
}

type fakeRoles map[string]string

func (f fakeRoles) Resolve(_ context.Context, id *session.Identity) (string, error) {
	r, ok := f[id.Email]
	if !ok {
		return constants.RoleUser, errors.New("lookup failed")
	}
	return r, nil
}

func decode(t *testing.T, resp *http.Response) types.ApiResponse {
	t.Helper()
	var body types.ApiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func newApp(verifier Verifier, roles RoleSource, required ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", IsAuthenticated(verifier, false), RequireRole(roles, required...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"email": CurrentIdentity(c).Email,
			"role":  CurrentRole(c),
			"token": backend.TokenFrom(c.UserContext()),
		})
	})
	return app
}

func TestIsAuthenticated(t *testing.T) {
	verifier := fakeVerifier{"alice": nil, "stale": session.ErrSessionExpired}
	app := newApp(verifier, fakeRoles{"alice@example.com": constants.RoleUser})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer alice")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "alice", body["token"])
		assert.Equal(t, constants.RoleUser, body["role"])
	})

	t.Run("access cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: constants.CookieAccess, Value: "alice"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, constants.RouteLogin, decode(t, resp).Redirect)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Token alice")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired clears cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer stale")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		cleared := map[string]bool{}
		for _, ck := range resp.Cookies() {
			if ck.Value == "" {
				cleared[ck.Name] = true
			}
		}
		assert.True(t, cleared[constants.CookieAccess])
		assert.True(t, cleared[constants.CookieRefresh])
		assert.Equal(t, "Session expired. Login again.", decode(t, resp).Message)
	})

	t.Run("invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer forged")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Empty(t, resp.Cookies())
	})
}

func TestRequireRole(t *testing.T) {
	verifier := fakeVerifier{"admin": nil, "rider": nil, "broken": nil}
	roles := fakeRoles{
		"admin@example.com": constants.RoleAdmin,
		"rider@example.com": constants.RoleRider,
	}
	app := newApp(verifier, roles, constants.RoleAdmin)

	call := func(token, accept string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, http.StatusOK, call("admin", "").StatusCode)

	resp := call("rider", "application/json")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, constants.RouteForbidden, decode(t, resp).Redirect)

	resp = call("rider", "text/html,application/xhtml+xml")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, constants.RouteForbidden, resp.Header.Get("Location"))

	// lookup failure falls back to the customer view
	assert.Equal(t, http.StatusForbidden, call("broken", "").StatusCode)
}

type memorySink struct {
	mu      sync.Mutex
	entries []types.LogEntry
}

func (m *memorySink) Log(entry types.LogEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func TestRequestIDAndLogger(t *testing.T) {
	sink := &memorySink{}
	app := fiber.New()
	app.Use(RequestID(), RequestLogger(sink))
	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/fails", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "nope")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := app.Test(req)
	require.NoError(t, err)
	id := resp.Header.Get(constants.HeaderRequestID)
	assert.Len(t, id, 36)

	req = httptest.NewRequest(http.MethodGet, "/fails", nil)
	req.Header.Set(constants.HeaderRequestID, "3f1c2f0e-5d0b-4f6e-9d55-0d9f3b2c1a77")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "3f1c2f0e-5d0b-4f6e-9d55-0d9f3b2c1a77", resp.Header.Get(constants.HeaderRequestID))

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.entries, 2, "health checks are not logged")

	login := sink.entries[0]
	assert.Equal(t, id, login.RequestID)
	assert.NotContains(t, login.RequestBody, "secret")
	assert.NotContains(t, login.RequestHeaders, "Bearer tok")
	assert.Equal(t, http.StatusTeapot, sink.entries[1].StatusCode)
}
