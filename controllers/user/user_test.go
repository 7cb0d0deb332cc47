package user

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parcel-delivery/constants"
	"parcel-delivery/httpServices/imagehost"
	user_model "parcel-delivery/models/user"
	"parcel-delivery/services/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	users     []user_model.User
	searched  string
	updatedID string
	updatedTo string
	err       error
}

func (s *stubDirectory) SearchUsers(_ context.Context, email string) ([]user_model.User, error) {
	s.searched = email
	return s.users, s.err
}

func (s *stubDirectory) UpdateUserRole(_ context.Context, id, role string) error {
	s.updatedID, s.updatedTo = id, role
	return s.err
}

type stubRoleCache struct {
	dropped []string
}

func (s *stubRoleCache) Invalidate(_ context.Context, email string) error {
	s.dropped = append(s.dropped, email)
	return nil
}

type stubUploader struct {
	filename string
	content  string
	err      error
}

func (s *stubUploader) Upload(_ context.Context, filename string, image io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	raw, _ := io.ReadAll(image)
	s.filename, s.content = filename, string(raw)
	return "https://img.example.com/" + filename, nil
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(uc *UserController, signedIn bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if signedIn {
			c.Locals(constants.LocalsIdentity, &session.Identity{UID: "uid-1", Email: "alice@example.com"})
		}
		return c.Next()
	})
	app.Get("/users/search", uc.Search)
	app.Patch("/users/:id/role", uc.UpdateRole)
	app.Post("/uploads/image", uc.UploadPhoto)
	return app
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestSearch(t *testing.T) {
	dir := &stubDirectory{users: []user_model.User{{ID: "u1", Email: "bob@example.com", Role: "user"}}}
	app := newApp(NewUserController(dir, &stubRoleCache{}, &stubUploader{}), true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/search?email=bob", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env := decode(t, resp)
	assert.Equal(t, "bob", dir.searched)
	assert.Contains(t, string(env.Data), "bob@example.com")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/users/search", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateRole_DropsCachedRole(t *testing.T) {
	dir := &stubDirectory{}
	roles := &stubRoleCache{}
	app := newApp(NewUserController(dir, roles, &stubUploader{}), true)

	req := httptest.NewRequest(http.MethodPatch, "/users/u1/role", strings.NewReader(`{"role":"admin","email":"bob@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", dir.updatedID)
	assert.Equal(t, "admin", dir.updatedTo)
	assert.Equal(t, []string{"bob@example.com"}, roles.dropped)

}

func TestUpdateRole_Invalid(t *testing.T) {
	for _, body := range []string{
		`{"role":"owner","email":"bob@example.com"}`,
		`{"role":"admin"}`,
	} {
		dir := &stubDirectory{}
		roles := &stubRoleCache{}
		app := newApp(NewUserController(dir, roles, &stubUploader{}), true)

		req := httptest.NewRequest(http.MethodPatch, "/users/u1/role", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Empty(t, dir.updatedID, body)
		assert.Empty(t, roles.dropped, body)
	}
}

func multipartImage(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/image", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadPhoto(t *testing.T) {
	uploader := &stubUploader{}
	app := newApp(NewUserController(&stubDirectory{}, &stubRoleCache{}, uploader), true)

	resp, err := app.Test(multipartImage(t, "image", "avatar.png", []byte("png-bytes")))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decode(t, resp)
	assert.JSONEq(t, `{"url":"https://img.example.com/avatar.png"}`, string(env.Data))
	assert.Equal(t, "png-bytes", uploader.content)
}

func TestUploadPhoto_Errors(t *testing.T) {
	t.Run("wrong field", func(t *testing.T) {
		app := newApp(NewUserController(&stubDirectory{}, &stubRoleCache{}, &stubUploader{}), true)
		resp, err := app.Test(multipartImage(t, "file", "avatar.png", []byte("x")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not signed in", func(t *testing.T) {
		app := newApp(NewUserController(&stubDirectory{}, &stubRoleCache{}, &stubUploader{}), false)
		resp, err := app.Test(multipartImage(t, "image", "avatar.png", []byte("x")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("host not configured", func(t *testing.T) {
		app := newApp(NewUserController(&stubDirectory{}, &stubRoleCache{}, &stubUploader{err: imagehost.ErrNotConfigured}), true)
		resp, err := app.Test(multipartImage(t, "image", "avatar.png", []byte("x")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("host failure is retryable", func(t *testing.T) {
		app := newApp(NewUserController(&stubDirectory{}, &stubRoleCache{}, &stubUploader{err: imagehost.ErrUpload}), true)
		resp, err := app.Test(multipartImage(t, "image", "avatar.png", []byte("x")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}
