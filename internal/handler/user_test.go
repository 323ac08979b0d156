package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/vidtube-api/internal/auth"
)

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func TestUserHandler_Register(t *testing.T) {
	handler := NewUserHandler(newMockUserRepo(), newTestTokens(), &mockStore{})

	c, w := newTestContext(t, "POST", "/api/v1/users/register", map[string]string{
		"username": "Alice",
		"email":    "alice@example.com",
		"fullName": "Alice Example",
		"password": "hunter22",
	})
	handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	// Username is stored lowercased, the hash never leaves the server.
	assert.Contains(t, string(env.Data), `"username":"alice"`)
	assert.NotContains(t, string(env.Data), "hunter22")
	assert.NotContains(t, string(env.Data), "passwordHash")
}

func TestUserHandler_Register_WithProfileImages(t *testing.T) {
	store := &mockStore{}
	handler := NewUserHandler(newMockUserRepo(), newTestTokens(), store)

	c, w := newMultipartContext(t, "POST", "/api/v1/users/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"fullName": "Alice Example",
		"password": "hunter22",
	}, map[string]string{
		"avatar":     "avatar.png",
		"coverImage": "cover.jpg",
	})
	handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, string(env.Data), `"avatar":"http://media.local/bucket/avatar.png"`)
	assert.Contains(t, string(env.Data), `"coverImage":"http://media.local/bucket/cover.jpg"`)
	assert.ElementsMatch(t, []string{"avatar.png", "cover.jpg"}, store.uploads)
}

func TestUserHandler_Register_MultipartWithoutImages(t *testing.T) {
	store := &mockStore{}
	handler := NewUserHandler(newMockUserRepo(), newTestTokens(), store)

	c, w := newMultipartContext(t, "POST", "/api/v1/users/register", map[string]string{
		"username": "bob",
		"email":    "bob@example.com",
		"fullName": "Bob Example",
		"password": "hunter22",
	}, nil)
	handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, store.uploads)
}

func TestUserHandler_Register_DuplicateUsername(t *testing.T) {
	users := newMockUserRepo()
	handler := NewUserHandler(users, newTestTokens(), &mockStore{})

	register := func() int {
		c, w := newTestContext(t, "POST", "/api/v1/users/register", map[string]string{
			"username": "alice",
			"email":    "alice@example.com",
			"fullName": "Alice Example",
			"password": "hunter22",
		})
		handler.Register(c)
		return w.Code
	}

	require.Equal(t, http.StatusCreated, register())
	require.Equal(t, http.StatusConflict, register())
}

func TestUserHandler_Register_MissingFields(t *testing.T) {
	handler := NewUserHandler(newMockUserRepo(), newTestTokens(), &mockStore{})

	c, w := newTestContext(t, "POST", "/api/v1/users/register", map[string]string{
		"username": "alice",
	})
	handler.Register(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	// The envelope message names no decoder internals.
	assert.Equal(t, "Invalid request payload", decodeEnvelope(t, w).Message)
}

func TestUserHandler_Login(t *testing.T) {
	users := newMockUserRepo()
	handler := NewUserHandler(users, newTestTokens(), &mockStore{})

	c, _ := newTestContext(t, "POST", "/api/v1/users/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"fullName": "Alice Example",
		"password": "hunter22",
	})
	handler.Register(c)

	c, w := newTestContext(t, "POST", "/api/v1/users/login", map[string]string{
		"login":    "alice",
		"password": "hunter22",
	})
	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, string(env.Data), "accessToken")
}

func TestUserHandler_Login_WrongPassword(t *testing.T) {
	users := newMockUserRepo()
	handler := NewUserHandler(users, newTestTokens(), &mockStore{})

	c, _ := newTestContext(t, "POST", "/api/v1/users/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"fullName": "Alice Example",
		"password": "hunter22",
	})
	handler.Register(c)

	for _, login := range []string{"alice", "nobody"} {
		c, w := newTestContext(t, "POST", "/api/v1/users/login", map[string]string{
			"login":    login,
			"password": "wrong",
		})
		handler.Login(c)

		// Unknown account and bad password are indistinguishable.
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeEnvelope(t, w).Message)
	}
}
