package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bosswatch/bosswatch-backend/internal/users/domain"
)

type stubVerifier struct {
	token *fbauth.Token
	err   error
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, _ string) (*fbauth.Token, error) {
	return s.token, s.err
}

type stubStore struct {
	ensured  domain.Profile
	returned *domain.Profile
	err      error
}

func (s *stubStore) Ensure(_ context.Context, p domain.Profile) (*domain.Profile, error) {
	s.ensured = p
	if s.returned != nil {
		return s.returned, s.err
	}
	return &p, s.err
}

func newRouter(verifier TokenVerifier, store ProfileStore, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{WithSession(verifier, store, "chief@example.com")}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := CurrentProfile(c)
		c.JSON(http.StatusOK, gin.H{"uid": UserUID(c), "nickname": p.Nickname})
	})
	r.GET("/probe", handlers...)
	return r
}

func do(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestWithSessionMissingToken(t *testing.T) {
	r := newRouter(&stubVerifier{}, &stubStore{})
	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
}

func TestWithSessionInvalidToken(t *testing.T) {
	r := newRouter(&stubVerifier{err: errors.New("expired")}, &stubStore{})
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer bad").Code)
}

func TestWithSessionEnsuresProfileWithSeededFlags(t *testing.T) {
	store := &stubStore{}
	verifier := &stubVerifier{token: &fbauth.Token{
		UID:    "uid-1",
		Claims: map[string]any{"email": "Chief@Example.com", "name": "Chief"},
	}}

	rr := do(newRouter(verifier, store), "Bearer good")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "uid-1", store.ensured.UID)
	assert.True(t, store.ensured.IsAdmin, "admin email should seed isAdmin")
	assert.True(t, store.ensured.Authorized)
}

func TestWithSessionRegularUserNotSeeded(t *testing.T) {
	store := &stubStore{}
	verifier := &stubVerifier{token: &fbauth.Token{
		UID:    "uid-2",
		Claims: map[string]any{"email": "bob@example.com"},
	}}

	rr := do(newRouter(verifier, store), "Bearer good")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, store.ensured.IsAdmin)
	assert.False(t, store.ensured.Authorized)
	assert.Equal(t, "Jogador", store.ensured.Nickname)
}

func TestRequireAuthorized(t *testing.T) {
	verifier := &stubVerifier{token: &fbauth.Token{UID: "uid-3", Claims: map[string]any{}}}

	pending := &stubStore{returned: &domain.Profile{UID: "uid-3"}}
	rr := do(newRouter(verifier, pending, RequireAuthorized()), "Bearer good")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	cleared := &stubStore{returned: &domain.Profile{UID: "uid-3", Authorized: true}}
	rr = do(newRouter(verifier, cleared, RequireAuthorized()), "Bearer good")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireAdmin(t *testing.T) {
	verifier := &stubVerifier{token: &fbauth.Token{UID: "uid-4", Claims: map[string]any{}}}

	regular := &stubStore{returned: &domain.Profile{UID: "uid-4", Authorized: true}}
	rr := do(newRouter(verifier, regular, RequireAdmin()), "Bearer good")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	admin := &stubStore{returned: &domain.Profile{UID: "uid-4", Authorized: true, IsAdmin: true}}
	rr = do(newRouter(verifier, admin, RequireAdmin()), "Bearer good")
	assert.Equal(t, http.StatusOK, rr.Code)
}
