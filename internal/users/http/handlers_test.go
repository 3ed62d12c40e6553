package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bosswatch/bosswatch-backend/internal/auth"
	"github.com/bosswatch/bosswatch-backend/internal/users/domain"
)

type flagCall struct {
	UID   string
	Flag  string
	Value bool
}

type stubProfiles struct {
	profiles []domain.Profile
	calls    []flagCall
	err      error
}

func (s *stubProfiles) List(_ context.Context) ([]domain.Profile, error) {
	return s.profiles, s.err
}

func (s *stubProfiles) SetFlag(_ context.Context, uid, flag string, value bool) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, flagCall{UID: uid, Flag: flag, Value: value})
	return nil
}

func newRouter(profiles Profiles, p *domain.Profile) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/", func(c *gin.Context) {
		if p != nil {
			auth.SetSession(c, p)
		}
		c.Next()
	})
	Register(rg, NewHandler(profiles))
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

var adminProfile = &domain.Profile{UID: "a1", Nickname: "Chief", Authorized: true, IsAdmin: true}

func TestListIsAdminOnly(t *testing.T) {
	store := &stubProfiles{profiles: []domain.Profile{{UID: "u1", Nickname: "Ana"}}}

	regular := &domain.Profile{UID: "u1", Authorized: true}
	rr := doJSON(newRouter(store, regular), http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSON(newRouter(store, adminProfile), http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"Ana"`)
}

func TestSetFlagsAuthorize(t *testing.T) {
	store := &stubProfiles{}
	rr := doJSON(newRouter(store, adminProfile), http.MethodPatch,
		"/users/u1", gin.H{"authorized": true})

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Len(t, store.calls, 1)
	assert.Equal(t, flagCall{UID: "u1", Flag: domain.FlagAuthorized, Value: true}, store.calls[0])
}

func TestSetFlagsBoth(t *testing.T) {
	store := &stubProfiles{}
	rr := doJSON(newRouter(store, adminProfile), http.MethodPatch,
		"/users/u1", gin.H{"authorized": true, "is_admin": true})

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Len(t, store.calls, 2)
	assert.Equal(t, domain.FlagAuthorized, store.calls[0].Flag)
	assert.Equal(t, domain.FlagAdmin, store.calls[1].Flag)
}

func TestSetFlagsRevoke(t *testing.T) {
	store := &stubProfiles{}
	rr := doJSON(newRouter(store, adminProfile), http.MethodPatch,
		"/users/u1", gin.H{"authorized": false})

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Len(t, store.calls, 1)
	assert.False(t, store.calls[0].Value)
}

func TestSetFlagsEmptyBody(t *testing.T) {
	store := &stubProfiles{}
	rr := doJSON(newRouter(store, adminProfile), http.MethodPatch, "/users/u1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, store.calls)
}

func TestSetFlagsUnknownUser(t *testing.T) {
	store := &stubProfiles{err: domain.ErrProfileNotFound}
	rr := doJSON(newRouter(store, adminProfile), http.MethodPatch,
		"/users/ghost", gin.H{"authorized": true})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
