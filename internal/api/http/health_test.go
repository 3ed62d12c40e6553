package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthRouter(rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler("bosswatch-api", "1.2.3", rdb).RegisterRoutes(r)
	return r
}

func getHealth(t *testing.T, r *gin.Engine, path string) HealthResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheckWithoutRedis(t *testing.T) {
	resp := getHealth(t, healthRouter(nil), "/health")
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "bosswatch-api", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "disabled", resp.Redis)
}

func TestHealthCheckRedisUpAndDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	r := healthRouter(rdb)
	assert.Equal(t, "up", getHealth(t, r, "/healthz").Redis)

	mr.Close()
	assert.Equal(t, "down", getHealth(t, r, "/health").Redis)
}
