package webserver

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

func TestHealthReportsDependencies(t *testing.T) {
	db, _ := mockDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	r := gin.New()
	r.GET("/health", NewHealth(db, rdb).Check)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "up", resp["status"])
	assert.Equal(t, "ok", resp["mysql"])
	assert.Equal(t, "ok", resp["redis"])
	assert.NotEmpty(t, resp["time"])
}

// The endpoint stays 200 with dead dependencies so load balancers keep the
// process reachable while operators read the body.
func TestHealthStaysUpWithDeadRedis(t *testing.T) {
	db, _ := mockDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	r := gin.New()
	r.GET("/health", NewHealth(db, rdb).Check)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "up", resp["status"])
	assert.NotEqual(t, "ok", resp["redis"])
}
