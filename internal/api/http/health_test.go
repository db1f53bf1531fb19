package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func healthCall(t *testing.T, db Pinger, path string) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler("project-tracker", "1.2.3", db).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHealth(t *testing.T) {
	code, resp := healthCall(t, pinger{err: errors.New("down")}, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Empty(t, resp.DB)
}

func TestReadiness(t *testing.T) {
	code, resp := healthCall(t, pinger{}, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up", resp.DB)

	code, resp = healthCall(t, pinger{err: errors.New("connection refused")}, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", resp.DB)
	assert.Equal(t, "unhealthy", resp.Status)

	code, resp = healthCall(t, nil, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "disabled", resp.DB)
}
