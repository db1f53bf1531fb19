package bootstrap

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage/cache"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage/memory"
)

type statsCounter struct {
	storage.Storage
	mu    sync.Mutex
	calls int
}

func (s *statsCounter) GetUserStats(ctx context.Context) (*storage.UserStats, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.Storage.GetUserStats(ctx)
}

func TestRouter_AdminStatsServedFromCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var mu sync.Mutex
	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		at = at.Add(time.Second)
		return at
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	backing := &statsCounter{Storage: memory.New(memory.WithClock(now))}
	r := BuildRouter(RouterDeps{
		ServiceName:    "project-tracker",
		Version:        "test",
		Store:          cache.NewStatsCache(backing, rdb, time.Minute, nil, cache.WithClock(now)),
		Identity:       middleware.HeaderIdentity(),
		Registry:       prometheus.NewRegistry(),
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	})

	for i := 0; i < 5; i++ {
		w := request(r, http.MethodGet, "/api/v1/admin/stats", "root", "", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_users":1`)
	}
	assert.Equal(t, 1, backing.calls, "repeat logins must not drop the cached stats")

	w := request(r, http.MethodPost, "/api/v1/projects", "root", `{"name":"P1"}`, false)
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(r, http.MethodGet, "/api/v1/admin/stats", "root", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_projects":1`)
	assert.Equal(t, 2, backing.calls)
}
