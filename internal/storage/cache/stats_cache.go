// Package cache holds Redis-backed decorators for storage.Storage.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

const statsKeyPrefix = "tracker:stats:users:"

// StatsCache serves GetUserStats from Redis and drops the cached value on
// every write that can change a counter. Redis failures never fail a call;
// the wrapped store is used instead.
//
// Entries are keyed by calendar month (tracker:stats:users:2026-10), so a
// monthly count cached before a month rollover is never served after it.
type StatsCache struct {
	storage.Storage
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
	now    func() time.Time
	loc    *time.Location
}

type Option func(*StatsCache)

func WithClock(now func() time.Time) Option {
	return func(c *StatsCache) { c.now = now }
}

// WithLocation must match the wrapped store's location so that both agree
// on where a month starts.
func WithLocation(loc *time.Location) Option {
	return func(c *StatsCache) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func NewStatsCache(next storage.Storage, client *redis.Client, ttl time.Duration, log *zap.Logger, opts ...Option) *StatsCache {
	if log == nil {
		log = zap.NewNop()
	}
	c := &StatsCache{
		Storage: next,
		client:  client,
		ttl:     ttl,
		log:     log.Named("stats_cache"),
		now:     time.Now,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *StatsCache) key() string {
	return statsKeyPrefix + storage.MonthStart(c.now().In(c.loc)).Format("2006-01")
}

func (c *StatsCache) GetUserStats(ctx context.Context) (*storage.UserStats, error) {
	key := c.key()

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var st storage.UserStats
		uerr := json.Unmarshal(data, &st)
		if uerr == nil {
			return &st, nil
		}
		c.log.Warn("discarding malformed cached stats", zap.Error(uerr))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("stats cache read failed", zap.Error(err))
	}

	st, err := c.Storage.GetUserStats(ctx)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(st)
	if err != nil {
		return st, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("stats cache write failed", zap.Error(err))
	}
	return st, nil
}

// UpsertUser runs on every authenticated request, so it only invalidates when
// the call can move a counter: a brand new row, or an explicit is_active.
func (c *StatsCache) UpsertUser(ctx context.Context, in users.UpsertUser) (*users.User, error) {
	u, err := c.Storage.UpsertUser(ctx, in)
	if err == nil && (in.IsActive != nil || u.CreatedAt.Equal(u.UpdatedAt)) {
		c.invalidate(ctx)
	}
	return u, err
}

func (c *StatsCache) CreateProject(ctx context.Context, in projects.CreateInput, userID string) (*projects.Project, error) {
	p, err := c.Storage.CreateProject(ctx, in, userID)
	if err == nil {
		c.invalidate(ctx)
	}
	return p, err
}

func (c *StatsCache) DeleteProject(ctx context.Context, id, userID string) (bool, error) {
	ok, err := c.Storage.DeleteProject(ctx, id, userID)
	if err == nil && ok {
		c.invalidate(ctx)
	}
	return ok, err
}

func (c *StatsCache) invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		c.log.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
