// Package stats keeps the administrator counters warm on a cron schedule.
package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
)

const DefaultSchedule = "0 */5 * * * *"

const runTimeout = 30 * time.Second

// Source is the part of storage.Storage the refresher needs.
type Source interface {
	GetUserStats(ctx context.Context) (*storage.UserStats, error)
}

type Refresher struct {
	src Source
	log *zap.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

func NewRefresher(src Source, log *zap.Logger) *Refresher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Refresher{src: src, log: log.Named("stats_refresher")}
}

// Start schedules RunOnce using a six-field cron spec (seconds first).
// An empty schedule uses DefaultSchedule.
func (r *Refresher) Start(spec string) error {
	if spec == "" {
		spec = DefaultSchedule
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return fmt.Errorf("stats refresher already started")
	}

	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		_ = r.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("invalid stats refresh schedule %q: %w", spec, err)
	}

	c.Start()
	r.cron = c
	r.log.Info("stats refresher started", zap.String("schedule", spec))
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	r.log.Info("stats refresher stopped")
}

func (r *Refresher) RunOnce(ctx context.Context) error {
	start := time.Now()
	st, err := r.src.GetUserStats(ctx)
	if err != nil {
		r.log.Error("stats refresh failed", zap.Error(err))
		return err
	}

	r.log.Info("stats refreshed",
		zap.Int64("total_users", st.TotalUsers),
		zap.Int64("active_users", st.ActiveUsers),
		zap.Int64("total_projects", st.TotalProjects),
		zap.Int64("monthly_projects", st.MonthlyProjects),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
