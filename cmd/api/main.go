package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/config"
	httpapi "github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	authmw "github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/logger"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/stats"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage/cache"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage/memory"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Environment: cfg.App.Environment,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	loc, err := time.LoadLocation(cfg.Stats.Location)
	if err != nil {
		return fmt.Errorf("load stats location: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var (
		store storage.Storage
		db    httpapi.Pinger
	)
	switch cfg.Database.Driver {
	case "memory":
		log.Warn("using in-memory storage; data is lost on restart")
		store = memory.New(memory.WithLocation(loc))
	default:
		conn, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer closeDB(conn, log)
		log.Info("database connection established",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name))

		if cfg.Database.AutoSchema {
			if err := postgres.EnsureSchema(ctx, conn); err != nil {
				return err
			}
			log.Info("database schema ensured")
		}
		store = postgres.NewStore(conn, postgres.WithLocation(loc))
		db = conn
	}
	store = storage.NewInstrumented(store, reg)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable at startup; stats cache will fall back to the database", zap.Error(err))
		}
		store = cache.NewStatsCache(store, rdb, cfg.Stats.CacheTTL, log, cache.WithLocation(loc))
		log.Info("stats cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Stats.CacheTTL))
	}

	identity, err := identityMiddleware(ctx, cfg, log)
	if err != nil {
		return err
	}

	refresher := stats.NewRefresher(store, log)
	if err := refresher.Start(cfg.Stats.RefreshCron); err != nil {
		return err
	}
	defer refresher.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:        cfg.App.Name,
		Version:            cfg.App.Version,
		Logger:             log,
		Store:              store,
		DB:                 db,
		Identity:           identity,
		Registry:           reg,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimit.RPS,
		RateLimitBurst:     cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// identityMiddleware verifies Firebase ID tokens when credentials are set.
// Only development and test may fall back to trusting X-User-* headers.
func identityMiddleware(ctx context.Context, cfg *config.Config, log *zap.Logger) (gin.HandlerFunc, error) {
	if cfg.Firebase.CredentialsPath == "" {
		if !cfg.AllowsHeaderIdentity() {
			return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when APP_ENV=%s", cfg.App.Environment)
		}
		log.Warn("FIREBASE_CREDENTIALS_PATH not set; trusting X-User-* identity headers")
		return authmw.HeaderIdentity(), nil
	}

	client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		return nil, err
	}
	log.Info("firebase auth initialized")
	return authmw.FirebaseAuth(client), nil
}

func closeDB(db *sqlx.DB, log *zap.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("closing database", zap.Error(err))
	}
}
