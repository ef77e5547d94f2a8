package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/fftourney/hub/internal/admin"
	"github.com/fftourney/hub/internal/config"
	"github.com/fftourney/hub/internal/database"
	"github.com/fftourney/hub/internal/deeplink"
	"github.com/fftourney/hub/internal/handler/health"
	"github.com/fftourney/hub/internal/migrations"
	"github.com/fftourney/hub/internal/profile"
	"github.com/fftourney/hub/internal/server"
	"github.com/fftourney/hub/internal/session"
	"github.com/fftourney/hub/internal/source"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	applied, err := migrations.Run(ctx, db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath, "migrations_applied", applied)

	checks := map[string]health.Checker{"sqlite": dbChecker{db}}

	// --- Admin sessions: Redis when configured, SQLite otherwise ---
	var adminSessions admin.SessionStore = admin.NewSQLSessions(db, cfg.AdminSessionTTL)
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		adminSessions = admin.NewRedisSessions(rdb, cfg.AdminSessionTTL)
		checks["redis"] = health.CheckFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	auth, err := admin.NewAuthenticator(cfg.AdminPasscode)
	if err != nil {
		return fmt.Errorf("configuring admin auth: %w", err)
	}

	// --- Tournament sources ---
	spaRoot, err := filepath.Abs(cfg.SPADir)
	if err != nil {
		return fmt.Errorf("resolving spa dir: %w", err)
	}
	fetcher := source.NewFetcher(source.NewClient(spaRoot, cfg.FetchTimeout))
	loader, err := source.NewLoader(fetcher, cfg.AppRootURL, cfg.PrimarySourceURL, cfg.FallbackSourceURL, logger)
	if err != nil {
		return fmt.Errorf("configuring tournament sources: %w", err)
	}
	logger.Info("tournament sources", "primary", loader.PrimaryURL(), "fallback", loader.FallbackURL())

	ctrl := session.NewController(loader, profile.NewStore(db), deeplink.Builder{
		PayeeLabel: cfg.PayeeLabel,
		QREndpoint: cfg.QRCodeEndpoint,
	}, logger)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Session:       ctrl,
		Auth:          auth,
		AdminSessions: adminSessions,
		SPADir:        cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		ctrl.Initialize(gctx)
		if cfg.SyncInterval <= 0 {
			return nil
		}

		sched, err := session.StartRefresher(gctx, ctrl, cfg.SyncInterval, logger)
		if err != nil {
			return err
		}
		logger.Info("catalog refresh scheduled", "interval", cfg.SyncInterval)
		return waitAndStop(gctx, sched)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func waitAndStop(ctx context.Context, sched gocron.Scheduler) error {
	<-ctx.Done()
	return sched.Shutdown()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }
