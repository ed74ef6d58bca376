package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/config"
	"github.com/YusovID/capacity-planner-service/internal/repository/postgres"
	"github.com/YusovID/capacity-planner-service/internal/service"
	myhttp "github.com/YusovID/capacity-planner-service/internal/transport/http"
	"github.com/YusovID/capacity-planner-service/pkg/logger/sl"
	"github.com/YusovID/capacity-planner-service/pkg/logger/slogpretty"
	"github.com/redis/go-redis/v9"
)

const cachePrefix = "capacity-planner"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting capacity-planner-service", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	c, closeCache, err := newCache(ctx, cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("failed to init cache: %v", err)
	}
	defer closeCache()

	resources := postgres.NewResourceRepository(db.DB(), log)
	projects := postgres.NewProjectRepository(db.DB(), log)
	allocations := postgres.NewAllocationRepository(db.DB(), log)
	activities := postgres.NewActivityRepository(db.DB(), log)

	srv := myhttp.NewServer(
		log,
		service.NewAllocationService(db.DB(), log, resources, allocations, c),
		service.NewCapacityService(log, resources, activities, allocations, c),
		service.NewActivityService(log, resources, activities, c),
		service.NewProjectService(log, projects, allocations),
		service.NewAlertService(log, resources, activities, allocations, cfg.Alerts.Thresholds()),
	)

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      2 * cfg.Server.Timeout,
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shuting down http server: %v", err)
	}

	return nil
}

// newCache picks Redis when an address is configured and falls back to the
// in-process cache otherwise.
func newCache(ctx context.Context, cfg config.Redis, log *slog.Logger) (cache.Cache, func(), error) {
	if cfg.Addr == "" {
		log.Info("using in-memory cache", slog.Duration("ttl", cfg.TTL))
		return cache.NewMemory(cfg.TTL), func() {}, nil
	}

	rc := cache.NewRedis(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cachePrefix, cfg.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rc.Ping(pingCtx); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	log.Info("connected to redis", slog.String("addr", cfg.Addr))

	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Error("redis close failed", sl.Err(err))
		}
	}, nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
