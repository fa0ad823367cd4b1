package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/andinalabs/cataloghub/internal/auth"
	"github.com/andinalabs/cataloghub/internal/cache"
	"github.com/andinalabs/cataloghub/internal/config"
	"github.com/andinalabs/cataloghub/internal/db"
	httpx "github.com/andinalabs/cataloghub/internal/http"
	"github.com/andinalabs/cataloghub/internal/observability"
	"github.com/andinalabs/cataloghub/internal/repo/postgres"
	"github.com/andinalabs/cataloghub/internal/security"
	"github.com/andinalabs/cataloghub/internal/session"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	// tracing

	shutdownTracer, err := observability.InitTracer(context.Background(), "cataloghub-api", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracer init failed, continuing without traces", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// metrics

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(registry)

	// storage

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	hasher := security.NewHasher(cfg.BcryptCost)

	if err := db.EnsureAdminUser(context.Background(), pool, cfg, hasher); err != nil {
		log.Error("admin bootstrap failed", "err", err)
		os.Exit(1)
	}

	// cache; redis being down is a degradation, not a startup failure

	redis := cache.New(cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	defer redis.Close()

	if err := redis.Ping(context.Background()); err != nil {
		log.Warn("redis unreachable, inventory cache disabled in effect", "err", err)
	}

	// session stack

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	if err != nil {
		// a forgeable token is worse than no service
		log.Error("token manager init failed", "err", err)
		os.Exit(1)
	}

	usersRepo := postgres.NewUsersRepo(pool, prom)
	sessions := session.NewManager(usersRepo, hasher, tokens, cfg.MinPasswordLength, log)

	router := httpx.NewRouter(cfg, log, pool, redis, prom, registry, sessions, tokens)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}

		_ = shutdownTracer(ctx)
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
