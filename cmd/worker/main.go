package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andinalabs/cataloghub/internal/config"
	"github.com/andinalabs/cataloghub/internal/db"
	"github.com/andinalabs/cataloghub/internal/notifications"
	"github.com/andinalabs/cataloghub/internal/observability"
	"github.com/andinalabs/cataloghub/internal/queue/worker"
	"github.com/andinalabs/cataloghub/internal/repo/postgres"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	shutdownTracer, err := observability.InitTracer(context.Background(), "cataloghub-worker", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracer init failed, continuing without traces", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	jobsRepo := postgres.NewJobsRepo(pool, prom)
	productsRepo := postgres.NewProductsRepo(pool, prom)
	notifier := notifications.NewLogNotifier()

	host, _ := os.Hostname()
	workerID := host + "-" + strconv.Itoa(os.Getpid())

	w := worker.New(worker.Config{
		PollInterval:  100 * time.Millisecond,
		WorkerID:      workerID,
		LockTTL:       5 * time.Minute,
		ShutdownGrace: 10 * time.Second,
	}, jobsRepo, productsRepo, notifier, prom, log)

	// health endpoints on a side port
	healthSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port+1),
		Handler: w.HealthHandler(),
	}

	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("worker health server failed", "err", err)
		}
	}()

	log.Info("worker started", "worker_id", workerID)

	if err := w.Run(ctx); err != nil {
		log.Error("worker stopped with error", "err", err)
	}

	shutdownCtx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	_ = healthSrv.Shutdown(shutdownCtx)
	_ = shutdownTracer(shutdownCtx)

	log.Info("worker shutdown complete")
}
