package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/andinalabs/cataloghub/internal/domain/job"
	"github.com/andinalabs/cataloghub/internal/domain/product"
	"github.com/andinalabs/cataloghub/internal/notifications"
	"github.com/andinalabs/cataloghub/internal/observability"
)

type JobsRepository interface {
	ClaimNext(ctx context.Context, workerID string) (job.Job, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
	Reschedule(ctx context.Context, id string, runAt time.Time, errMsg string) error
	RequeueStaleProcessing(ctx context.Context, lockTTL time.Duration) (int64, error)
}

type InventoryLister interface {
	ListInventory(ctx context.Context) ([]product.Product, error)
	ListByEnterprise(ctx context.Context, nit string) ([]product.Product, error)
}

type Config struct {
	PollInterval  time.Duration
	WorkerID      string
	LockTTL       time.Duration
	ShutdownGrace time.Duration
}

// Worker drains the jobs table: claim, execute, ack; reschedule with backoff
// on failure until attempts run out.
type Worker struct {
	cfg      Config
	repo     JobsRepository
	products InventoryLister
	notifier notifications.Notifier
	prom     *observability.Prom
	log      *slog.Logger

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, repo JobsRepository, products InventoryLister, notifier notifications.Notifier, prom *observability.Prom, log *slog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 100 * time.Millisecond
	}

	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}

	return &Worker{
		cfg:      cfg,
		repo:     repo,
		products: products,
		notifier: notifier,
		prom:     prom,
		log:      log,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	w.setReady(true)
	defer w.setReady(false)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	// Stale-lock sweeps are much less frequent than the claim polls.
	requeue := time.NewTicker(w.cfg.LockTTL / 2)
	defer requeue.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker received shutdown signal")
			return nil

		case <-requeue.C:
			n, err := w.repo.RequeueStaleProcessing(ctx, w.cfg.LockTTL)

			if err != nil {
				w.log.Error("requeue stale jobs failed", "err", err)
			} else if n > 0 {
				w.log.Warn("requeued stale jobs", "count", n)
			}

		case <-ticker.C:
			// Keep claiming until the queue is drained, then go back to
			// sleeping on the ticker.
			for {
				processed, err := w.ProcessOne(ctx)

				if err != nil {
					w.log.Error("process job failed", "err", err)
				}

				if !processed || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

func (w *Worker) setReady(v bool) {
	w.readyMu.Lock()
	w.ready = v
	w.readyMu.Unlock()
}

func (w *Worker) handleFailure(ctx context.Context, j job.Job, execErr error) {
	// Attempts was incremented by the claim's eventual reschedule, so the
	// comparison uses the count as of this execution.
	if j.Attempts+1 >= j.MaxAttempts {
		w.log.Error("job failed permanently", "job_id", j.ID, "type", j.Type, "attempts", j.Attempts+1, "err", execErr)

		if err := w.repo.MarkFailed(ctx, j.ID, execErr.Error()); err != nil {
			w.log.Error("mark failed error", "job_id", j.ID, "err", err)
		}
		return
	}

	delay := ExponentialBackoff(j.Attempts)
	runAt := time.Now().UTC().Add(delay)

	w.log.Warn("job failed, rescheduling", "job_id", j.ID, "type", j.Type, "attempt", j.Attempts+1, "retry_in", delay.String(), "err", execErr)

	if err := w.repo.Reschedule(ctx, j.ID, runAt, execErr.Error()); err != nil {
		w.log.Error("reschedule error", "job_id", j.ID, "err", err)
	}
}

func (w *Worker) observeJob(jobType, result string, d time.Duration) {
	if w.prom == nil {
		return
	}

	w.prom.JobResults.WithLabelValues(jobType, result).Inc()
	w.prom.JobDuration.WithLabelValues(jobType, result).Observe(d.Seconds())
}

func (w *Worker) workerID() string {
	if w.cfg.WorkerID != "" {
		return w.cfg.WorkerID
	}

	return fmt.Sprintf("worker-%d", time.Now().UnixNano())
}
