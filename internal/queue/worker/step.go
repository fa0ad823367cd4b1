package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andinalabs/cataloghub/internal/domain/job"
	"github.com/andinalabs/cataloghub/internal/domain/product"
	"github.com/andinalabs/cataloghub/internal/export"
	"github.com/andinalabs/cataloghub/internal/jobs"
	"github.com/andinalabs/cataloghub/internal/notifications"
)

// ProcessOne claims and runs at most one job. The bool reports whether a job
// was claimed at all; a drained queue is not an error.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	claimCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	j, err := w.repo.ClaimNext(claimCtx, w.workerID())
	cancel()

	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return false, nil
		}

		return false, err
	}

	if w.prom != nil {
		w.prom.JobsInFlight.Inc()
		defer w.prom.JobsInFlight.Dec()
	}

	start := time.Now()

	err = w.execute(ctx, j)

	if err != nil {
		w.observeJob(j.Type, "retry", time.Since(start))
		w.handleFailure(ctx, j, err)
		return true, nil
	}

	err = w.repo.MarkDone(ctx, j.ID)

	if err != nil {
		_ = w.repo.MarkFailed(ctx, j.ID, "mark_done_failed: "+err.Error())
		return true, err
	}

	w.observeJob(j.Type, "done", time.Since(start))

	return true, nil
}

func (w *Worker) execute(ctx context.Context, j job.Job) error {
	switch jobs.JobType(j.Type) {
	case jobs.JobInventoryExportEmail:
		return w.runInventoryExport(ctx, j)

	default:
		// Unknown types never succeed; fail fast instead of burning retries.
		return fmt.Errorf("%w: %s", jobs.ErrInvalidJobType, j.Type)
	}
}

func (w *Worker) runInventoryExport(ctx context.Context, j job.Job) error {
	decoded, err := jobs.DecodePayload(jobs.JobInventoryExportEmail, j.Payload)

	if err != nil {
		return err
	}

	payload := decoded.(jobs.InventoryExportEmailPayload)

	if err := jobs.ValidatePayload(jobs.JobInventoryExportEmail, payload); err != nil {
		return err
	}

	list, err := w.loadInventory(ctx, payload.EnterpriseNIT)

	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}

	csvBytes, err := export.InventoryCSV(list)

	if err != nil {
		return fmt.Errorf("render inventory csv: %w", err)
	}

	reportName := "inventory.csv"

	if payload.EnterpriseNIT != "" {
		reportName = "inventory-" + payload.EnterpriseNIT + ".csv"
	}

	err = w.notifier.SendInventoryReport(ctx, notifications.SendInventoryReportInput{
		ToAddresses:   payload.ToAddresses,
		EnterpriseNIT: payload.EnterpriseNIT,
		ReportName:    reportName,
		ReportCSV:     csvBytes,
		RequestedBy:   payload.RequestedBy,
	})

	if err != nil {
		return fmt.Errorf("send inventory report: %w", err)
	}

	w.log.Info("inventory report delivered", "job_id", j.ID, "nit", payload.EnterpriseNIT, "recipients", len(payload.ToAddresses))

	return nil
}

func (w *Worker) loadInventory(ctx context.Context, nit string) ([]product.Product, error) {
	if nit == "" {
		return w.products.ListInventory(ctx)
	}

	return w.products.ListByEnterprise(ctx, nit)
}
