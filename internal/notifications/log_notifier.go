package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// LogNotifier stands in for a real mail provider in dev and tests.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) SendInventoryReport(ctx context.Context, in SendInventoryReportInput) error {
	// Optional: simulate slow provider
	if msStr := os.Getenv("NOTIFIER_SLEEP_MS"); msStr != "" {
		ms, _ := strconv.Atoi(msStr)
		if ms > 0 {
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	// Optional: simulate provider outage
	if os.Getenv("NOTIFIER_FAIL") == "1" {
		return fmt.Errorf("provider down (simulated)")
	}

	log.Printf("notification.inventory_report to=%s nit=%s report=%s bytes=%d requested_by=%s",
		strings.Join(in.ToAddresses, ","), in.EnterpriseNIT, in.ReportName, len(in.ReportCSV), in.RequestedBy,
	)
	return nil
}
