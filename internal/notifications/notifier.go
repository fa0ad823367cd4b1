package notifications

import "context"

// SendInventoryReportInput is one rendered inventory report ready for
// delivery. The attachment is already rendered; notifiers only transport it.
type SendInventoryReportInput struct {
	ToAddresses   []string
	EnterpriseNIT string
	ReportName    string
	ReportCSV     []byte
	RequestedBy   string
}

// Notifier is the outbound mail collaborator. Real providers (SES etc.) live
// outside this repo; anything that can deliver the report can plug in here.
type Notifier interface {
	SendInventoryReport(ctx context.Context, input SendInventoryReportInput) error
}
