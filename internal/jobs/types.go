package jobs

type JobType string

const (
	// JobInventoryExportEmail renders an inventory report and hands it to the
	// mail collaborator.
	JobInventoryExportEmail JobType = "inventory_export_email"
)

// check to see if the job type is a known constant

func (t JobType) IsValid() bool {
	switch t {
	case JobInventoryExportEmail:
		return true
	default:
		return false
	}
}
