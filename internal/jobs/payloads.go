package jobs

// InventoryExportEmailPayload describes one inventory report delivery. Kept
// ID-based and minimal; the worker loads the product rows itself.
type InventoryExportEmailPayload struct {
	// Empty NIT means the whole catalog, otherwise one tenant's inventory.
	EnterpriseNIT string   `json:"enterpriseNit,omitempty"`
	ToAddresses   []string `json:"toAddresses"`
	RequestedBy   string   `json:"requestedBy,omitempty"`
	RequestID     string   `json:"requestId,omitempty"` // correlation
}
