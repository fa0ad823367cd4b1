package cache

// Key layout: cataloghub:<area>:<scope>. One place so invalidation and
// population can never disagree on spelling.

const keyPrefix = "cataloghub"

func InventoryKey(nit string) string {
	if nit == "" {
		return keyPrefix + ":inventory:all"
	}

	return keyPrefix + ":inventory:nit:" + nit
}

func EnterpriseListKey() string {
	return keyPrefix + ":enterprises:all"
}
