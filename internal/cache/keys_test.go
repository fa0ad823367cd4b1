package cache_test

import (
	"testing"

	"github.com/andinalabs/cataloghub/internal/cache"
)

func TestInventoryKey(t *testing.T) {
	tests := []struct {
		name string
		nit  string
		want string
	}{
		{name: "whole catalog", nit: "", want: "cataloghub:inventory:all"},
		{name: "single tenant", nit: "900123456", want: "cataloghub:inventory:nit:900123456"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cache.InventoryKey(tc.nit); got != tc.want {
				t.Fatalf("InventoryKey(%q) = %q, want %q", tc.nit, got, tc.want)
			}
		})
	}
}
