package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/andinalabs/cataloghub/internal/domain/product"
)

func TestInventoryCSV(t *testing.T) {
	products := []product.Product{
		{
			ID:            "p1",
			Name:          "Laptop, 15 inch",
			Code:          "LP-15",
			EnterpriseNIT: "900-1",
			Active:        true,
			Prices:        []product.Price{{Code: "USD", Price: 999.99}, {Code: "COP", Price: 4100000}},
			Properties:    "16GB RAM",
		},
		{
			ID:            "p2",
			Name:          "Mouse",
			Code:          "MS-01",
			EnterpriseNIT: "900-1",
			Active:        false,
		},
	}

	out, err := InventoryCSV(products)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("rendered output is not valid CSV: %v", err)
	}

	if len(records) != 3 { // header + 2 rows
		t.Fatalf("got %d records, want 3", len(records))
	}

	if records[1][1] != "Laptop, 15 inch" {
		t.Errorf("comma in product name must survive quoting, got %q", records[1][1])
	}

	if records[1][5] != "USD:999.99;COP:4100000.00" {
		t.Errorf("prices column = %q", records[1][5])
	}

	if records[2][4] != "false" {
		t.Errorf("active column = %q, want false", records[2][4])
	}
}

func TestInventoryCSVEmpty(t *testing.T) {
	out, err := InventoryCSV(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("empty inventory should still produce the header row, got %d records", len(records))
	}
}
