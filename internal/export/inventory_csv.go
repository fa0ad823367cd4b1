package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/andinalabs/cataloghub/internal/domain/product"
)

// InventoryCSV renders product rows into the attachment the inventory email
// carries. One line per product, prices flattened as code:amount pairs.
func InventoryCSV(products []product.Product) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	header := []string{"id", "name", "code", "enterprise_nit", "active", "prices", "properties"}

	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range products {
		prices := make([]string, 0, len(p.Prices))

		for _, pr := range p.Prices {
			prices = append(prices, fmt.Sprintf("%s:%.2f", pr.Code, pr.Price))
		}

		record := []string{
			p.ID,
			p.Name,
			p.Code,
			p.EnterpriseNIT,
			fmt.Sprintf("%t", p.Active),
			strings.Join(prices, ";"),
			p.Properties,
		}

		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
