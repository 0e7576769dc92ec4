package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"meterrelocation/spreadsheet"
)

// cellAt returns the trimmed value at 1-based coordinates from a Rows() grid,
// blank for positions past the populated area.
func cellAt(rows [][]string, col, row int) string {
	if row-1 >= len(rows) {
		return ""
	}
	r := rows[row-1]
	if col-1 >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}

// parsePrice reads a unit-price cell. Unparseable or blank cells yield zero.
func parsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ReadRecapSheet reconstructs a recap from a previously exported sheet: the
// identity block plus every item row carrying a quantity. Totals are
// recomputed from the cells rather than read back, since the sheet keeps them
// in template formulas.
func ReadRecapSheet(wb spreadsheet.Workbook, cat *Catalog, title string) (IdentityFields, Recap, error) {
	rows, err := wb.Rows(title)
	if err != nil {
		return IdentityFields{}, Recap{}, err
	}

	const identityColIdx = 3 // column C
	identity := IdentityFields{
		Job:          cellAt(rows, identityColIdx, identityFirstRow),
		CustomerName: cellAt(rows, identityColIdx, identityFirstRow+1),
		Location:     cellAt(rows, identityColIdx, identityFirstRow+2),
		Unit:         cellAt(rows, identityColIdx, identityFirstRow+3),
		WorkOrder:    cellAt(rows, identityColIdx, identityFirstRow+4),
		Contractor:   cellAt(rows, identityColIdx, identityFirstRow+5),
	}

	const (
		qtyColIdx        = 3 // column C
		restrictedColIdx = 4 // column D
		cashColIdx       = 5 // column E
	)

	recap := Recap{Subtotal: decimal.Zero}
	for _, item := range cat.Items() {
		row := itemBlockFirst + reservedTopRows + item.Row
		qty := ParseQty(cellAt(rows, qtyColIdx, row))
		if qty == 0 {
			continue
		}
		price := parsePrice(cellAt(rows, restrictedColIdx, row))
		if price.IsZero() {
			price = parsePrice(cellAt(rows, cashColIdx, row))
		}
		total := price.Mul(decimal.NewFromInt(int64(qty)))
		recap.Lines = append(recap.Lines, RecapLine{
			Item:      item,
			Qty:       qty,
			UnitPrice: price,
			Total:     total,
		})
		recap.Subtotal = recap.Subtotal.Add(total)
	}
	recap.Tax = recap.Subtotal.Mul(TaxRate).Round(0)
	recap.Total = recap.Subtotal.Add(recap.Tax)

	return identity, recap, nil
}
