package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"meterrelocation/spreadsheet"
)

// Recap template layout. The destination template's formulas key off absolute
// cell positions, so these anchors are part of the workbook contract.
const (
	identityCol      = "C"
	identityFirstRow = 3 // C3:C8, six rows
	qtyCol           = "C"
	restrictedCol    = "D"
	cashCol          = "E"
	itemBlockFirst   = 12 // C12:C26
	reservedTopRows  = 2  // rows 12-13 are labels, left untouched
)

// templateCandidates are tried in order when the configured template title is
// missing from the workbook.
var templateCandidates = []string{"Template", "Sheet1"}

// TemplateNotFoundError is returned when no usable template sheet exists. It
// lists the available sheet names so the operator can fix the workbook.
type TemplateNotFoundError struct {
	Title     string
	Available []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template sheet %q not found; create a 'Template' tab (available: %s)",
		e.Title, strings.Join(e.Available, ", "))
}

// IdentityFields is the job/customer metadata written once per recap sheet.
type IdentityFields struct {
	Job          string
	CustomerName string
	Location     string
	Unit         string
	WorkOrder    string
	Contractor   string
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// rows returns the six identity values in template row order, blanks
// substituted with "-".
func (f IdentityFields) rows() []string {
	return []string{
		orDash(f.Job),
		orDash(f.CustomerName),
		orDash(f.Location),
		orDash(f.Unit),
		orDash(f.WorkOrder),
		orDash(f.Contractor),
	}
}

// ExportResult reports one created recap sheet and its computed totals.
type ExportResult struct {
	SheetTitle string
	SheetIndex int
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
}

// findTemplateSheet returns the first existing sheet among the preferred
// title and the fixed fallback candidates.
func findTemplateSheet(wb spreadsheet.Workbook, preferred string) (string, error) {
	names := make([]string, 0, 1+len(templateCandidates))
	if preferred != "" {
		names = append(names, preferred)
	}
	for _, n := range templateCandidates {
		if n != preferred {
			names = append(names, n)
		}
	}
	for _, n := range names {
		if wb.HasSheet(n) {
			return n, nil
		}
	}
	return "", &TemplateNotFoundError{Title: preferred, Available: wb.SheetNames()}
}

// ExportRecap duplicates the template sheet under sheetTitle and fills in the
// identity block plus per-item quantities and unit prices. Only rows matching
// a resolved catalog item receive values; a quantity is written only when
// positive and a price only when positive, so untouched cells stay blank and
// the template's formulas see blank rather than zero. Subtotal and totals in
// the sheet itself are left to the template's formulas; the computed recap is
// returned for display.
func ExportRecap(
	wb spreadsheet.Workbook,
	sheetTitle, templateTitle string,
	identity IdentityFields,
	lines []LineItem,
	cat *Catalog,
	table PriceTable,
) (ExportResult, error) {
	tmpl, err := findTemplateSheet(wb, templateTitle)
	if err != nil {
		return ExportResult{}, err
	}

	idx, err := wb.Duplicate(tmpl, sheetTitle)
	if err != nil {
		return ExportResult{}, fmt.Errorf("duplicate template: %w", err)
	}

	var writes []spreadsheet.CellWrite
	for i, v := range identity.rows() {
		writes = append(writes, spreadsheet.CellWrite{
			Sheet: sheetTitle,
			Cell:  fmt.Sprintf("%s%d", identityCol, identityFirstRow+i),
			Value: v,
		})
	}

	recap := ComputeRecap(cat, lines, table)
	for _, line := range recap.Lines {
		row := itemBlockFirst + reservedTopRows + line.Item.Row
		if line.Qty > 0 {
			writes = append(writes, spreadsheet.CellWrite{
				Sheet: sheetTitle,
				Cell:  fmt.Sprintf("%s%d", qtyCol, row),
				Value: line.Qty,
			})
		}
		if line.UnitPrice.IsPositive() {
			col := cashCol
			if line.Item.Category == CategoryRestricted {
				col = restrictedCol
			}
			writes = append(writes, spreadsheet.CellWrite{
				Sheet: sheetTitle,
				Cell:  fmt.Sprintf("%s%d", col, row),
				Value: line.UnitPrice.InexactFloat64(),
			})
		}
	}

	if err := wb.BatchWrite(writes); err != nil {
		// The batch path failed structurally; retry the same writes one by
		// one. A failure mid-sequence leaves the uniquely named sheet
		// partially populated, which the operator can discard by hand.
		log.Printf("export_recap: batch write failed, falling back to per-cell writes: %v", err)
		for _, cw := range writes {
			if werr := wb.WriteCell(cw.Sheet, cw.Cell, cw.Value); werr != nil {
				return ExportResult{}, fmt.Errorf("write %s!%s: %w", cw.Sheet, cw.Cell, werr)
			}
		}
	}

	if err := wb.Save(); err != nil {
		return ExportResult{}, err
	}

	return ExportResult{
		SheetTitle: sheetTitle,
		SheetIndex: idx,
		Subtotal:   recap.Subtotal,
		Tax:        recap.Tax,
		Total:      recap.Total,
	}, nil
}
