package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"meterrelocation/spreadsheet"
)

// recapNameMax bounds the customer-name segment of a recap title. With the
// "RKP " prefix, the 13-character minute stamp, the audience letter and the
// separating space, a 12-rune name lands exactly on excelize's 31-character
// sheet-name limit.
const recapNameMax = 12

// RecapTitles builds the paired sheet titles for one export run. Characters
// excelize rejects in sheet names are flattened, the name is truncated to
// keep the title within the sheet-name limit, and the minute-precision WIB
// timestamp keeps concurrent exports from colliding.
func RecapTitles(customerName string, now time.Time) (vendor, customer string) {
	safe := strings.NewReplacer(
		"/", "-", `\`, "-", ":", "-",
		"?", "", "*", "", "[", "", "]", "",
	).Replace(customerName)
	safe = strings.TrimSpace(safe)
	if r := []rune(safe); len(r) > recapNameMax {
		safe = strings.TrimSpace(string(r[:recapNameMax]))
	}

	stamp := now.In(Jakarta()).Format("20060102_1504")
	if safe == "" {
		return RecapTitlePrefix + stamp + "V", RecapTitlePrefix + stamp + "P"
	}
	vendor = fmt.Sprintf("%s%s %sV", RecapTitlePrefix, safe, stamp)
	customer = fmt.Sprintf("%s%s %sP", RecapTitlePrefix, safe, stamp)
	return vendor, customer
}

// SurveyUpdateResult reports the denormalized survey-date side-write. A miss
// (column or row not found) is a reported outcome, not an error: the recap
// sheets already created stay valid either way.
type SurveyUpdateResult struct {
	OK      bool
	Message string
	Row     int
	Col     int
}

// headerColumn finds the 1-based index of the first header cell whose
// normalized text contains any of the given fragments.
func headerColumn(header []string, fragments ...string) int {
	for i, name := range header {
		h := strings.ToLower(strings.TrimSpace(name))
		compact := strings.ReplaceAll(h, " ", "")
		for _, frag := range fragments {
			if strings.Contains(h, frag) || strings.Contains(compact, strings.ReplaceAll(frag, " ", "")) {
				return i + 1
			}
		}
	}
	return 0
}

// updateDatedColumn writes value into the column matched by colFragments on
// the last (bottom-most) row whose customer-id cell equals customerID.
func updateDatedColumn(wb spreadsheet.Workbook, sheet, customerID, value string, colFragments ...string) SurveyUpdateResult {
	rows, err := wb.Rows(sheet)
	if err != nil {
		return SurveyUpdateResult{Message: err.Error()}
	}
	if len(rows) == 0 {
		return SurveyUpdateResult{Message: fmt.Sprintf("sheet %q has no header row", sheet)}
	}

	header := rows[0]
	dateCol := headerColumn(header, colFragments...)
	if dateCol == 0 {
		return SurveyUpdateResult{Message: fmt.Sprintf("column %q not found in header: %v", colFragments[0], header)}
	}
	idCol := headerColumn(header, "id pelanggan")
	if idCol == 0 {
		return SurveyUpdateResult{Message: "column 'ID Pelanggan' not found"}
	}

	// Most recent submission wins: scan upward from the bottom.
	matchedRow := 0
	want := strings.TrimSpace(customerID)
	for i := len(rows) - 1; i >= 1; i-- {
		if idCol-1 >= len(rows[i]) {
			continue
		}
		if strings.TrimSpace(rows[i][idCol-1]) == want {
			matchedRow = i + 1
			break
		}
	}
	if matchedRow == 0 {
		return SurveyUpdateResult{Message: fmt.Sprintf("ID Pelanggan %s not found in %q", customerID, sheet)}
	}

	cell := spreadsheet.CellName(dateCol, matchedRow)
	if err := wb.WriteCell(sheet, cell, value); err != nil {
		return SurveyUpdateResult{Message: err.Error(), Row: matchedRow, Col: dateCol}
	}
	if err := wb.Save(); err != nil {
		return SurveyUpdateResult{Message: err.Error(), Row: matchedRow, Col: dateCol}
	}

	return SurveyUpdateResult{
		OK:      true,
		Message: fmt.Sprintf("updated row %d, column %d", matchedRow, dateCol),
		Row:     matchedRow,
		Col:     dateCol,
	}
}

// UpdateSurveyDate stamps the survey-date column of the customer's most
// recent record row with the given time, in the form-response format.
func UpdateSurveyDate(wb spreadsheet.Workbook, recordsSheet, customerID string, now time.Time) SurveyUpdateResult {
	stamp := now.In(Jakarta()).Format("02/01/2006 15:04:05")
	return updateDatedColumn(wb, recordsSheet, customerID, stamp, "tanggal survey", "tanggalsurvey")
}

// ParseExecutionDate parses the yyyy-mm-dd value an HTML date input submits.
func ParseExecutionDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), Jakarta())
}

// UpdateExecutionDate stamps the execution-date column of the customer's most
// recent record row with a dd/mm/yyyy date.
func UpdateExecutionDate(wb spreadsheet.Workbook, recordsSheet, customerID string, day time.Time) SurveyUpdateResult {
	return updateDatedColumn(wb, recordsSheet, customerID, day.Format("02/01/2006"), "tanggaleksekusi", "tanggal eksekusi")
}

// PairExportRequest carries everything one pair export needs.
type PairExportRequest struct {
	VendorTitle      string
	CustomerTitle    string
	TemplateVendor   string
	TemplateCustomer string
	Identity         IdentityFields
	Lines            []LineItem
	CustomerID       string
	RecordsSheet     string
	Keep             int // retention count; <= 0 means DefaultKeepLatest
}

// PairResult reports the independent outcomes of one pair export.
type PairResult struct {
	Vendor   ExportResult
	Customer ExportResult
	Deleted  []string
	Survey   SurveyUpdateResult
}

// ExportPair creates the vendor and customer recap sheets from the same line
// items, sweeps old recap sheets, then stamps the survey date on the source
// record. When the customer export fails after the vendor sheet was created,
// the vendor sheet is deleted (best effort) so the pair never drifts apart.
// A failed survey-date update is reported in the result, not as an error.
func ExportPair(
	wb spreadsheet.Workbook,
	cat *Catalog,
	vendorTable, customerTable PriceTable,
	req PairExportRequest,
) (PairResult, error) {
	var res PairResult

	vendor, err := ExportRecap(wb, req.VendorTitle, req.TemplateVendor, req.Identity, req.Lines, cat, vendorTable)
	if err != nil {
		return res, fmt.Errorf("vendor export: %w", err)
	}
	res.Vendor = vendor

	customerExisted := wb.HasSheet(req.CustomerTitle)
	customer, err := ExportRecap(wb, req.CustomerTitle, req.TemplateCustomer, req.Identity, req.Lines, cat, customerTable)
	if err != nil {
		// Remove both halves of the failed pair: the vendor sheet, and the
		// customer sheet when this run created it and then failed mid-write.
		orphans := []string{req.VendorTitle}
		if !customerExisted && wb.HasSheet(req.CustomerTitle) {
			orphans = append(orphans, req.CustomerTitle)
		}
		for _, title := range orphans {
			if delErr := wb.DeleteSheet(title); delErr != nil {
				log.Printf("export_pair: could not remove orphaned sheet %q: %v", title, delErr)
			}
		}
		if saveErr := wb.Save(); saveErr != nil {
			log.Printf("export_pair: save after orphan cleanup failed: %v", saveErr)
		}
		return res, fmt.Errorf("customer export: %w", err)
	}
	res.Customer = customer

	keep := req.Keep
	if keep <= 0 {
		keep = DefaultKeepLatest
	}
	res.Deleted = SweepOldRecaps(wb, keep)

	if req.CustomerID != "" && req.RecordsSheet != "" {
		res.Survey = UpdateSurveyDate(wb, req.RecordsSheet, req.CustomerID, NowJakarta())
	} else {
		res.Survey = SurveyUpdateResult{Message: "customer id or records sheet not set"}
	}

	return res, nil
}
