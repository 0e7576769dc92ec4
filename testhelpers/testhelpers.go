// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"meterrelocation/collections"
	"meterrelocation/spreadsheet"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// NewTestWorkbook creates an .xlsx fixture in a temp directory with a Template
// sheet (identity labels plus the item block skeleton) and an intake record
// sheet named "Form Responses 1" carrying the standard headers. Extra record
// rows can be appended with AddCustomerRow.
func NewTestWorkbook(t *testing.T) *spreadsheet.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "workbook.xlsx")
	wb := spreadsheet.New(path)
	f := wb.Excelize()

	if _, err := f.NewSheet("Template"); err != nil {
		t.Fatalf("failed to create Template sheet: %v", err)
	}
	f.SetCellValue("Template", "B1", "REKAPITULASI BIAYA")
	labels := []string{"Pekerjaan", "Nama", "Lokasi Pekerjaan", "ULP", "No SPK", "Vendor Pelaksana"}
	for i, label := range labels {
		f.SetCellValue("Template", "B"+strconv.Itoa(3+i), label)
	}
	f.SetCellValue("Template", "B12", "MATERIAL PLN")
	f.SetCellValue("Template", "B13", "MATERIAL TUNAI")

	if _, err := f.NewSheet("Form Responses 1"); err != nil {
		t.Fatalf("failed to create records sheet: %v", err)
	}
	headers := []string{"Timestamp", "ID Pelanggan", "Nama", "Alamat kWH Meter", "Tarif / Daya", "Foto KTP", "Tanggal Survey", "Tanggal Eksekusi"}
	for i, h := range headers {
		f.SetCellValue("Form Responses 1", spreadsheet.CellName(i+1, 1), h)
	}

	// Drop the excelize default sheet so fixtures only carry what tests expect.
	f.DeleteSheet(f.GetSheetName(0))

	if err := wb.Save(); err != nil {
		t.Fatalf("failed to save test workbook: %v", err)
	}
	return wb
}

// AddCustomerRow appends one intake row to the fixture's record sheet.
func AddCustomerRow(t *testing.T, wb *spreadsheet.File, timestamp, id, name, address, tariff string) {
	t.Helper()

	rows, err := wb.Rows("Form Responses 1")
	if err != nil {
		t.Fatalf("failed to read records sheet: %v", err)
	}
	row := len(rows) + 1
	values := []string{timestamp, id, name, address, tariff}
	for i, v := range values {
		if err := wb.WriteCell("Form Responses 1", spreadsheet.CellName(i+1, row), v); err != nil {
			t.Fatalf("failed to write customer cell: %v", err)
		}
	}
	if err := wb.Save(); err != nil {
		t.Fatalf("failed to save test workbook: %v", err)
	}
}

// ConfigureApp inserts an app_settings record pointing at the given workbook.
func ConfigureApp(t *testing.T, app *pocketbase.PocketBase, workbookPath string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		t.Fatalf("failed to find app_settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("workbook_path", workbookPath)
	record.Set("records_sheet", "Form Responses 1")
	record.Set("retention_keep", 40)
	record.Set("template_vendor", "Template")
	record.Set("template_customer", "Template")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save app_settings record: %v", err)
	}
	return record
}

// CreateTestPriceOverride inserts one price_overrides record.
func CreateTestPriceOverride(t *testing.T, app *pocketbase.PocketBase, profile, item string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("price_overrides")
	if err != nil {
		t.Fatalf("failed to find price_overrides collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("profile", profile)
	record.Set("item", item)
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save price override: %v", err)
	}
	return record
}

// CreateTestExecution inserts an executions record without photos.
func CreateTestExecution(t *testing.T, app *pocketbase.PocketBase, customerID, customerName, executed string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("executions")
	if err != nil {
		t.Fatalf("failed to find executions collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer_id", customerID)
	record.Set("customer_name", customerName)
	record.Set("executed", executed)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test execution: %v", err)
	}
	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
