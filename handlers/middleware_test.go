package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"meterrelocation/collections"
	"meterrelocation/spreadsheet"
	"meterrelocation/testhelpers"
)

func TestGetSettings_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)

	settings := GetSettings(req)
	if settings.WorkbookPath != "" {
		t.Errorf("expected zero settings without middleware, got %+v", settings)
	}
}

func TestSettingsMiddleware_InjectsSettings(t *testing.T) {
	app, _, _ := newConfiguredEnv(t)
	middleware := SettingsMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	// e.Next() on a bare event has no chained handler; the return value is
	// not meaningful here, the context mutation is.
	err := middleware(e)
	_ = err

	seen := GetSettings(e.Request)
	if seen.WorkbookPath == "" {
		t.Error("settings not injected into request context")
	}
	if seen.RecordsSheet != "Form Responses 1" {
		t.Errorf("records sheet = %q", seen.RecordsSheet)
	}
	if seen.RetentionKeep != 40 {
		t.Errorf("retention keep = %d", seen.RetentionKeep)
	}
}

func TestSettingsMiddleware_UnconfiguredAppStillProceeds(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	middleware := SettingsMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	err := middleware(e)
	_ = err
	if got := GetSettings(e.Request); got.WorkbookPath != "" {
		t.Errorf("expected zero settings, got %+v", got)
	}
}

func TestWithWorkbook_OpensAndCloses(t *testing.T) {
	wb := testhelpers.NewTestWorkbook(t)
	settings := collections.Settings{WorkbookPath: wb.Path()}

	var sheets []string
	err := withWorkbook(settings, func(wb *spreadsheet.File) error {
		sheets = wb.SheetNames()
		return nil
	})
	if err != nil {
		t.Fatalf("withWorkbook: %v", err)
	}
	if len(sheets) == 0 {
		t.Error("callback did not see the opened workbook")
	}
}

func TestWithWorkbook_MissingFile(t *testing.T) {
	settings := collections.Settings{WorkbookPath: "/nonexistent/workbook.xlsx"}

	err := withWorkbook(settings, func(wb *spreadsheet.File) error { return nil })
	if err == nil {
		t.Error("expected an error for a missing workbook file")
	}
}
