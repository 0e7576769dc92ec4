package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"meterrelocation/collections"
	"meterrelocation/spreadsheet"
	"meterrelocation/testhelpers"
)

func TestHandleExecutionList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleExecutionList(app)

	req := httptest.NewRequest(http.MethodGet, "/executions", nil)
	req = withSettings(req, collections.Settings{})
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Belum ada eksekusi")
}

func TestHandleExecutionList_WithRecords(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestExecution(t, app, "4111", "Sofia", "2025-09-10 00:00:00.000Z")
	testhelpers.CreateTestExecution(t, app, "5222", "Budi", "2025-09-12 00:00:00.000Z")

	handler := HandleExecutionList(app)

	req := httptest.NewRequest(http.MethodGet, "/executions", nil)
	req = withSettings(req, collections.Settings{})
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Sofia", "Budi", "4111", "5222")
}

func TestHandleExecutionForm_Prefill(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleExecutionForm(app)

	req := httptest.NewRequest(http.MethodGet, "/executions/new?customer_id=4111&customer_name=Sofia", nil)
	req = withSettings(req, collections.Settings{})
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `value="4111"`, `value="Sofia"`)
}

func newExecutionRequest(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/executions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleExecutionSave_StoresRecordAndStampsSheet(t *testing.T) {
	app, wb, settings := newConfiguredEnv(t)
	testhelpers.AddCustomerRow(t, wb, "01/09/2025 08:00:00", "4111", "Sofia", "Jl. Veteran 10", "R1/900 VA")

	handler := HandleExecutionSave(app)

	form := url.Values{}
	form.Set("customer_id", "4111")
	form.Set("customer_name", "Sofia")
	form.Set("executed", "2025-09-10")
	form.Set("notes", "meter dipindah ke teras")

	req := newExecutionRequest(t, form)
	req = withSettings(req, settings)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	// Record persisted.
	records, err := app.FindRecordsByFilter("executions", "customer_id = '4111'", "", 0, 0)
	if err != nil || len(records) != 1 {
		t.Fatalf("execution record not saved: %v (%d records)", err, len(records))
	}
	if got := records[0].GetString("notes"); got != "meter dipindah ke teras" {
		t.Errorf("notes = %q", got)
	}

	// Execution date stamped on the record sheet.
	reopened, err := spreadsheet.Open(wb.Path())
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer reopened.Close()
	rows, err := reopened.Rows("Form Responses 1")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) < 2 || len(rows[1]) < 8 || rows[1][7] != "10/09/2025" {
		t.Errorf("execution date not stamped: %v", rows)
	}
}

func TestHandleExecutionSave_RequiresFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleExecutionSave(app)

	form := url.Values{}
	form.Set("customer_name", "Sofia")

	req := newExecutionRequest(t, form)
	req = withSettings(req, collections.Settings{})
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
