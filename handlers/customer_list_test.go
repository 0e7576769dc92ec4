package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meterrelocation/collections"
	"meterrelocation/testhelpers"
)

func TestHandleCustomerList_Unconfigured(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCustomerList(app)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req = withSettings(req, collections.Settings{})
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 for unconfigured workbook, got %d", rec.Code)
	}
}

func TestHandleCustomerList_Empty(t *testing.T) {
	app, _, settings := newConfiguredEnv(t)
	handler := HandleCustomerList(app)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req = withSettings(req, settings)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Data Pelanggan")
}

func TestHandleCustomerList_WithCustomers(t *testing.T) {
	app, wb, settings := newConfiguredEnv(t)
	testhelpers.AddCustomerRow(t, wb, "01/09/2025 08:00:00", "4111", "Sofia", "Jl. Veteran 10", "R1/900 VA")
	testhelpers.AddCustomerRow(t, wb, "02/09/2025 09:00:00", "5222", "Budi Santoso", "Jl. Bunga 2", "R1/1300 VA")

	handler := HandleCustomerList(app)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req = withSettings(req, settings)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Sofia", "Budi Santoso", "R1/900 VA", "R1/1300 VA")
}

func TestHandleCustomerList_QueryFilter(t *testing.T) {
	app, wb, settings := newConfiguredEnv(t)
	testhelpers.AddCustomerRow(t, wb, "01/09/2025 08:00:00", "4111", "Sofia", "Jl. Veteran 10", "R1/900 VA")
	testhelpers.AddCustomerRow(t, wb, "02/09/2025 09:00:00", "5222", "Budi Santoso", "Jl. Bunga 2", "R1/1300 VA")

	handler := HandleCustomerList(app)

	req := httptest.NewRequest(http.MethodGet, "/customers?q=sofia", nil)
	req = withSettings(req, settings)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Sofia")
	if strings.Contains(body, "Budi Santoso") {
		t.Errorf("filtered-out customer should not be rendered")
	}
}

func TestHandleCustomerList_HTMXPartial(t *testing.T) {
	app, wb, settings := newConfiguredEnv(t)
	testhelpers.AddCustomerRow(t, wb, "01/09/2025 08:00:00", "4111", "Sofia", "Jl. Veteran 10", "R1/900 VA")

	handler := HandleCustomerList(app)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req = withSettings(req, settings)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Sofia")
	if strings.Contains(body, "<html") {
		t.Errorf("HTMX partial should not include the full document shell")
	}
}
