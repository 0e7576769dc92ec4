package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"meterrelocation/collections"
	"meterrelocation/spreadsheet"
	"meterrelocation/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withSettings injects app settings into the request context the way
// SettingsMiddleware would.
func withSettings(req *http.Request, settings collections.Settings) *http.Request {
	ctx := context.WithValue(req.Context(), SettingsKey, settings)
	return req.WithContext(ctx)
}

// newConfiguredEnv builds an app plus a fixture workbook and returns the
// matching settings value for request injection.
func newConfiguredEnv(t *testing.T) (*pocketbase.PocketBase, *spreadsheet.File, collections.Settings) {
	t.Helper()

	app := testhelpers.NewTestApp(t)
	wb := testhelpers.NewTestWorkbook(t)
	testhelpers.ConfigureApp(t, app, wb.Path())

	settings, err := collections.LoadSettings(app)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	return app, wb, settings
}
