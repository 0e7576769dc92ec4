package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"meterrelocation/collections"
	"meterrelocation/spreadsheet"
)

type contextKey string

const SettingsKey contextKey = "appSettings"

// workbookMu serializes open-modify-save cycles on the shared workbook file.
// excelize holds the whole file in memory, so two concurrent exports would
// otherwise clobber each other's saves.
var workbookMu sync.Mutex

// GetSettings extracts the loaded app settings from the request context.
func GetSettings(r *http.Request) collections.Settings {
	if val, ok := r.Context().Value(SettingsKey).(collections.Settings); ok {
		return val
	}
	return collections.Settings{}
}

// SettingsMiddleware loads the app_settings record once per request and
// stores it in the request context. Handlers that need a valid configuration
// check Settings.WorkbookPath themselves; pages that only render static
// content keep working on a fresh, unconfigured instance.
func SettingsMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings, err := collections.LoadSettings(app)
		if err != nil {
			log.Printf("middleware: settings not loaded: %v", err)
		}
		ctx := context.WithValue(e.Request.Context(), SettingsKey, settings)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// withWorkbook opens the configured workbook, runs fn under the workbook
// mutex and closes the file afterwards. fn is responsible for calling Save
// when it changed anything.
func withWorkbook(settings collections.Settings, fn func(wb *spreadsheet.File) error) error {
	workbookMu.Lock()
	defer workbookMu.Unlock()

	wb, err := spreadsheet.Open(settings.WorkbookPath)
	if err != nil {
		return err
	}
	defer wb.Close()
	return fn(wb)
}
