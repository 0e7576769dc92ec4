package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"meterrelocation/services"
	"meterrelocation/spreadsheet"
	"meterrelocation/templates"
)

// HandleExecutionList renders the execution log, newest first.
func HandleExecutionList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		executionsCol, err := app.FindCollectionByNameOrId("executions")
		if err != nil {
			log.Printf("execution_list: could not find executions collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(executionsCol, "id != ''", "-executed", 0, 0, nil)
		if err != nil {
			log.Printf("execution_list: could not query executions: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var items []templates.ExecutionRow
		for _, rec := range records {
			executed := "—"
			if dt := rec.GetDateTime("executed"); !dt.IsZero() {
				executed = dt.Time().In(services.Jakarta()).Format("02 Jan 2006")
			}

			var photoURLs []string
			for _, name := range rec.GetStringSlice("photos") {
				photoURLs = append(photoURLs,
					fmt.Sprintf("/api/files/%s/%s/%s", executionsCol.Id, rec.Id, name))
			}

			items = append(items, templates.ExecutionRow{
				ID:           rec.Id,
				CustomerID:   rec.GetString("customer_id"),
				CustomerName: rec.GetString("customer_name"),
				Executed:     executed,
				Notes:        rec.GetString("notes"),
				PhotoURLs:    photoURLs,
			})
		}

		data := templates.ExecutionListData{Items: items, TotalCount: len(records)}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ExecutionListContent(data)
		} else {
			component = templates.ExecutionListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleExecutionForm renders the execution recording form, prefilled from
// the query string when linked from a customer row.
func HandleExecutionForm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ExecutionFormData{
			CustomerID:   e.Request.URL.Query().Get("customer_id"),
			CustomerName: e.Request.URL.Query().Get("customer_name"),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ExecutionFormContent(data)
		} else {
			component = templates.ExecutionFormPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleExecutionSave stores an execution record with its field photos, then
// stamps the execution-date column on the customer's record-sheet row. A
// failed stamp does not fail the save; the record is the source of truth.
func HandleExecutionSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Plain form posts (no photos) are fine too.
		if err := e.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			log.Printf("execution_save: bad multipart form: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Form tidak valid.")
		}

		customerID := e.Request.FormValue("customer_id")
		executed := e.Request.FormValue("executed")
		if customerID == "" || executed == "" {
			return ErrorToast(e, http.StatusBadRequest, "ID pelanggan dan tanggal eksekusi wajib diisi.")
		}

		executionsCol, err := app.FindCollectionByNameOrId("executions")
		if err != nil {
			log.Printf("execution_save: could not find executions collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		rec := core.NewRecord(executionsCol)
		rec.Set("customer_id", customerID)
		rec.Set("customer_name", e.Request.FormValue("customer_name"))
		rec.Set("executed", executed)
		rec.Set("notes", e.Request.FormValue("notes"))

		if e.Request.MultipartForm != nil {
			var photos []*filesystem.File
			for _, fh := range e.Request.MultipartForm.File["photos"] {
				f, err := filesystem.NewFileFromMultipart(fh)
				if err != nil {
					log.Printf("execution_save: skipping photo %s: %v", fh.Filename, err)
					continue
				}
				photos = append(photos, f)
			}
			if len(photos) > 0 {
				rec.Set("photos", photos)
			}
		}

		if err := app.Save(rec); err != nil {
			log.Printf("execution_save: could not save execution: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Eksekusi tidak dapat disimpan.")
		}

		settings := GetSettings(e.Request)
		if settings.WorkbookPath != "" {
			if day, perr := services.ParseExecutionDate(executed); perr == nil {
				err := withWorkbook(settings, func(wb *spreadsheet.File) error {
					res := services.UpdateExecutionDate(wb, settings.RecordsSheet, customerID, day)
					if !res.OK {
						log.Printf("execution_save: execution date not stamped: %s", res.Message)
					}
					return nil
				})
				if err != nil {
					log.Printf("execution_save: workbook not updated: %v", err)
				}
			} else {
				log.Printf("execution_save: unparseable execution date %q: %v", executed, perr)
			}
		}

		SetToast(e, "success", "Eksekusi tercatat.")
		return e.Redirect(http.StatusFound, "/executions")
	}
}
