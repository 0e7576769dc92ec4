package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"meterrelocation/services"
	"meterrelocation/spreadsheet"
)

// sanitizeFilename replaces characters that break Content-Disposition
// filenames or filesystem paths.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// loadRecapExportData reads an exported recap sheet back out of the workbook
// and assembles the standalone document data.
func loadRecapExportData(e *core.RequestEvent) (services.RecapExportData, error) {
	settings := GetSettings(e.Request)
	if settings.WorkbookPath == "" {
		return services.RecapExportData{}, errors.New("workbook not configured")
	}

	title := e.Request.PathValue("title")
	if title == "" {
		return services.RecapExportData{}, errors.New("missing recap title")
	}

	ts, audience, ok := services.ParseRecapTitle(title)
	if !ok {
		return services.RecapExportData{}, fmt.Errorf("not a recap sheet title: %q", title)
	}

	cat := catalogFor(settings)

	var identity services.IdentityFields
	var recap services.Recap
	err := withWorkbook(settings, func(wb *spreadsheet.File) error {
		var err error
		identity, recap, err = services.ReadRecapSheet(wb, cat, title)
		return err
	})
	if err != nil {
		return services.RecapExportData{}, err
	}

	return services.BuildRecapExportData(
		title,
		audience,
		ts.Format("02/01/2006 15:04"),
		identity,
		recap,
	), nil
}

// HandleRecapDownloadExcel serves a recap sheet as a standalone .xlsx file.
func HandleRecapDownloadExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := loadRecapExportData(e)
		if err != nil {
			log.Printf("recap_download: %v", err)
			return e.String(http.StatusNotFound, "Rekap tidak ditemukan")
		}

		xlsxBytes, err := services.GenerateRecapExcel(data)
		if err != nil {
			log.Printf("recap_download: failed to generate excel: %v", err)
			return e.String(http.StatusInternalServerError, "File Excel tidak dapat dibuat")
		}

		filename := sanitizeFilename(data.Title) + ".xlsx"
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleRecapDownloadPDF serves a recap sheet as a printable PDF.
func HandleRecapDownloadPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := loadRecapExportData(e)
		if err != nil {
			log.Printf("recap_download: %v", err)
			return e.String(http.StatusNotFound, "Rekap tidak ditemukan")
		}

		pdfBytes, err := services.GenerateRecapPDF(data)
		if err != nil {
			log.Printf("recap_download: failed to generate pdf: %v", err)
			return e.String(http.StatusInternalServerError, "File PDF tidak dapat dibuat")
		}

		filename := sanitizeFilename(data.Title) + ".pdf"
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
