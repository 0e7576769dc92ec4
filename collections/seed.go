package collections

import (
	"fmt"
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Seed inserts the default app_settings record when none exists yet, so a
// fresh instance starts with a working configuration. The workbook path and
// records sheet can be pre-set via WORKBOOK_PATH / RECORDS_SHEET before the
// first start; everything is editable in the admin UI afterwards.
func Seed(app *pocketbase.PocketBase) error {
	settingsCol, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		return fmt.Errorf("seed: could not find app_settings collection: %w", err)
	}
	existing, err := app.FindAllRecords(settingsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query app_settings: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: app_settings is empty, inserting defaults")

	workbookPath := os.Getenv("WORKBOOK_PATH")
	if workbookPath == "" {
		workbookPath = "data/geser_meter.xlsx"
	}
	recordsSheet := os.Getenv("RECORDS_SHEET")
	if recordsSheet == "" {
		recordsSheet = "Form Responses 1"
	}

	rec := core.NewRecord(settingsCol)
	rec.Set("workbook_path", workbookPath)
	rec.Set("records_sheet", recordsSheet)
	rec.Set("retention_keep", 40)
	rec.Set("template_vendor", "Template")
	rec.Set("template_customer", "Template")
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("seed: could not save app_settings: %w", err)
	}

	return nil
}
