package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"
)

// Settings is the app-wide configuration stored in the app_settings
// collection (single record).
type Settings struct {
	WorkbookPath     string
	RecordsSheet     string
	RetentionKeep    int
	TemplateVendor   string
	TemplateCustomer string
	RestrictedItems  []string
}

// LoadSettings reads the app_settings record. A missing record or a blank
// workbook path is a configuration error the caller must surface to the
// operator; there is no usable fallback.
func LoadSettings(app *pocketbase.PocketBase) (Settings, error) {
	settingsCol, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		return Settings{}, fmt.Errorf("settings: collection not found: %w", err)
	}
	records, err := app.FindAllRecords(settingsCol)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: query failed: %w", err)
	}
	if len(records) == 0 {
		return Settings{}, fmt.Errorf("settings: no app_settings record; configure the workbook path first")
	}

	rec := records[0]
	s := Settings{
		WorkbookPath:     rec.GetString("workbook_path"),
		RecordsSheet:     rec.GetString("records_sheet"),
		RetentionKeep:    rec.GetInt("retention_keep"),
		TemplateVendor:   rec.GetString("template_vendor"),
		TemplateCustomer: rec.GetString("template_customer"),
	}
	if err := rec.UnmarshalJSONField("restricted_items", &s.RestrictedItems); err != nil {
		// Optional field; an unset value comes back as an unmarshal error.
		s.RestrictedItems = nil
	}

	if s.WorkbookPath == "" {
		return Settings{}, fmt.Errorf("settings: workbook_path is not set")
	}
	if s.RecordsSheet == "" {
		return Settings{}, fmt.Errorf("settings: records_sheet is not set")
	}
	if s.RetentionKeep <= 0 {
		s.RetentionKeep = 40
	}
	if s.TemplateVendor == "" {
		s.TemplateVendor = "Template"
	}
	if s.TemplateCustomer == "" {
		s.TemplateCustomer = s.TemplateVendor
	}
	return s, nil
}

// LoadPriceOverrides collects the name-keyed price overrides for one profile,
// to be merged over the built-in price table (override wins).
func LoadPriceOverrides(app *pocketbase.PocketBase, profile string) (map[string]decimal.Decimal, error) {
	overridesCol, err := app.FindCollectionByNameOrId("price_overrides")
	if err != nil {
		return nil, fmt.Errorf("settings: price_overrides collection not found: %w", err)
	}
	records, err := app.FindRecordsByFilter(
		overridesCol,
		"profile = {:profile}",
		"", 0, 0,
		map[string]any{"profile": profile},
	)
	if err != nil {
		return nil, fmt.Errorf("settings: price_overrides query failed: %w", err)
	}

	out := make(map[string]decimal.Decimal, len(records))
	for _, rec := range records {
		item := rec.GetString("item")
		if item == "" {
			continue
		}
		out[item] = decimal.NewFromFloat(rec.GetFloat("price"))
	}
	return out, nil
}
