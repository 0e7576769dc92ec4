package services

import "github.com/shopspring/decimal"

// RecapExportData holds everything the downloadable recap documents (xlsx,
// PDF) need, independent of the shared workbook.
type RecapExportData struct {
	Title       string // document title, e.g. "RKP Sofia 20250923_0135P"
	Audience    string // "Vendor" or "Pelanggan"
	GeneratedAt string // formatted WIB timestamp
	Identity    IdentityFields
	Lines       []RecapLine
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// BuildRecapExportData assembles export data from a computed recap.
func BuildRecapExportData(title, audience, generatedAt string, identity IdentityFields, recap Recap) RecapExportData {
	return RecapExportData{
		Title:       title,
		Audience:    audience,
		GeneratedAt: generatedAt,
		Identity:    identity,
		Lines:       recap.Lines,
		Subtotal:    recap.Subtotal,
		Tax:         recap.Tax,
		Total:       recap.Total,
	}
}
