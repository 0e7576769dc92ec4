package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"meterrelocation/collections"
	"meterrelocation/services"
	"meterrelocation/spreadsheet"
	"meterrelocation/templates"
)

// catalogFor builds the item catalog, applying the configured restricted-item
// override when one is set.
func catalogFor(settings collections.Settings) *services.Catalog {
	cat := services.DefaultCatalog()
	if len(settings.RestrictedItems) > 0 {
		cat = cat.WithRestricted(settings.RestrictedItems)
	}
	return cat
}

// priceTables returns the vendor and customer price tables with the stored
// overrides merged in. Override load failures are logged and the built-in
// tables used as-is.
func priceTables(app *pocketbase.PocketBase, cat *services.Catalog) (vendor, customer services.PriceTable) {
	vendor = services.DefaultVendorPrices()
	customer = services.DefaultCustomerPrices()

	if ov, err := collections.LoadPriceOverrides(app, string(services.ProfileVendor)); err != nil {
		log.Printf("process: vendor price overrides not loaded: %v", err)
	} else if len(ov) > 0 {
		vendor = vendor.MergeNamed(cat, ov)
	}
	if ov, err := collections.LoadPriceOverrides(app, string(services.ProfileCustomer)); err != nil {
		log.Printf("process: customer price overrides not loaded: %v", err)
	} else if len(ov) > 0 {
		customer = customer.MergeNamed(cat, ov)
	}
	return vendor, customer
}

// parseProcessForm reads the identity fields and the indexed item rows
// (item_<i>_name / item_<i>_qty) out of a submitted process form.
func parseProcessForm(e *core.RequestEvent, itemCount int) (services.IdentityFields, []services.LineItem) {
	identity := services.IdentityFields{
		Job:          e.Request.FormValue("job"),
		CustomerName: e.Request.FormValue("customer_name"),
		Location:     e.Request.FormValue("location"),
		Unit:         e.Request.FormValue("unit"),
		WorkOrder:    e.Request.FormValue("work_order"),
		Contractor:   e.Request.FormValue("contractor"),
	}

	var lines []services.LineItem
	for i := 0; i < itemCount; i++ {
		name := e.Request.FormValue(fmt.Sprintf("item_%d_name", i))
		if name == "" {
			continue
		}
		lines = append(lines, services.LineItem{
			Name: name,
			Qty:  services.ParseQty(e.Request.FormValue(fmt.Sprintf("item_%d_qty", i))),
		})
	}
	return identity, lines
}

// recapView converts a computed recap into its template shape, keeping only
// rows with volume.
func recapView(label string, recap services.Recap) templates.RecapView {
	view := templates.RecapView{
		Label:    label,
		Subtotal: services.FormatIDR(recap.Subtotal),
		Tax:      services.FormatIDR(recap.Tax),
		Total:    services.FormatIDR(recap.Total),
	}
	for _, l := range recap.Lines {
		if l.Qty == 0 {
			continue
		}
		view.Lines = append(view.Lines, templates.RecapLineView{
			Name:      l.Item.Name,
			Qty:       l.Qty,
			UnitPrice: services.FormatIDR(l.UnitPrice),
			Total:     services.FormatIDR(l.Total),
		})
	}
	return view
}

// HandleProcessForm renders the relocation processing form, prefilled from
// the customer record when a customer_id is given.
func HandleProcessForm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings := GetSettings(e.Request)
		cat := catalogFor(settings)

		data := templates.ProcessFormData{
			CustomerID: e.Request.URL.Query().Get("customer_id"),
		}
		for _, item := range cat.Items() {
			data.Items = append(data.Items, templates.ProcessItemRow{Name: item.Name})
		}
		data.Identity.Job = "Geser APP"

		if data.CustomerID != "" && settings.WorkbookPath != "" {
			err := withWorkbook(settings, func(wb *spreadsheet.File) error {
				customers, err := services.LoadCustomers(wb, settings.RecordsSheet)
				if err != nil {
					return err
				}
				if c, ok := services.CustomerByID(customers, data.CustomerID); ok {
					data.Identity.CustomerName = c.Name
					data.Identity.Location = c.Address
				}
				return nil
			})
			if err != nil {
				log.Printf("process: could not prefill customer %s: %v", data.CustomerID, err)
			}
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProcessContent(data)
		} else {
			component = templates.ProcessPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleRecapPreview computes the vendor and customer recaps from the posted
// volumes and renders the preview fragment.
func HandleRecapPreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings := GetSettings(e.Request)
		cat := catalogFor(settings)
		vendorTable, customerTable := priceTables(app, cat)

		_, lines := parseProcessForm(e, cat.Len())

		preview := templates.RecapPreviewData{
			Vendor:   recapView("Rekap Vendor", services.ComputeRecap(cat, lines, vendorTable)),
			Customer: recapView("Rekap Pelanggan", services.ComputeRecap(cat, lines, customerTable)),
		}
		return templates.RecapPreview(preview).Render(e.Request.Context(), e.Response)
	}
}

// HandleRecapExport runs the paired export into the shared workbook: both
// recap sheets, the retention sweep and the survey-date stamp.
func HandleRecapExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings := GetSettings(e.Request)
		if settings.WorkbookPath == "" {
			return ErrorToast(e, http.StatusServiceUnavailable, "Workbook belum dikonfigurasi. Atur app_settings terlebih dahulu.")
		}

		cat := catalogFor(settings)
		vendorTable, customerTable := priceTables(app, cat)

		identity, lines := parseProcessForm(e, cat.Len())
		customerName := identity.CustomerName
		if customerName == "" {
			return ErrorToast(e, http.StatusBadRequest, "Nama pelanggan wajib diisi sebelum export.")
		}

		vendorTitle, customerTitle := services.RecapTitles(customerName, services.NowJakarta())

		req := services.PairExportRequest{
			VendorTitle:      vendorTitle,
			CustomerTitle:    customerTitle,
			TemplateVendor:   settings.TemplateVendor,
			TemplateCustomer: settings.TemplateCustomer,
			Identity:         identity,
			Lines:            lines,
			CustomerID:       e.Request.FormValue("customer_id"),
			RecordsSheet:     settings.RecordsSheet,
			Keep:             settings.RetentionKeep,
		}

		var result services.PairResult
		err := withWorkbook(settings, func(wb *spreadsheet.File) error {
			var err error
			result, err = services.ExportPair(wb, cat, vendorTable, customerTable, req)
			return err
		})
		if err != nil {
			log.Printf("process: pair export failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Export gagal: "+err.Error())
		}

		surveyMsg := ""
		if result.Survey.OK {
			surveyMsg = "Tanggal survey pelanggan diperbarui."
		} else if result.Survey.Message != "" {
			surveyMsg = "Tanggal survey tidak diperbarui: " + result.Survey.Message
		}

		SetToast(e, "success", "Rekap vendor dan pelanggan berhasil dibuat.")
		data := templates.ExportResultData{
			VendorTitle:   result.Vendor.SheetTitle,
			CustomerTitle: result.Customer.SheetTitle,
			Deleted:       result.Deleted,
			SurveyMessage: surveyMsg,
		}
		return templates.ExportResult(data).Render(e.Request.Context(), e.Response)
	}
}
