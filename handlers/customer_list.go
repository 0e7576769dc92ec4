package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"meterrelocation/services"
	"meterrelocation/spreadsheet"
	"meterrelocation/templates"
)

// HandleCustomerList renders the customer directory with date and ID/name
// filtering plus the tariff distribution.
func HandleCustomerList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings := GetSettings(e.Request)
		if settings.WorkbookPath == "" {
			return ErrorToast(e, http.StatusServiceUnavailable, "Workbook belum dikonfigurasi. Atur app_settings terlebih dahulu.")
		}

		query := e.Request.URL.Query().Get("q")
		date := e.Request.URL.Query().Get("date")

		var customers []services.Customer
		err := withWorkbook(settings, func(wb *spreadsheet.File) error {
			var err error
			customers, err = services.LoadCustomers(wb, settings.RecordsSheet)
			return err
		})
		if err != nil {
			log.Printf("customer_list: could not load customers: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Data pelanggan tidak dapat dibaca.")
		}

		filtered := services.FilterCustomers(customers, date, query)

		items := make([]templates.CustomerRow, 0, len(filtered))
		for _, c := range filtered {
			submitted := "—"
			if !c.Submitted.IsZero() {
				submitted = c.Submitted.Format("02 Jan 2006 15:04")
			}
			items = append(items, templates.CustomerRow{
				ID:        c.ID,
				Name:      c.Name,
				Address:   c.Address,
				Tariff:    c.Tariff,
				Submitted: submitted,
			})
		}

		tariffs := make([]templates.TariffStat, 0)
		for _, t := range services.TariffCounts(filtered) {
			tariffs = append(tariffs, templates.TariffStat{Tariff: t.Tariff, Count: t.Count})
		}

		data := templates.CustomerListData{
			Query:        query,
			SelectedDate: date,
			Dates:        services.SubmissionDates(customers),
			Items:        items,
			TotalCount:   len(filtered),
			Tariffs:      tariffs,
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.CustomerListContent(data)
		} else {
			component = templates.CustomerListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
