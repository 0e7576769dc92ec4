package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

type CustomerRow struct {
	ID        string
	Name      string
	Address   string
	Tariff    string
	Submitted string
}

type TariffStat struct {
	Tariff string
	Count  int
}

type CustomerListData struct {
	Query        string
	SelectedDate string
	Dates        []string
	Items        []CustomerRow
	TotalCount   int
	Tariffs      []TariffStat
}

// CustomerListPage renders the full customer directory page.
func CustomerListPage(data CustomerListData) templ.Component {
	return Layout("Pelanggan", "/customers", CustomerListContent(data))
}

// CustomerListContent renders the directory content: filter bar, tariff
// distribution and the customer table. Served standalone for HTMX swaps.
func CustomerListContent(data CustomerListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="page" id="customer-list">
<h1>Data Pelanggan</h1>
<form class="filter-bar" hx-get="/customers" hx-target="#customer-list" hx-select="#customer-list" hx-push-url="true">
<input type="search" name="q" value="%s" placeholder="Cari ID atau nama pelanggan">
<select name="date">
<option value="">Semua tanggal</option>`, esc(data.Query)); err != nil {
			return err
		}
		for _, d := range data.Dates {
			sel := ""
			if d == data.SelectedDate {
				sel = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(d), sel, esc(d)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</select>
<button type="submit" class="btn btn-primary">Filter</button>
</form>
<p class="muted">%d pelanggan</p>`, data.TotalCount); err != nil {
			return err
		}

		if len(data.Tariffs) > 0 {
			if _, err := io.WriteString(w, `<div class="tariff-stats"><h2>Distribusi Tarif / Daya</h2><ul>`); err != nil {
				return err
			}
			for _, t := range data.Tariffs {
				if _, err := fmt.Fprintf(w, `<li><span class="tariff-name">%s</span><span class="tariff-count">%d</span></li>`,
					esc(t.Tariff), t.Count); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul></div>`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<table class="table">
<thead><tr><th>ID Pelanggan</th><th>Nama</th><th>Alamat kWH Meter</th><th>Tarif / Daya</th><th>Tanggal</th><th></th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			if _, err := io.WriteString(w, `<tr><td colspan="6" class="empty">Tidak ada pelanggan yang cocok.</td></tr>`); err != nil {
				return err
			}
		}
		for _, c := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>
<td><a class="btn btn-sm" href="/process?customer_id=%s" hx-get="/process?customer_id=%s" hx-target="#main-content" hx-push-url="true">Proses</a></td>
</tr>`, esc(c.ID), esc(c.Name), esc(c.Address), esc(c.Tariff), esc(c.Submitted),
				url.QueryEscape(c.ID), url.QueryEscape(c.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}
