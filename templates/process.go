package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

type IdentityFormData struct {
	Job          string
	CustomerName string
	Location     string
	Unit         string
	WorkOrder    string
	Contractor   string
}

type ProcessItemRow struct {
	Name string
	Qty  int
}

type ProcessFormData struct {
	CustomerID string
	Identity   IdentityFormData
	Items      []ProcessItemRow
}

type RecapLineView struct {
	Name      string
	Qty       int
	UnitPrice string
	Total     string
}

type RecapView struct {
	Label    string
	Lines    []RecapLineView
	Subtotal string
	Tax      string
	Total    string
}

type RecapPreviewData struct {
	Vendor   RecapView
	Customer RecapView
}

type ExportResultData struct {
	VendorTitle   string
	CustomerTitle string
	Deleted       []string
	SurveyMessage string
}

// ProcessPage renders the full relocation processing page.
func ProcessPage(data ProcessFormData) templ.Component {
	return Layout("Proses Geser", "/process", ProcessContent(data))
}

// ProcessContent renders the identity + quantity form. The form posts to the
// preview endpoint; the preview fragment carries the export button.
func ProcessContent(data ProcessFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="page" id="process">
<h1>Proses Geser Meter</h1>
<form id="process-form" hx-post="/process/preview" hx-target="#recap-preview" hx-swap="innerHTML">
<input type="hidden" name="customer_id" value="%s">
<fieldset class="identity">
<legend>Identitas Pekerjaan</legend>`, esc(data.CustomerID)); err != nil {
			return err
		}

		idFields := []struct {
			name, label, value string
		}{
			{"job", "Pekerjaan", data.Identity.Job},
			{"customer_name", "Nama", data.Identity.CustomerName},
			{"location", "Lokasi Pekerjaan", data.Identity.Location},
			{"unit", "ULP", data.Identity.Unit},
			{"work_order", "No SPK", data.Identity.WorkOrder},
			{"contractor", "Vendor Pelaksana", data.Identity.Contractor},
		}
		for _, f := range idFields {
			if _, err := fmt.Fprintf(w, `<label>%s<input type="text" name="%s" value="%s"></label>`,
				esc(f.label), f.name, esc(f.value)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</fieldset>
<fieldset class="quantities">
<legend>Volume Material &amp; Jasa</legend>
<table class="table"><thead><tr><th>Rincian</th><th>Vol</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for i, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td>%s<input type="hidden" name="item_%d_name" value="%s"></td>
<td><input type="number" name="item_%d_qty" value="%d" min="0" step="1"></td>
</tr>`, esc(item.Name), i, esc(item.Name), i, item.Qty); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>
</fieldset>
<button type="submit" class="btn btn-primary">Hitung Rekap</button>
</form>
<div id="recap-preview"></div>
</section>`)
		return err
	})
}

// RecapPreview renders the vendor and customer recap tables side by side plus
// the export button. Rendered as an HTMX fragment into #recap-preview.
func RecapPreview(data RecapPreviewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="recap-pair">`); err != nil {
			return err
		}
		for _, recap := range []RecapView{data.Vendor, data.Customer} {
			if _, err := fmt.Fprintf(w, `<div class="recap">
<h2>%s</h2>
<table class="table">
<thead><tr><th>Rincian</th><th>Vol</th><th>Harga Satuan</th><th>Jumlah</th></tr></thead>
<tbody>`, esc(recap.Label)); err != nil {
				return err
			}
			if len(recap.Lines) == 0 {
				if _, err := io.WriteString(w, `<tr><td colspan="4" class="empty">Tidak ada item dengan volume.</td></tr>`); err != nil {
					return err
				}
			}
			for _, l := range recap.Lines {
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>`,
					esc(l.Name), l.Qty, esc(l.UnitPrice), esc(l.Total)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `</tbody>
<tfoot>
<tr><td colspan="3">Subtotal</td><td>%s</td></tr>
<tr><td colspan="3">PPN (11%%)</td><td>%s</td></tr>
<tr><td colspan="3">Total Biaya</td><td>%s</td></tr>
</tfoot>
</table>
</div>`, esc(recap.Subtotal), esc(recap.Tax), esc(recap.Total)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>
<button class="btn btn-primary" hx-post="/process/export" hx-include="#process-form" hx-target="#recap-preview" hx-swap="innerHTML">Export ke Spreadsheet</button>`)
		return err
	})
}

// ExportResult renders the confirmation after a pair export, with download
// links for the standalone Excel and PDF renditions.
func ExportResult(data ExportResultData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="export-result">
<div class="alert alert-success">Rekap berhasil dibuat.</div>
<ul>
<li>Sheet vendor: <strong>%s</strong></li>
<li>Sheet pelanggan: <strong>%s</strong></li>
</ul>`, esc(data.VendorTitle), esc(data.CustomerTitle)); err != nil {
			return err
		}
		if data.SurveyMessage != "" {
			if _, err := fmt.Fprintf(w, `<p class="muted">%s</p>`, esc(data.SurveyMessage)); err != nil {
				return err
			}
		}
		if len(data.Deleted) > 0 {
			if _, err := fmt.Fprintf(w, `<p class="muted">%d rekap lama dihapus.</p>`, len(data.Deleted)); err != nil {
				return err
			}
		}
		for _, d := range []struct {
			title, label, kind string
		}{
			{data.VendorTitle, "Unduh Excel Vendor", "xlsx"},
			{data.VendorTitle, "Unduh PDF Vendor", "pdf"},
			{data.CustomerTitle, "Unduh Excel Pelanggan", "xlsx"},
			{data.CustomerTitle, "Unduh PDF Pelanggan", "pdf"},
		} {
			if _, err := fmt.Fprintf(w, `<a class="btn btn-sm" href="/recaps/%s/%s" target="_blank">%s</a> `,
				url.PathEscape(d.title), d.kind, esc(d.label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
