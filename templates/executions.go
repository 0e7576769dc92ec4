package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type ExecutionRow struct {
	ID           string
	CustomerID   string
	CustomerName string
	Executed     string
	Notes        string
	PhotoURLs    []string
}

type ExecutionListData struct {
	Items      []ExecutionRow
	TotalCount int
}

type ExecutionFormData struct {
	CustomerID   string
	CustomerName string
}

// ExecutionListPage renders the full execution log page.
func ExecutionListPage(data ExecutionListData) templ.Component {
	return Layout("Eksekusi", "/executions", ExecutionListContent(data))
}

func ExecutionListContent(data ExecutionListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="page" id="execution-list">
<h1>Eksekusi Geser Meter</h1>
<a class="btn btn-primary" href="/executions/new" hx-get="/executions/new" hx-target="#main-content" hx-push-url="true">Catat Eksekusi</a>
<p class="muted">%d eksekusi tercatat</p>
<table class="table">
<thead><tr><th>ID Pelanggan</th><th>Nama</th><th>Tanggal Eksekusi</th><th>Catatan</th><th>Foto</th></tr></thead>
<tbody>`, data.TotalCount); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			if _, err := io.WriteString(w, `<tr><td colspan="5" class="empty">Belum ada eksekusi.</td></tr>`); err != nil {
				return err
			}
		}
		for _, ex := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
				esc(ex.CustomerID), esc(ex.CustomerName), esc(ex.Executed), esc(ex.Notes)); err != nil {
				return err
			}
			for _, u := range ex.PhotoURLs {
				if _, err := fmt.Fprintf(w, `<a href="%s" target="_blank"><img class="thumb" src="%s" alt="foto eksekusi"></a>`,
					esc(u), esc(u)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</td></tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}

// ExecutionFormPage renders the full execution recording page.
func ExecutionFormPage(data ExecutionFormData) templ.Component {
	return Layout("Catat Eksekusi", "/executions", ExecutionFormContent(data))
}

func ExecutionFormContent(data ExecutionFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="page" id="execution-form">
<h1>Catat Eksekusi</h1>
<form method="post" action="/executions" enctype="multipart/form-data">
<label>ID Pelanggan<input type="text" name="customer_id" value="%s" required></label>
<label>Nama Pelanggan<input type="text" name="customer_name" value="%s"></label>
<label>Tanggal Eksekusi<input type="date" name="executed" required></label>
<label>Catatan<textarea name="notes"></textarea></label>
<label>Foto Lapangan<input type="file" name="photos" accept="image/jpeg,image/png" multiple></label>
<button type="submit" class="btn btn-primary">Simpan</button>
</form>
</section>`, esc(data.CustomerID), esc(data.CustomerName))
		return err
	})
}
