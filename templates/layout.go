package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc HTML-escapes a value for interpolation into markup.
func esc(s string) string {
	return templ.EscapeString(s)
}

// navLink describes one entry in the top navigation bar.
type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{"/customers", "Pelanggan"},
	{"/process", "Proses Geser"},
	{"/executions", "Eksekusi"},
}

// Layout wraps page content in the full HTML document: head with HTMX and
// styles, the navigation bar, the toast container and its event listener.
func Layout(title string, active string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="id" data-theme="corporate">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s · Dashboard Geser Meter</title>
<script src="/static/js/htmx.min.js"></script>
<link rel="stylesheet" href="/static/css/app.css">
</head>
<body>
<nav class="navbar">
<a class="navbar-brand" href="/">Dashboard Petugas Geser Meter</a>
<ul class="navbar-links">`, esc(title)); err != nil {
			return err
		}
		for _, l := range navLinks {
			cls := "nav-link"
			if l.Href == active {
				cls = "nav-link active"
			}
			if _, err := fmt.Fprintf(w, `<li><a class="%s" href="%s" hx-get="%s" hx-target="#main-content" hx-push-url="true">%s</a></li>`,
				cls, l.Href, l.Href, esc(l.Label)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul>
</nav>
<main id="main-content" class="container">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
<div id="toast-container"></div>
<script>
document.body.addEventListener("showToast", function (evt) {
  var d = evt.detail || {};
  var el = document.createElement("div");
  el.className = "toast toast-" + (d.type || "info");
  el.textContent = d.message || "";
  document.getElementById("toast-container").appendChild(el);
  setTimeout(function () { el.remove(); }, 4000);
});
(function () {
  var m = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (!m) return;
  try {
    var d = JSON.parse(decodeURIComponent(m[1]));
    document.body.dispatchEvent(new CustomEvent("showToast", { detail: d }));
  } catch (e) {}
  document.cookie = "flash_toast=; Path=/; Max-Age=0";
})();
</script>
</body>
</html>`)
		return err
	})
}

// ErrorFragment renders a small inline error box, used for HTMX partial
// responses that should show a message in place instead of a toast.
func ErrorFragment(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="alert alert-error">%s</div>`, esc(message))
		return err
	})
}
