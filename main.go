package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"meterrelocation/collections"
	"meterrelocation/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed the default configuration on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Load app settings into every request context
		se.Router.BindFunc(handlers.SettingsMiddleware(app))

		// ── Customer directory ───────────────────────────────────
		se.Router.GET("/customers", handlers.HandleCustomerList(app))

		// ── Relocation processing (recap + export) ───────────────
		se.Router.GET("/process", handlers.HandleProcessForm(app))
		se.Router.POST("/process/preview", handlers.HandleRecapPreview(app))
		se.Router.POST("/process/export", handlers.HandleRecapExport(app))

		// ── Recap downloads ──────────────────────────────────────
		se.Router.GET("/recaps/{title}/xlsx", handlers.HandleRecapDownloadExcel(app))
		se.Router.GET("/recaps/{title}/pdf", handlers.HandleRecapDownloadPDF(app))

		// ── Execution log ────────────────────────────────────────
		se.Router.GET("/executions", handlers.HandleExecutionList(app))
		se.Router.GET("/executions/new", handlers.HandleExecutionForm(app))
		se.Router.POST("/executions", handlers.HandleExecutionSave(app))

		// Redirect home to the customer directory
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/customers")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
