package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the app_settings, price_overrides
// and executions collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "app_settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "workbook_path", Required: true})
		c.Fields.Add(&core.TextField{Name: "records_sheet", Required: true})
		c.Fields.Add(&core.NumberField{Name: "retention_keep", Required: false})
		c.Fields.Add(&core.TextField{Name: "template_vendor", Required: false})
		c.Fields.Add(&core.TextField{Name: "template_customer", Required: false})
		c.Fields.Add(&core.JSONField{Name: "restricted_items", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "price_overrides", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "profile",
			Required:  true,
			Values:    []string{"vendor", "pelanggan"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "item", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "executions", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "customer_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: false})
		c.Fields.Add(&core.DateField{Name: "executed", Required: true})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.FileField{
			Name:      "photos",
			MaxSelect: 10,
			MaxSize:   10 << 20,
			MimeTypes: []string{"image/jpeg", "image/png"},
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
