// Package services holds the recap engine: catalog resolution, pricing,
// template export, retention sweeping and the customer-record helpers that
// back the dashboard pages.
package services

// Category decides which price column of the recap template an item's unit
// price is written to.
type Category string

const (
	// CategoryServiceFee marks labor/service line items.
	CategoryServiceFee Category = "service-fee"
	// CategoryRestricted marks PLN-supplied materials priced in the
	// restricted column of the template.
	CategoryRestricted Category = "restricted-material"
	// CategoryGeneral marks materials priced in the cash column.
	CategoryGeneral Category = "general-material"
)

// ItemID identifies one canonical catalog item. The zero-based values double
// as the item's row position inside the template's item block.
type ItemID int

const (
	ItemRelocationService ItemID = iota
	ItemSituationChangeService
	ItemServiceWedgeClamp
	ItemStrainhook
	ItemImundexClamp
	ItemConnPress1016
	ItemConcreteNail
	ItemPoleBracket
	ItemConnPress5070
	ItemPlasticSeal
	ItemTwistedCableCompact
	ItemInsurance
	ItemTwistedCableSpaced

	itemIDCount
)

// ItemDef declares one catalog entry. Order matters: it fixes the item's row
// inside the template's item block, which the template formulas key off.
type ItemDef struct {
	ID       ItemID
	Name     string
	Category Category
}

// CatalogItem is a resolved catalog entry.
type CatalogItem struct {
	ID       ItemID
	Name     string
	Row      int // position within the template item block, [0, len)
	Category Category
}

// DefaultItems returns the template item list in declared template order.
// Category assignment is configuration, not logic: the restricted set changed
// across template revisions, so callers may override it (see WithRestricted).
func DefaultItems() []ItemDef {
	return []ItemDef{
		{ItemRelocationService, "Jasa Kegiatan", CategoryServiceFee},
		{ItemSituationChangeService, "Jasa Kegiatan Perubahan Situasi SR", CategoryServiceFee},
		{ItemServiceWedgeClamp, "Service wedge clamp 2/4 x 6/10mm", CategoryGeneral},
		{ItemStrainhook, "Strainthook / Ekor babi", CategoryGeneral},
		{ItemImundexClamp, "Imundex Klem", CategoryGeneral},
		{ItemConnPress1016, "Conn. press AL/AL type 10-16 mm2 / 10-16 mm2 + Scoot + Cover", CategoryGeneral},
		{ItemConcreteNail, "Paku Beton", CategoryGeneral},
		{ItemPoleBracket, `Pole Bracket 3-9"`, CategoryGeneral},
		{ItemConnPress5070, "Conn. press AL/AL type 10-16 mm2 / 50-70 mm2 + Scoot + Cover", CategoryGeneral},
		{ItemPlasticSeal, "Segel Plastik", CategoryRestricted},
		{ItemTwistedCableCompact, "Twisted Cable 2x10 mm² – Al", CategoryRestricted},
		{ItemInsurance, "Asuransi", CategoryRestricted},
		{ItemTwistedCableSpaced, "Twisted Cable 2 x 10 mm² – Al", CategoryRestricted},
	}
}

// DefaultAliases maps UI spellings to their canonical catalog names. Keys and
// values are normalized at catalog construction, so entries may be written in
// whatever spelling the form or template actually uses.
func DefaultAliases() map[string]string {
	return map[string]string{
		"Jasa Kegiatan Geser APP":                          "Jasa Kegiatan",
		"Jasa Kegiatan Geser Perubahan Situasi SR":         "Jasa Kegiatan Perubahan Situasi SR",
		"Service wedge clamp 2/4 x 6/10 mm":                "Service wedge clamp 2/4 x 6/10mm",
		"Strainhook / ekor babi":                           "Strainthook / Ekor babi",
		"Imundex klem":                                     "Imundex Klem",
		"Cable support (50/80J/2009)":                      "Cable support (508/U/2009)",
		"Conn. press AL/AL 10-16 mm² + Scoot + Cover":      "Conn. press AL/AL type 10-16 mm2 / 10-16 mm2 + Scoot + Cover",
		"Conn. press AL/AL 50-70 mm² + Scoot + Cover":      "Conn. press AL/AL type 10-16 mm2 / 50-70 mm2 + Scoot + Cover",
	}
}

// Catalog resolves free-text item names to canonical catalog entries.
type Catalog struct {
	items   []CatalogItem
	byName  map[string]ItemID // normalized canonical name -> id
	byID    map[ItemID]int    // id -> index into items
	aliases map[string]string // normalized variant -> normalized canonical
}

// NewCatalog builds a catalog from an ordered item list and an alias table.
// Every canonical name aliases to itself implicitly.
func NewCatalog(defs []ItemDef, aliases map[string]string) *Catalog {
	c := &Catalog{
		items:   make([]CatalogItem, 0, len(defs)),
		byName:  make(map[string]ItemID, len(defs)),
		byID:    make(map[ItemID]int, len(defs)),
		aliases: make(map[string]string, len(aliases)),
	}
	for row, def := range defs {
		c.items = append(c.items, CatalogItem{
			ID:       def.ID,
			Name:     def.Name,
			Row:      row,
			Category: def.Category,
		})
		c.byName[Normalize(def.Name)] = def.ID
		c.byID[def.ID] = row
	}
	for variant, canonical := range aliases {
		c.aliases[Normalize(variant)] = Normalize(canonical)
	}
	return c
}

// DefaultCatalog builds the catalog from the built-in item and alias tables.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultItems(), DefaultAliases())
}

// WithRestricted returns a copy of the catalog where exactly the given item
// names (any resolvable spelling) carry CategoryRestricted. Materials outside
// the list become CategoryGeneral; service-fee items are never reclassified.
func (c *Catalog) WithRestricted(names []string) *Catalog {
	restricted := make(map[ItemID]bool, len(names))
	for _, name := range names {
		if item, ok := c.Resolve(name); ok {
			restricted[item.ID] = true
		}
	}
	out := &Catalog{
		items:   make([]CatalogItem, len(c.items)),
		byName:  c.byName,
		byID:    c.byID,
		aliases: c.aliases,
	}
	copy(out.items, c.items)
	for i := range out.items {
		if out.items[i].Category == CategoryServiceFee {
			continue
		}
		if restricted[out.items[i].ID] {
			out.items[i].Category = CategoryRestricted
		} else {
			out.items[i].Category = CategoryGeneral
		}
	}
	return out
}

// Resolve maps a raw item name to its catalog entry. A miss is a normal
// outcome (operators enter free-text rows, including divider placeholders)
// and is reported via ok=false, never as an error.
func (c *Catalog) Resolve(raw string) (CatalogItem, bool) {
	key := Normalize(raw)
	if key == "" {
		return CatalogItem{}, false
	}
	if canonical, ok := c.aliases[key]; ok {
		key = canonical
	}
	id, ok := c.byName[key]
	if !ok {
		return CatalogItem{}, false
	}
	return c.ByID(id)
}

// ByID returns the catalog entry for an ItemID.
func (c *Catalog) ByID(id ItemID) (CatalogItem, bool) {
	row, ok := c.byID[id]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[row], true
}

// Items returns all entries in template order.
func (c *Catalog) Items() []CatalogItem { return c.items }

// Len is the number of catalog entries (the template item block height).
func (c *Catalog) Len() int { return len(c.items) }
