package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Profile names a pricing audience. The vendor table carries internal cost
// prices, the customer table the customer-facing ones.
type Profile string

const (
	ProfileVendor   Profile = "vendor"
	ProfileCustomer Profile = "pelanggan"
)

// TaxRate is the VAT (PPN) rate applied once to the recap subtotal.
var TaxRate = decimal.NewFromFloat(0.11)

// PriceTable maps catalog items to unit prices in whole rupiah (overrides may
// carry fractional values, decimal keeps them exact).
type PriceTable map[ItemID]decimal.Decimal

// DefaultVendorPrices returns the built-in vendor (internal cost) table.
func DefaultVendorPrices() PriceTable {
	return PriceTable{
		ItemRelocationService:      decimal.NewFromInt(96000),
		ItemSituationChangeService: decimal.NewFromInt(78930),
		ItemServiceWedgeClamp:      decimal.NewFromInt(3986),
		ItemStrainhook:             decimal.NewFromInt(8000),
		ItemImundexClamp:           decimal.NewFromInt(454),
		ItemConnPress1016:          decimal.NewFromInt(11987),
		ItemConcreteNail:           decimal.NewFromInt(74),
		ItemPoleBracket:            decimal.NewFromInt(36787),
		ItemConnPress5070:          decimal.NewFromInt(29371),
		ItemPlasticSeal:            decimal.Zero,
		ItemTwistedCableCompact:    decimal.Zero,
		ItemInsurance:              decimal.Zero,
		ItemTwistedCableSpaced:     decimal.Zero,
	}
}

// DefaultCustomerPrices returns the built-in customer-facing table.
func DefaultCustomerPrices() PriceTable {
	return PriceTable{
		ItemRelocationService:      decimal.NewFromInt(103230),
		ItemSituationChangeService: decimal.NewFromInt(87690),
		ItemServiceWedgeClamp:      decimal.NewFromInt(4429),
		ItemStrainhook:             decimal.NewFromInt(8880),
		ItemImundexClamp:           decimal.NewFromInt(504),
		ItemConnPress1016:          decimal.NewFromInt(13319),
		ItemConcreteNail:           decimal.NewFromInt(82),
		ItemPoleBracket:            decimal.NewFromInt(40874),
		ItemConnPress5070:          decimal.NewFromInt(32634),
		ItemPlasticSeal:            decimal.NewFromInt(1947),
		ItemTwistedCableCompact:    decimal.NewFromInt(4816),
		ItemInsurance:              decimal.Zero,
		ItemTwistedCableSpaced:     decimal.Zero,
	}
}

// DefaultPrices returns the built-in table for a profile. Unknown profiles
// fall back to the vendor table.
func DefaultPrices(p Profile) PriceTable {
	if p == ProfileCustomer {
		return DefaultCustomerPrices()
	}
	return DefaultVendorPrices()
}

// MergeNamed lays a name-keyed override map (the external configuration
// shape) over the table. Override wins on collision; names that resolve to no
// catalog item are ignored.
func (t PriceTable) MergeNamed(cat *Catalog, overrides map[string]decimal.Decimal) PriceTable {
	out := make(PriceTable, len(t))
	for id, price := range t {
		out[id] = price
	}
	for name, price := range overrides {
		if item, ok := cat.Resolve(name); ok {
			out[item.ID] = price
		}
	}
	return out
}

// Price returns an item's unit price under the table, zero when absent.
func (t PriceTable) Price(item CatalogItem) decimal.Decimal {
	if p, ok := t[item.ID]; ok {
		return p
	}
	return decimal.Zero
}

// LineItem is one user-entered material row. UnitPrice is the operator's
// fallback price, used only when the profile table has no positive price.
type LineItem struct {
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
}

// RecapLine is one resolved, priced row of a recap.
type RecapLine struct {
	Item      CatalogItem
	Qty       int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Recap is the computed pricing document for one job. Tax is rounded half-up
// to whole rupiah at the final step only; line totals stay unrounded.
type Recap struct {
	Lines    []RecapLine
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ParseQty coerces a quantity string to a non-negative integer. Malformed or
// negative input degrades to 0, it never fails.
func ParseQty(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Tolerate "3.0"-style form input.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

// ComputeRecap prices the given lines against a table. Rows with empty or
// unrecognized names contribute nothing; malformed rows degrade to zero
// contribution. It never fails.
func ComputeRecap(cat *Catalog, lines []LineItem, table PriceTable) Recap {
	recap := Recap{Subtotal: decimal.Zero}

	for _, line := range lines {
		item, ok := cat.Resolve(line.Name)
		if !ok {
			continue
		}

		qty := line.Qty
		if qty < 0 {
			qty = 0
		}

		price := table.Price(item)
		if !price.IsPositive() && line.UnitPrice.IsPositive() {
			price = line.UnitPrice
		}

		total := price.Mul(decimal.NewFromInt(int64(qty)))
		recap.Lines = append(recap.Lines, RecapLine{
			Item:      item,
			Qty:       qty,
			UnitPrice: price,
			Total:     total,
		})
		recap.Subtotal = recap.Subtotal.Add(total)
	}

	// Round half-up once, at the end. decimal.Round rounds half away from
	// zero, which matches half-up for the non-negative amounts here.
	recap.Tax = recap.Subtotal.Mul(TaxRate).Round(0)
	recap.Total = recap.Subtotal.Add(recap.Tax)
	return recap
}
