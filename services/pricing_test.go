package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseQty(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{"empty", "", 0},
		{"whitespace", "  ", 0},
		{"plain integer", "7", 7},
		{"padded integer", " 12 ", 12},
		{"float form input", "3.0", 3},
		{"float truncates", "2.9", 2},
		{"negative clamps to zero", "-4", 0},
		{"garbage", "abc", 0},
		{"mixed garbage", "3x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQty(tt.input); got != tt.expect {
				t.Errorf("ParseQty(%q) = %d, want %d", tt.input, got, tt.expect)
			}
		})
	}
}

func TestComputeRecap_CustomerProfile(t *testing.T) {
	cat := DefaultCatalog()
	lines := []LineItem{
		{Name: "Jasa Kegiatan Geser APP", Qty: 1},
		{Name: "Paku Beton", Qty: 10},
	}

	recap := ComputeRecap(cat, lines, DefaultCustomerPrices())

	if len(recap.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(recap.Lines))
	}
	if want := decimal.NewFromInt(104050); !recap.Subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s", recap.Subtotal, want)
	}
	if want := decimal.NewFromInt(11446); !recap.Tax.Equal(want) {
		t.Errorf("tax = %s, want %s", recap.Tax, want)
	}
	if want := decimal.NewFromInt(115496); !recap.Total.Equal(want) {
		t.Errorf("total = %s, want %s", recap.Total, want)
	}
}

func TestComputeRecap_VendorProfile(t *testing.T) {
	cat := DefaultCatalog()
	lines := []LineItem{
		{Name: "Jasa Kegiatan Geser APP", Qty: 1},
		{Name: "Paku Beton", Qty: 10},
	}

	recap := ComputeRecap(cat, lines, DefaultVendorPrices())

	if want := decimal.NewFromInt(96740); !recap.Subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s", recap.Subtotal, want)
	}
	if want := decimal.NewFromInt(10641); !recap.Tax.Equal(want) {
		t.Errorf("tax = %s, want %s", recap.Tax, want)
	}
	if want := decimal.NewFromInt(107381); !recap.Total.Equal(want) {
		t.Errorf("total = %s, want %s", recap.Total, want)
	}
}

func TestComputeRecap_SkipsUnresolvedAndEmptyRows(t *testing.T) {
	cat := DefaultCatalog()
	lines := []LineItem{
		{Name: "", Qty: 5},
		{Name: "--- pembatas ---", Qty: 3},
		{Name: "Paku Beton", Qty: 2},
	}

	recap := ComputeRecap(cat, lines, DefaultCustomerPrices())

	if len(recap.Lines) != 1 {
		t.Fatalf("expected 1 priced line, got %d", len(recap.Lines))
	}
	if want := decimal.NewFromInt(164); !recap.Subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s", recap.Subtotal, want)
	}
}

func TestComputeRecap_UserPriceFallback(t *testing.T) {
	cat := DefaultCatalog()

	// Asuransi has no table price in either profile; the operator-entered
	// unit price fills in.
	lines := []LineItem{
		{Name: "Asuransi", Qty: 1, UnitPrice: decimal.NewFromInt(15000)},
	}
	recap := ComputeRecap(cat, lines, DefaultCustomerPrices())

	if len(recap.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(recap.Lines))
	}
	if want := decimal.NewFromInt(15000); !recap.Lines[0].UnitPrice.Equal(want) {
		t.Errorf("unit price = %s, want %s", recap.Lines[0].UnitPrice, want)
	}

	// A positive table price wins over the operator price.
	lines = []LineItem{
		{Name: "Paku Beton", Qty: 1, UnitPrice: decimal.NewFromInt(999)},
	}
	recap = ComputeRecap(cat, lines, DefaultCustomerPrices())
	if want := decimal.NewFromInt(82); !recap.Lines[0].UnitPrice.Equal(want) {
		t.Errorf("unit price = %s, want %s", recap.Lines[0].UnitPrice, want)
	}
}

func TestComputeRecap_ZeroQuantityContributesNothing(t *testing.T) {
	cat := DefaultCatalog()
	lines := []LineItem{
		{Name: "Jasa Kegiatan", Qty: 0},
	}
	recap := ComputeRecap(cat, lines, DefaultCustomerPrices())

	if !recap.Subtotal.IsZero() || !recap.Tax.IsZero() || !recap.Total.IsZero() {
		t.Errorf("zero-quantity recap not zero: subtotal=%s tax=%s total=%s",
			recap.Subtotal, recap.Tax, recap.Total)
	}
}

func TestComputeRecap_OnlyUnresolvableLinesAreInert(t *testing.T) {
	cat := DefaultCatalog()
	lines := []LineItem{
		{Name: "Barang Misterius", Qty: 4, UnitPrice: decimal.NewFromInt(500)},
		{Name: "--- pembatas ---", Qty: 2},
		{Name: "", Qty: 9},
	}

	recap := ComputeRecap(cat, lines, DefaultCustomerPrices())

	if len(recap.Lines) != 0 {
		t.Fatalf("expected no priced lines, got %d", len(recap.Lines))
	}
	if !recap.Subtotal.IsZero() || !recap.Tax.IsZero() || !recap.Total.IsZero() {
		t.Errorf("unresolvable-only recap not zero: subtotal=%s tax=%s total=%s",
			recap.Subtotal, recap.Tax, recap.Total)
	}
}

func TestComputeRecap_SubtotalAdditivity(t *testing.T) {
	cat := DefaultCatalog()
	table := DefaultCustomerPrices()

	first := []LineItem{
		{Name: "Jasa Kegiatan Geser APP", Qty: 1},
		{Name: "Paku Beton", Qty: 10},
	}
	second := []LineItem{
		{Name: "Segel Plastik", Qty: 2},
		{Name: "Imundex Klem", Qty: 3},
	}

	combined := ComputeRecap(cat, append(append([]LineItem{}, first...), second...), table)
	a := ComputeRecap(cat, first, table)
	b := ComputeRecap(cat, second, table)

	if want := a.Subtotal.Add(b.Subtotal); !combined.Subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s (= %s + %s)",
			combined.Subtotal, want, a.Subtotal, b.Subtotal)
	}
	if len(combined.Lines) != len(a.Lines)+len(b.Lines) {
		t.Errorf("combined lines = %d, want %d", len(combined.Lines), len(a.Lines)+len(b.Lines))
	}
	// Tax and total derive from the combined subtotal, not from summing the
	// separately rounded halves.
	if !combined.Total.Equal(combined.Subtotal.Add(combined.Tax)) {
		t.Errorf("total = %s, want subtotal + tax = %s",
			combined.Total, combined.Subtotal.Add(combined.Tax))
	}
}

func TestPriceTable_MergeNamed(t *testing.T) {
	cat := DefaultCatalog()
	base := DefaultCustomerPrices()

	merged := base.MergeNamed(cat, map[string]decimal.Decimal{
		"Paku Beton":         decimal.NewFromInt(100),
		"Nama Tidak Dikenal": decimal.NewFromInt(555),
	})

	item, _ := cat.ByID(ItemConcreteNail)
	if want := decimal.NewFromInt(100); !merged.Price(item).Equal(want) {
		t.Errorf("override not applied: price = %s, want %s", merged.Price(item), want)
	}

	// The base table is untouched.
	if want := decimal.NewFromInt(82); !base.Price(item).Equal(want) {
		t.Errorf("base table mutated: price = %s, want %s", base.Price(item), want)
	}

	// Other entries carry over.
	svc, _ := cat.ByID(ItemRelocationService)
	if want := decimal.NewFromInt(103230); !merged.Price(svc).Equal(want) {
		t.Errorf("unrelated entry lost: price = %s, want %s", merged.Price(svc), want)
	}
}

func TestDefaultPrices_ProfileSelection(t *testing.T) {
	item := CatalogItem{ID: ItemRelocationService}

	if want := decimal.NewFromInt(103230); !DefaultPrices(ProfileCustomer).Price(item).Equal(want) {
		t.Errorf("customer profile price wrong")
	}
	if want := decimal.NewFromInt(96000); !DefaultPrices(ProfileVendor).Price(item).Equal(want) {
		t.Errorf("vendor profile price wrong")
	}
	// Unknown profile falls back to vendor.
	if want := decimal.NewFromInt(96000); !DefaultPrices(Profile("x")).Price(item).Equal(want) {
		t.Errorf("unknown profile should fall back to vendor table")
	}
}
