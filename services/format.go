package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIDR formats an amount as Indonesian Rupiah: "Rp 1.234.567" with dots
// as thousands separators. Whole amounts carry no decimals; fractional ones
// (possible via price overrides) show two, comma-separated ("Rp 1.234,50").
func FormatIDR(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	if negative {
		amount = amount.Neg()
	}

	places := int32(0)
	if !amount.Equal(amount.Truncate(0)) {
		places = 2
	}
	raw := amount.StringFixed(places)

	intPart := raw
	decPart := ""
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		intPart = raw[:i]
		decPart = raw[i+1:]
	}

	result := "Rp " + groupThousands(intPart)
	if decPart != "" {
		result += "," + decPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dots into an integer string every 3 digits from the
// right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "." + result
}
