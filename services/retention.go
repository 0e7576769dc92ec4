package services

import (
	"log"
	"regexp"
	"sort"
	"time"

	"meterrelocation/spreadsheet"
)

// RecapTitlePrefix starts every generated recap sheet title. The compact
// prefix leaves room for a truncated customer name, the minute stamp and a
// one-letter audience tag inside the 31-character .xlsx sheet-name limit.
const RecapTitlePrefix = "RKP "

// DefaultKeepLatest bounds how many recap sheets survive a sweep.
const DefaultKeepLatest = 40

// recapTitleRE matches "RKP Sofia 20250923_0135V" (vendor) or "...P"
// (customer), tolerating "-" in place of "_" between date and time. The name
// segment is optional.
var recapTitleRE = regexp.MustCompile(`^RKP (?:.+ )?(\d{8})[_-](\d{4})(V|P)$`)

// ParseRecapTitle extracts the embedded minute-precision timestamp and
// audience tag from a recap sheet title. ok is false for titles that do not
// match the pattern or carry an impossible timestamp.
func ParseRecapTitle(title string) (ts time.Time, audience string, ok bool) {
	m := recapTitleRE.FindStringSubmatch(title)
	if m == nil {
		return time.Time{}, "", false
	}
	ts, err := time.ParseInLocation("20060102_1504", m[1]+"_"+m[2], Jakarta())
	if err != nil {
		return time.Time{}, "", false
	}
	audience = "Pelanggan"
	if m[3] == "V" {
		audience = "Vendor"
	}
	return ts, audience, true
}

// SweepOldRecaps deletes recap sheets beyond the keep most recent ones,
// globally across both audience variants, to bound workbook growth. Titles
// that match the prefix but not the timestamp pattern sort as oldest and go
// first. Individual delete failures are logged and skipped so one protected
// sheet does not abort the sweep. Returns the titles actually deleted.
func SweepOldRecaps(wb spreadsheet.Workbook, keep int) []string {
	if keep < 0 {
		keep = 0
	}

	type candidate struct {
		title  string
		ts     time.Time
		parsed bool
		order  int // enumeration order, the deterministic tie-break
	}

	var candidates []candidate
	for i, name := range wb.SheetNames() {
		if len(name) < len(RecapTitlePrefix) || name[:len(RecapTitlePrefix)] != RecapTitlePrefix {
			continue
		}
		ts, _, ok := ParseRecapTitle(name)
		candidates = append(candidates, candidate{title: name, ts: ts, parsed: ok, order: i})
	}

	if len(candidates) <= keep {
		return nil
	}

	// Newest first; unparseable titles last, ties by enumeration order.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		if !a.ts.Equal(b.ts) {
			return a.ts.After(b.ts)
		}
		return a.order < b.order
	})

	var deleted []string
	for _, c := range candidates[keep:] {
		if err := wb.DeleteSheet(c.title); err != nil {
			log.Printf("retention: could not delete sheet %q: %v", c.title, err)
			continue
		}
		deleted = append(deleted, c.title)
	}

	if len(deleted) > 0 {
		if err := wb.Save(); err != nil {
			log.Printf("retention: save after sweep failed: %v", err)
		}
	}
	return deleted
}
