package services

import (
	"sort"
	"strings"
	"time"

	"meterrelocation/spreadsheet"
)

// Record-sheet column headers, as the intake form writes them.
const (
	colTimestamp = "Timestamp"
	colID        = "ID Pelanggan"
	colName      = "Nama"
	colAddress   = "Alamat kWH Meter"
	colTariff    = "Tarif / Daya"
	colKTPPhoto  = "Foto KTP"
)

// Customer is one intake-form row of the shared record sheet.
type Customer struct {
	ID          string
	Name        string
	Address     string
	Tariff      string
	KTPPhotoURL string
	Submitted   time.Time
}

// CustomerRecords reads the record sheet into header-keyed rows. Rows shorter
// than the header are padded with blanks; extra cells are dropped.
func CustomerRecords(wb spreadsheet.Workbook, sheet string) ([]map[string]string, error) {
	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(row) {
				rec[key] = row[i]
			} else {
				rec[key] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseSubmitted accepts the form's dd/mm/yyyy HH:MM:SS stamps, falling back
// to a date-only form. Zero time means unparseable.
func parseSubmitted(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02/01/2006 15:04:05", "02/01/2006 15:04", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, s, Jakarta()); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseCustomers converts header-keyed record rows into Customers, skipping
// rows without a customer id.
func ParseCustomers(records []map[string]string) []Customer {
	customers := make([]Customer, 0, len(records))
	for _, rec := range records {
		id := strings.TrimSpace(rec[colID])
		if id == "" {
			continue
		}
		customers = append(customers, Customer{
			ID:          id,
			Name:        strings.TrimSpace(rec[colName]),
			Address:     strings.TrimSpace(rec[colAddress]),
			Tariff:      strings.TrimSpace(rec[colTariff]),
			KTPPhotoURL: strings.TrimSpace(rec[colKTPPhoto]),
			Submitted:   parseSubmitted(rec[colTimestamp]),
		})
	}
	return customers
}

// LoadCustomers reads and parses the record sheet in one step.
func LoadCustomers(wb spreadsheet.Workbook, sheet string) ([]Customer, error) {
	records, err := CustomerRecords(wb, sheet)
	if err != nil {
		return nil, err
	}
	return ParseCustomers(records), nil
}

// FilterCustomers narrows the list by submission date (yyyy-mm-dd, empty for
// all) and a case-insensitive ID/name substring query.
func FilterCustomers(customers []Customer, date, query string) []Customer {
	query = strings.ToLower(strings.TrimSpace(query))
	date = strings.TrimSpace(date)

	var out []Customer
	for _, c := range customers {
		if date != "" {
			if c.Submitted.IsZero() || c.Submitted.Format("2006-01-02") != date {
				continue
			}
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.ID), query) &&
			!strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CustomerByID returns the first record for an id.
func CustomerByID(customers []Customer, id string) (Customer, bool) {
	id = strings.TrimSpace(id)
	for _, c := range customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// SubmissionDates lists the distinct submission dates present, newest first,
// for the date filter dropdown.
func SubmissionDates(customers []Customer) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, c := range customers {
		if c.Submitted.IsZero() {
			continue
		}
		d := c.Submitted.Format("2006-01-02")
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// TariffCount is one bar of the usage chart.
type TariffCount struct {
	Tariff string
	Count  int
}

// TariffCounts aggregates customers per tariff/power class, descending by
// count with ties broken alphabetically.
func TariffCounts(customers []Customer) []TariffCount {
	counts := make(map[string]int)
	for _, c := range customers {
		if c.Tariff == "" {
			continue
		}
		counts[c.Tariff]++
	}
	out := make([]TariffCount, 0, len(counts))
	for tariff, n := range counts {
		out = append(out, TariffCount{Tariff: tariff, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tariff < out[j].Tariff
	})
	return out
}
