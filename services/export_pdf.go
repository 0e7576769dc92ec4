package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateRecapPDF creates a printable recap document using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateRecapPDF(data RecapExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addRecapHeader(m, data)
	addRecapIdentity(m, data)
	addRecapTableHeader(m)
	for i, line := range data.Lines {
		addRecapTableRow(m, i+1, line)
	}
	addRecapSummary(m, data)
	addRecapFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate recap PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addRecapHeader adds the unit name and document title.
func addRecapHeader(m core.Maroto, data RecapExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New("PLN ULP DINOYO", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("REKAPITULASI BIAYA", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
		row.New(6).Add(
			col.New(6).Add(
				text.New("Dashboard Petugas Geser Meter", props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(data.Title, props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
		row.New(4),
	)
}

// addRecapIdentity adds the six identity fields as label/value rows.
func addRecapIdentity(m core.Maroto, data RecapExportData) {
	labelText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	valueText := props.Text{Size: 8, Align: align.Left}

	fields := []struct {
		label string
		value string
	}{
		{"Pekerjaan", data.Identity.Job},
		{"Nama", data.Identity.CustomerName},
		{"Lokasi Pekerjaan", data.Identity.Location},
		{"ULP", data.Identity.Unit},
		{"No SPK", data.Identity.WorkOrder},
		{"Vendor Pelaksana", data.Identity.Contractor},
	}
	for _, f := range fields {
		m.AddRows(
			row.New(5).Add(
				col.New(3).Add(text.New(f.label, labelText)),
				col.New(9).Add(text.New(orDash(f.value), valueText)),
			),
		)
	}
	m.AddRows(row.New(4))
}

// addRecapTableHeader adds the line-item table header.
func addRecapTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 30, Green: 58, Blue: 95}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Rincian", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Vol", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Harga Satuan", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Jumlah", headerText)).WithStyle(&headerCell),
		),
	)
}

// addRecapTableRow adds one priced line to the table.
func addRecapTableRow(m core.Maroto, index int, line RecapLine) {
	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", index), baseText)),
			col.New(5).Add(text.New(line.Item.Name, leftText)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", line.Qty), rightText)),
			col.New(2).Add(text.New(FormatIDR(line.UnitPrice), rightText)),
			col.New(3).Add(text.New(FormatIDR(line.Total), rightText)),
		),
	)
}

// addRecapSummary adds subtotal, VAT and grand total.
func addRecapSummary(m core.Maroto, data RecapExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := props.Cell{BackgroundColor: summaryBg}
	labelText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	rowsData := []struct {
		label string
		value string
	}{
		{"Subtotal:", FormatIDR(data.Subtotal)},
		{"PPN (11%):", FormatIDR(data.Tax)},
		{"Total Biaya Setelah PPN:", FormatIDR(data.Total)},
	}
	for _, r := range rowsData {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(r.label, labelText)).WithStyle(&summaryCell),
				col.New(3).Add(text.New(r.value, valueText)).WithStyle(&summaryCell),
			),
		)
	}
}

// addRecapFooter notes when and for which audience the document was built.
func addRecapFooter(m core.Maroto, data RecapExportData) {
	m.AddRows(
		row.New(10),
		row.New(5).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Profil harga: %s · Dibuat: %s", data.Audience, data.GeneratedAt),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 120, Green: 120, Blue: 120},
					},
				),
			),
		),
	)
}
