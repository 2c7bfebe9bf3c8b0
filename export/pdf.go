package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"invoice-portal/render"
)

// buildPDF lays the invoice view out as a single-page PDF. scale mirrors
// the capture scale of the on-screen exporter: it multiplies font sizes
// and row heights. Content taller than one page is not split across
// pages; that overflow limitation is deliberate.
func buildPDF(v render.View, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}

	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	addHeader(m, v, scale)
	addItemsTable(m, v, scale)
	addSummary(m, v, scale)
	addPayments(m, v, scale)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, v render.View, scale float64) {
	number := v.TransactionNumber
	if number == "" {
		number = "-"
	}
	m.AddRow(14*scale,
		col.New(7).Add(
			text.New("INVOICE", props.Text{
				Size:  14 * scale,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(fmt.Sprintf("No. Transaksi: %s", number), props.Text{
				Size: 9 * scale,
				Top:  8 * scale,
			}),
		),
		col.New(5).Add(
			text.New(v.StatusLabel, props.Text{
				Size:  11 * scale,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(12*scale,
		col.New(12).Add(
			text.New(v.Customer.Name, props.Text{
				Size:  10 * scale,
				Style: fontstyle.Bold,
			}),
			text.New(v.Customer.Phone, props.Text{
				Size: 8 * scale,
				Top:  5 * scale,
			}),
			text.New(v.Customer.Address, props.Text{
				Size: 8 * scale,
				Top:  9 * scale,
			}),
		),
	)

	m.AddRow(3*scale, line.NewCol(12))
}

func addItemsTable(m core.Maroto, v render.View, scale float64) {
	m.AddRow(6*scale,
		headerCell(6, "Produk", align.Left, scale),
		headerCell(2, "Qty", align.Center, scale),
		headerCell(2, "Harga", align.Right, scale),
		headerCell(2, "Subtotal", align.Right, scale),
	)
	m.AddRow(1*scale, line.NewCol(12))

	for _, item := range v.Items {
		m.AddRow(6*scale,
			bodyCell(6, item.Name, align.Left, scale),
			bodyCell(2, fmt.Sprintf("%g", item.Quantity), align.Center, scale),
			bodyCell(2, item.UnitPrice, align.Right, scale),
			bodyCell(2, item.LineTotal, align.Right, scale),
		)
	}

	m.AddRow(2*scale, line.NewCol(12))
}

func addSummary(m core.Maroto, v render.View, scale float64) {
	summaryRow(m, "Total Pesanan:", v.TotalOrder, false, scale)
	summaryRow(m, "Total Pembayaran:", v.TotalPaid, false, scale)
	if v.Overpaid {
		summaryRow(m, "Kelebihan bayar:", v.OverpaidAmount, true, scale)
	} else {
		summaryRow(m, "Sisa Tagihan:", v.RemainingBalance, true, scale)
	}
}

func addPayments(m core.Maroto, v render.View, scale float64) {
	m.AddRow(8*scale,
		col.New(12).Add(
			text.New("Riwayat Pembayaran", props.Text{
				Size:  10 * scale,
				Style: fontstyle.Bold,
				Top:   3 * scale,
			}),
		),
	)

	m.AddRow(6*scale,
		headerCell(4, "ID", align.Left, scale),
		headerCell(4, "Tanggal", align.Left, scale),
		headerCell(4, "Jumlah", align.Right, scale),
	)
	m.AddRow(1*scale, line.NewCol(12))

	for _, p := range v.Payments {
		m.AddRow(6*scale,
			bodyCell(4, p.ID, align.Left, scale),
			bodyCell(4, p.Date, align.Left, scale),
			bodyCell(4, p.Amount, align.Right, scale),
		)
	}
}

func summaryRow(m core.Maroto, label, value string, bold bool, scale float64) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(6*scale,
		col.New(6),
		col.New(3).Add(
			text.New(label, props.Text{Size: 9 * scale, Style: style, Align: align.Right}),
		),
		col.New(3).Add(
			text.New(value, props.Text{Size: 9 * scale, Style: style, Align: align.Right}),
		),
	)
}

func headerCell(width int, label string, a align.Type, scale float64) core.Col {
	return col.New(width).Add(
		text.New(label, props.Text{
			Size:  8 * scale,
			Style: fontstyle.Bold,
			Align: a,
		}),
	)
}

func bodyCell(width int, value string, a align.Type, scale float64) core.Col {
	return col.New(width).Add(
		text.New(value, props.Text{
			Size:  8 * scale,
			Align: a,
		}),
	)
}
