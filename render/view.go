package render

import (
	"invoice-portal/invoice"
	"invoice-portal/utils"
)

// View is the deterministic input for the invoice surface template.
// All money fields arrive pre-formatted so the template stays dumb.
type View struct {
	TransactionNumber string
	Status            string
	StatusLabel       string

	Customer CustomerView
	Items    []ItemView
	Payments []PaymentView

	TotalOrder       string
	TotalPaid        string
	RemainingBalance string
	Overpaid         bool
	OverpaidAmount   string

	DarkMode    bool
	CaptureMode bool
	PrintMode   bool
}

type CustomerView struct {
	Name    string
	Phone   string
	Address string
}

type ItemView struct {
	Name      string
	Quantity  float64
	UnitPrice string
	LineTotal string
}

type PaymentView struct {
	ID     string
	Date   string
	Amount string
}

var statusLabels = map[string]string{
	invoice.StatusLunas:      "Lunas",
	invoice.StatusDP:         "DP",
	invoice.StatusBelumBayar: "Belum Bayar",
}

// BuildView projects a canonical invoice into the template input.
func BuildView(c *invoice.Canonical, darkMode bool) View {
	t := invoice.ComputeTotals(c)
	status := t.Status()

	v := View{
		TransactionNumber: c.Order.TransactionNumber,
		Status:            status,
		StatusLabel:       statusLabels[status],
		Customer: CustomerView{
			Name:    c.Order.Customer.Name,
			Phone:   c.Order.Customer.Phone,
			Address: c.Order.Customer.Address,
		},
		TotalOrder:       utils.FormatRupiah(t.TotalOrder),
		TotalPaid:        utils.FormatRupiah(t.TotalPayments),
		RemainingBalance: utils.FormatRupiah(t.RemainingBalance()),
		DarkMode:         darkMode,
	}
	if over, ok := t.Overpaid(); ok {
		v.Overpaid = true
		v.OverpaidAmount = utils.FormatRupiah(over)
	}

	for _, d := range c.Details {
		v.Items = append(v.Items, ItemView{
			Name:      d.Name,
			Quantity:  d.Quantity,
			UnitPrice: utils.FormatRupiah(d.UnitPrice),
			LineTotal: utils.FormatRupiah(utils.LineTotal(d.Quantity, d.UnitPrice)),
		})
	}
	for _, p := range c.Payments {
		v.Payments = append(v.Payments, PaymentView{
			ID:     p.ID,
			Date:   p.Date,
			Amount: utils.FormatRupiah(p.Amount),
		})
	}
	return v
}
