package invoice

import "invoice-portal/utils"

// Payment status values. There are no other states.
const (
	StatusLunas      = "lunas"
	StatusDP         = "dp"
	StatusBelumBayar = "belum_bayar"
)

// Totals carries the derived money figures for one canonical invoice.
// Balance is the raw difference and may be negative on overpayment;
// display code clamps it at zero and shows the overpaid amount instead.
type Totals struct {
	TotalOrder    float64
	TotalPayments float64
	Balance       float64
}

// ComputeTotals derives the money rollup from a canonical invoice.
func ComputeTotals(c *Canonical) Totals {
	t := Totals{}
	if c == nil {
		return t
	}
	t.TotalOrder = c.Order.Total
	if t.TotalOrder == 0 {
		t.TotalOrder = sumLineTotals(c.Details)
	}
	for _, p := range c.Payments {
		t.TotalPayments += p.Amount
	}
	t.TotalOrder = utils.Round2(t.TotalOrder)
	t.TotalPayments = utils.Round2(t.TotalPayments)
	t.Balance = utils.Round2(t.TotalOrder - t.TotalPayments)
	return t
}

// Status derives the payment status chip from the totals.
func (t Totals) Status() string {
	if t.Balance <= 0 {
		return StatusLunas
	}
	if t.TotalPayments > 0 {
		return StatusDP
	}
	return StatusBelumBayar
}

// Overpaid reports whether more was paid than owed, and by how much.
func (t Totals) Overpaid() (float64, bool) {
	if t.Balance < 0 {
		return -t.Balance, true
	}
	return 0, false
}

// RemainingBalance is the display balance, clamped at zero.
func (t Totals) RemainingBalance() float64 {
	if t.Balance < 0 {
		return 0
	}
	return t.Balance
}
