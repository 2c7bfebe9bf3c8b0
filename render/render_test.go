package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-portal/invoice"
)

func sampleCanonical() *invoice.Canonical {
	c := &invoice.Canonical{
		Details: []invoice.Detail{
			{Name: "Kopi Arabika", Quantity: 2, UnitPrice: 50000},
			{Name: "Gula", Quantity: 1, UnitPrice: 12000},
		},
		Payments: []invoice.Payment{
			{ID: "9", Date: "2024-05-01", Amount: 40000},
		},
	}
	c.Order.TransactionNumber = "TRX-55"
	c.Order.Total = 112000
	c.Order.Customer = invoice.Customer{Name: "Siti", Phone: "0812", Address: "Jl. Mawar"}
	return c
}

func TestBuildViewComputesLineTotalsAndStatus(t *testing.T) {
	v := BuildView(sampleCanonical(), false)

	assert.Equal(t, "TRX-55", v.TransactionNumber)
	assert.Equal(t, invoice.StatusDP, v.Status)
	assert.Equal(t, "DP", v.StatusLabel)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "Rp 100.000", v.Items[0].LineTotal)
	assert.Equal(t, "Rp 112.000", v.TotalOrder)
	assert.Equal(t, "Rp 40.000", v.TotalPaid)
	assert.Equal(t, "Rp 72.000", v.RemainingBalance)
	assert.False(t, v.Overpaid)
}

func TestBuildViewOverpayment(t *testing.T) {
	c := sampleCanonical()
	c.Payments = []invoice.Payment{{Amount: 150000}}
	v := BuildView(c, false)

	assert.True(t, v.Overpaid)
	assert.Equal(t, "Rp 38.000", v.OverpaidAmount)
	assert.Equal(t, "Rp 0", v.RemainingBalance)
	assert.Equal(t, invoice.StatusLunas, v.Status)
}

func TestHTMLContainsStatusChipAndControls(t *testing.T) {
	html, err := HTML(BuildView(sampleCanonical(), false))
	require.NoError(t, err)

	assert.Contains(t, html, `class="chip dp"`)
	assert.Contains(t, html, "data-capture-excluded")
	assert.Contains(t, html, "Siti")
	assert.Contains(t, html, "Riwayat Pembayaran")
	assert.NotContains(t, html, "window.print()")
}

func TestCaptureModeOmitsControls(t *testing.T) {
	v := BuildView(sampleCanonical(), false)
	v.CaptureMode = true
	html, err := HTML(v)
	require.NoError(t, err)
	assert.NotContains(t, html, "data-capture-excluded")
}

func TestDarkModeSetsMarkerClass(t *testing.T) {
	html, err := HTML(BuildView(sampleCanonical(), true))
	require.NoError(t, err)
	assert.Contains(t, html, `<html lang="id" class="dark">`)
}

func TestErrorHTML(t *testing.T) {
	html, err := ErrorHTML("Order not found for transaksi: TRX-1", false)
	require.NoError(t, err)
	assert.Contains(t, html, "Order not found for transaksi: TRX-1")
	assert.False(t, strings.Contains(html, `class="dark"`))
}

func TestSurfaceCaptureGuardRestores(t *testing.T) {
	s := NewSurface()
	assert.False(t, s.ControlsHidden())

	release := s.AcquireCapture()
	assert.True(t, s.ControlsHidden())

	release()
	assert.False(t, s.ControlsHidden())

	// Double release is harmless.
	release()
	assert.False(t, s.ControlsHidden())
}
