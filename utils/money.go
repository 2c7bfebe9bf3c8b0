package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// LineTotal computes qty × unit price without float drift.
func LineTotal(qty, unitPrice float64) float64 {
	total := decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(unitPrice))
	f, _ := total.Round(2).Float64()
	return f
}

// FormatRupiah renders an amount with Indonesian digit grouping, e.g.
// "Rp 1.234.567" or "Rp 1.234,50" when the amount carries decimals.
func FormatRupiah(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	s := d.StringFixed(2)
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if fracPart != "00" {
		out += "," + fracPart
	}
	if neg {
		return "-Rp " + out
	}
	return "Rp " + out
}

// ParseIntDefault parses a non-negative int, falling back to def.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
