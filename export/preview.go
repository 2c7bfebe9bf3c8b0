package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"invoice-portal/render"
)

const (
	previewWidth      = 480
	previewLineHeight = 16
	previewMargin     = 16
)

// buildPreviewPNG rasterizes the invoice view into a PNG and returns it
// as a data URI for the in-app preview modal. The raster is drawn at base
// size and upscaled by the capture scale.
func buildPreviewPNG(v render.View, scale float64) (string, error) {
	if scale <= 0 {
		scale = 1
	}

	lines := previewLines(v)
	height := previewMargin*2 + previewLineHeight*len(lines)

	img := image.NewRGBA(image.Rect(0, 0, previewWidth, height))
	bg, fg := previewPalette(v.DarkMode)
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
	}
	y := previewMargin + previewLineHeight
	for _, line := range lines {
		drawer.Dot = fixed.P(previewMargin, y)
		drawer.DrawString(line)
		y += previewLineHeight
	}

	out := image.Image(img)
	if scale != 1 {
		sw := int(float64(previewWidth) * scale)
		sh := int(float64(height) * scale)
		scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return "", fmt.Errorf("encode preview png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func previewLines(v render.View) []string {
	number := v.TransactionNumber
	if number == "" {
		number = "-"
	}
	lines := []string{
		fmt.Sprintf("INVOICE %s  [%s]", number, v.StatusLabel),
		v.Customer.Name,
	}
	if v.Customer.Phone != "" {
		lines = append(lines, v.Customer.Phone)
	}
	if v.Customer.Address != "" {
		lines = append(lines, v.Customer.Address)
	}
	lines = append(lines, "")
	for _, item := range v.Items {
		lines = append(lines, fmt.Sprintf("%-24s x%g  %s", trimTo(item.Name, 24), item.Quantity, item.LineTotal))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Total Pesanan:    %s", v.TotalOrder),
		fmt.Sprintf("Total Pembayaran: %s", v.TotalPaid),
	)
	if v.Overpaid {
		lines = append(lines, fmt.Sprintf("Kelebihan bayar:  %s", v.OverpaidAmount))
	} else {
		lines = append(lines, fmt.Sprintf("Sisa Tagihan:     %s", v.RemainingBalance))
	}
	return lines
}

func previewPalette(dark bool) (bg, fg color.Color) {
	if dark {
		return color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}, color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	}
	return color.White, color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
}

func trimTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
