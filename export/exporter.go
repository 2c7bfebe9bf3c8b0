package export

import (
	"errors"
	"fmt"

	"invoice-portal/invoice"
	"invoice-portal/logger"
	"invoice-portal/render"
)

const (
	pdfScale     = 2.0
	previewScale = 1.5
)

// ErrBusy is returned when a capture is requested while another one is
// still in flight. Captures are serialized behind a busy flag rather
// than queued.
var ErrBusy = errors.New("a capture is already in progress")

// Result is one produced artifact.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte

	// PrintFallback marks that PDF generation failed and Data carries the
	// print-mode HTML page instead (the platform print path).
	PrintFallback bool

	// ImageDataURI is set for previews.
	ImageDataURI string
}

// Exporter captures the invoice surface into shareable artifacts. It owns
// the capture-exclusion discipline: controls are hidden for the duration
// of a capture and always restored, even when generation fails.
type Exporter struct {
	surface *render.Surface

	busy chan struct{}

	// generatePDF is swappable for tests.
	generatePDF func(v render.View, scale float64) ([]byte, error)
}

func NewExporter(surface *render.Surface) *Exporter {
	return &Exporter{
		surface:     surface,
		busy:        make(chan struct{}, 1),
		generatePDF: buildPDF,
	}
}

// DownloadPDF captures the invoice at 2x and returns a single-page PDF
// named after the transaction number. On any generation failure it falls
// back to the platform print path exactly once.
func (e *Exporter) DownloadPDF(c *invoice.Canonical, darkMode bool) (Result, error) {
	if !e.acquireBusy() {
		return Result{}, ErrBusy
	}
	defer e.releaseBusy()

	release := e.surface.AcquireCapture()
	defer release()

	view := render.BuildView(c, darkMode)
	view.CaptureMode = true

	data, err := e.generatePDF(view, pdfScale)
	if err != nil {
		logger.L.WithError(err).Error("export: pdf generation failed, falling back to print")
		return e.printFallback(view)
	}

	return Result{
		Filename:    pdfFilename(c),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// Preview captures the invoice at 1.5x into an in-memory PNG data URI
// for the preview modal. The modal's download action reuses DownloadPDF.
func (e *Exporter) Preview(c *invoice.Canonical, darkMode bool) (Result, error) {
	if !e.acquireBusy() {
		return Result{}, ErrBusy
	}
	defer e.releaseBusy()

	release := e.surface.AcquireCapture()
	defer release()

	view := render.BuildView(c, darkMode)
	view.CaptureMode = true

	uri, err := buildPreviewPNG(view, previewScale)
	if err != nil {
		logger.L.WithError(err).Error("export: preview capture failed")
		return Result{}, err
	}

	return Result{
		ContentType:  "image/png",
		ImageDataURI: uri,
	}, nil
}

// printFallback renders the print-mode HTML page. Invoked at most once
// per failed capture.
func (e *Exporter) printFallback(view render.View) (Result, error) {
	view.PrintMode = true
	html, err := render.HTML(view)
	if err != nil {
		return Result{}, fmt.Errorf("print fallback render: %w", err)
	}
	return Result{
		ContentType:   "text/html; charset=utf-8",
		Data:          []byte(html),
		PrintFallback: true,
	}, nil
}

func (e *Exporter) acquireBusy() bool {
	select {
	case e.busy <- struct{}{}:
		return true
	default:
		return false
	}
}

func (e *Exporter) releaseBusy() {
	<-e.busy
}

func pdfFilename(c *invoice.Canonical) string {
	if c != nil && c.Order.TransactionNumber != "" {
		return c.Order.TransactionNumber + ".pdf"
	}
	return "invoice.pdf"
}
