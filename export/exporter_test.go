package export

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-portal/invoice"
	"invoice-portal/render"
)

func sampleCanonical() *invoice.Canonical {
	c := &invoice.Canonical{
		Details: []invoice.Detail{
			{Name: "Kopi Arabika", Quantity: 2, UnitPrice: 50000},
		},
		Payments: []invoice.Payment{
			{ID: "1", Date: "2024-05-01", Amount: 40000},
		},
	}
	c.Order.TransactionNumber = "TRX-77"
	c.Order.Total = 100000
	c.Order.Customer = invoice.Customer{Name: "Siti", Phone: "0812", Address: "Jl. Mawar"}
	return c
}

func TestDownloadPDFNamesFileByTransaction(t *testing.T) {
	surface := render.NewSurface()
	e := NewExporter(surface)
	e.generatePDF = func(render.View, float64) ([]byte, error) {
		return []byte("%PDF-fake"), nil
	}

	res, err := e.DownloadPDF(sampleCanonical(), false)
	require.NoError(t, err)
	assert.Equal(t, "TRX-77.pdf", res.Filename)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.False(t, res.PrintFallback)
	assert.False(t, surface.ControlsHidden(), "controls restored after capture")
}

func TestDownloadPDFFallbackName(t *testing.T) {
	e := NewExporter(render.NewSurface())
	e.generatePDF = func(render.View, float64) ([]byte, error) {
		return []byte("%PDF-fake"), nil
	}
	c := &invoice.Canonical{Details: []invoice.Detail{}, Payments: []invoice.Payment{}}

	res, err := e.DownloadPDF(c, false)
	require.NoError(t, err)
	assert.Equal(t, "invoice.pdf", res.Filename)
}

func TestCaptureFailureInvokesPrintPathOnceAndRestores(t *testing.T) {
	surface := render.NewSurface()
	e := NewExporter(surface)

	var calls int
	e.generatePDF = func(v render.View, scale float64) ([]byte, error) {
		calls++
		assert.True(t, surface.ControlsHidden(), "controls hidden during capture")
		assert.True(t, v.CaptureMode)
		return nil, errors.New("rasterization failed")
	}

	res, err := e.DownloadPDF(sampleCanonical(), false)
	require.NoError(t, err, "capture failure degrades, it does not error")
	assert.Equal(t, 1, calls, "generation attempted exactly once")
	assert.True(t, res.PrintFallback)
	assert.Contains(t, string(res.Data), "window.print()")
	assert.False(t, surface.ControlsHidden(), "controls restored on the failure path")
}

func TestCapturedScale(t *testing.T) {
	e := NewExporter(render.NewSurface())
	var got float64
	e.generatePDF = func(_ render.View, scale float64) ([]byte, error) {
		got = scale
		return []byte("x"), nil
	}
	_, err := e.DownloadPDF(sampleCanonical(), false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestPreviewProducesDataURI(t *testing.T) {
	surface := render.NewSurface()
	e := NewExporter(surface)

	res, err := e.Preview(sampleCanonical(), true)
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
	assert.True(t, strings.HasPrefix(res.ImageDataURI, "data:image/png;base64,"))
	assert.False(t, surface.ControlsHidden())
}

func TestConcurrentCaptureIsRejected(t *testing.T) {
	e := NewExporter(render.NewSurface())

	started := make(chan struct{})
	unblock := make(chan struct{})
	var startOnce sync.Once
	e.generatePDF = func(render.View, float64) ([]byte, error) {
		startOnce.Do(func() {
			close(started)
			<-unblock
		})
		return []byte("x"), nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := e.DownloadPDF(sampleCanonical(), false)
		assert.NoError(t, err)
	}()

	<-started
	_, err := e.DownloadPDF(sampleCanonical(), false)
	assert.ErrorIs(t, err, ErrBusy)

	close(unblock)
	wg.Wait()

	// Busy flag released; the next capture goes through.
	_, err = e.DownloadPDF(sampleCanonical(), false)
	assert.NoError(t, err)
}

func TestBuildPDFProducesDocument(t *testing.T) {
	view := render.BuildView(sampleCanonical(), false)
	view.CaptureMode = true
	data, err := buildPDF(view, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
