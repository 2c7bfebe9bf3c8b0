package controllers

import (
	"github.com/gofiber/fiber/v2"

	"invoice-portal/export"
	"invoice-portal/invoice"
	"invoice-portal/logger"
	"invoice-portal/metrics"
	"invoice-portal/render"
	"invoice-portal/theme"
)

// Package-level collaborators, wired once at startup.
var (
	api        invoice.API
	themeStore *theme.Store
	themeCSS   *theme.Engine
	exporter   *export.Exporter
)

// Init wires the controller package. Must run before routes are served.
func Init(upstream invoice.API, store *theme.Store, engine *theme.Engine, exp *export.Exporter) {
	api = upstream
	themeStore = store
	themeCSS = engine
	exporter = exp
}

func routeParams(c *fiber.Ctx) invoice.RouteParams {
	return invoice.RouteParams{
		TransactionNumber: c.Params("no_transaksi"),
		Token:             c.Params("token"),
		StaticPayload:     c.Params("payload"),
	}
}

// resolveInvoice runs the resolver with progress logging and returns the
// raw resolution. A Message on the resolution means total failure.
func resolveInvoice(c *fiber.Ctx) invoice.Resolution {
	params := routeParams(c)
	res := invoice.Resolve(c.Context(), params, api, func(done, total int) {
		logger.L.WithFields(map[string]any{
			"done":  done,
			"total": total,
		}).Debug("invoice resolution progress")
	})
	if res.Message != "" {
		metrics.ResolutionFailures.Inc()
	}
	return res
}

// ShowInvoice renders the public invoice page for all three route shapes.
func ShowInvoice(c *fiber.Ctx) error {
	res := resolveInvoice(c)
	dark := themeStore.DarkMode()

	if res.Message != "" {
		html, err := render.ErrorHTML(res.Message, dark)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusNotFound).SendString(html)
	}

	canonical := invoice.Normalize(res.Order, res.Details, res.Payments)
	html, err := render.HTML(render.BuildView(canonical, dark))
	if err != nil {
		return err
	}

	metrics.InvoiceRenders.WithLabelValues(string(res.Strategy)).Inc()
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// GetInvoiceJSON exposes the canonical model for API consumers.
func GetInvoiceJSON(c *fiber.Ctx) error {
	res := resolveInvoice(c)
	if res.Message != "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
	}
	canonical := invoice.Normalize(res.Order, res.Details, res.Payments)
	t := invoice.ComputeTotals(canonical)
	return c.JSON(fiber.Map{
		"invoice": canonical,
		"totals": fiber.Map{
			"total_order":    t.TotalOrder,
			"total_payments": t.TotalPayments,
			"balance":        t.RemainingBalance(),
			"status":         t.Status(),
		},
	})
}

// DownloadInvoicePDF captures the invoice into a downloadable PDF. When
// generation fails the platform print page is served instead.
func DownloadInvoicePDF(c *fiber.Ctx) error {
	res := resolveInvoice(c)
	if res.Message != "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
	}
	canonical := invoice.Normalize(res.Order, res.Details, res.Payments)

	result, err := exporter.DownloadPDF(canonical, themeStore.DarkMode())
	if err == export.ErrBusy {
		metrics.Exports.WithLabelValues("pdf", "busy").Inc()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "export already in progress"})
	}
	if err != nil {
		metrics.Exports.WithLabelValues("pdf", "error").Inc()
		return err
	}

	if result.PrintFallback {
		metrics.Exports.WithLabelValues("pdf", "print_fallback").Inc()
		c.Set(fiber.HeaderContentType, result.ContentType)
		return c.Send(result.Data)
	}

	metrics.Exports.WithLabelValues("pdf", "ok").Inc()
	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Filename+`"`)
	return c.Send(result.Data)
}

// PreviewInvoice captures the invoice into an in-memory PNG data URI for
// the preview modal.
func PreviewInvoice(c *fiber.Ctx) error {
	res := resolveInvoice(c)
	if res.Message != "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
	}
	canonical := invoice.Normalize(res.Order, res.Details, res.Payments)

	result, err := exporter.Preview(canonical, themeStore.DarkMode())
	if err == export.ErrBusy {
		metrics.Exports.WithLabelValues("preview", "busy").Inc()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "export already in progress"})
	}
	if err != nil {
		metrics.Exports.WithLabelValues("preview", "error").Inc()
		return err
	}

	metrics.Exports.WithLabelValues("preview", "ok").Inc()
	return c.JSON(fiber.Map{"image": result.ImageDataURI})
}
