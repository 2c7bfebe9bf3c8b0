package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"invoice-portal/controllers"
	"invoice-portal/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	// Live theme stylesheet (referenced by every rendered page)
	app.Get("/theme.css", controllers.GetThemeCSS)

	// Public invoice views: transaction number, access token, or a
	// base64url static payload for fully offline links.
	app.Get("/invoice/token/:token", controllers.ShowInvoice)
	app.Get("/invoice/token/:token/pdf", controllers.DownloadInvoicePDF)
	app.Get("/invoice/token/:token/preview", controllers.PreviewInvoice)
	app.Get("/invoice/static/:payload", controllers.ShowInvoice)
	app.Get("/invoice/static/:payload/pdf", controllers.DownloadInvoicePDF)
	app.Get("/invoice/static/:payload/preview", controllers.PreviewInvoice)
	app.Get("/invoice/:no_transaksi", controllers.ShowInvoice)
	app.Get("/invoice/:no_transaksi/pdf", controllers.DownloadInvoicePDF)
	app.Get("/invoice/:no_transaksi/preview", controllers.PreviewInvoice)

	api := app.Group("/api")

	// Canonical model for API consumers
	api.Get("/invoice/:no_transaksi", controllers.GetInvoiceJSON)

	// Token resolution endpoint consumed by the fetcher
	api.Get("/invoices/token/:token", controllers.GetInvoiceByToken)

	// Share links (idempotent mint)
	api.Post("/share-links", middlewares.Idempotency(), controllers.CreateShareLink)

	// Theme
	api.Get("/theme", controllers.GetTheme)
	api.Post("/theme/toggle", controllers.ToggleTheme)
	api.Put("/theme/overrides", controllers.PutOverrides)
	api.Delete("/theme/overrides", controllers.DeleteOverrides)

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
