package main

import (
	"os"
	"strconv"
	"time"

	"invoice-portal/clients"
	"invoice-portal/controllers"
	"invoice-portal/database"
	"invoice-portal/export"
	"invoice-portal/logger"
	"invoice-portal/middlewares"
	"invoice-portal/render"
	"invoice-portal/routes"
	"invoice-portal/theme"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	logger.Setup()

	// ---- Database (theme settings, share links, idempotency)
	database.Connect()
	database.AutoMigrate()

	// ---- Theme: settings-backed store driving the live stylesheet
	engine := theme.NewEngine()
	store := theme.NewStore(database.NewSettingsStore(database.DB), engine)
	store.Initialize()

	// ---- Upstream order API
	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:3001"
	}
	upstreamTimeout := time.Duration(envInt("UPSTREAM_TIMEOUT_SECONDS", 0)) * time.Second
	upstream := clients.NewHTTPClient(apiBase, upstreamTimeout)

	// ---- Export pipeline
	exporter := export.NewExporter(render.NewSurface())

	controllers.Init(upstream, store, engine, exporter)

	// ---- Limits (configurable via env)
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: false,
		AllowHeaders:     "Origin, Content-Type, Accept, Idempotency-Key, X-Request-ID",
	}))

	// ---- Request ids for log correlation
	app.Use(middlewares.RequestID())

	// ---- Global rate limiter (applies to all routes; tune via env)
	rlMax := envInt("RATE_LIMIT_MAX", 60)
	rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
	}))

	// ---- Routes
	routes.Register(app)

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.L.WithField("port", port).Info("starting invoice portal")
	if err := app.Listen(":" + port); err != nil {
		logger.L.WithError(err).Fatal("server stopped")
	}
}
