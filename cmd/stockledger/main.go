package main

import (
	"errors"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockledger/internal/config"
	"stockledger/internal/domain"
	"stockledger/internal/http/handlers"
	applog "stockledger/internal/log"
	"stockledger/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	var extra io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			extra = f
		}
	}
	applog.Setup(cfg.Env, cfg.LogLevel, extra)

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Handlers map domain errors inline; this catches stragglers.
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Not found"})
			case errors.Is(err, domain.ErrDuplicateKey):
				return c.Status(fiber.StatusConflict).Render("notfound", fiber.Map{"Message": "That identifier is already in use"})
			case errors.Is(err, domain.ErrReferenceNotFound):
				return c.Status(fiber.StatusUnprocessableEntity).Render("notfound", fiber.Map{"Message": "Unknown product or location"})
			}
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/products", fiber.StatusFound)
	})

	app.Get("/products", deps.ProductHandler.Page)
	app.Post("/products", deps.ProductHandler.Create)
	app.Get("/products/edit/:id", deps.ProductHandler.EditForm)
	app.Post("/products/edit/:id", deps.ProductHandler.Edit)
	app.Post("/products/delete/:id", deps.ProductHandler.Delete)

	app.Get("/locations", deps.LocationHandler.Page)
	app.Post("/locations", deps.LocationHandler.Create)
	app.Get("/locations/edit/:id", deps.LocationHandler.EditForm)
	app.Post("/locations/edit/:id", deps.LocationHandler.Edit)
	app.Post("/locations/delete/:id", deps.LocationHandler.Delete)

	app.Get("/movements", deps.MovementHandler.Page)
	app.Post("/movements", deps.MovementHandler.Create)

	app.Get("/report", deps.ReportHandler.Page)
	app.Get("/report/export", deps.ReportHandler.Export)

	// API
	api := app.Group("/api/v1")
	api.Get("/products", deps.ProductHandler.ListJSON)
	api.Get("/locations", deps.LocationHandler.ListJSON)
	api.Get("/movements", deps.MovementHandler.ListJSON)
	api.Get("/balances", deps.ReportHandler.ListJSON)

	// Health, metrics & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	if cfg.Metrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
