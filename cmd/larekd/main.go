package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"larek/internal/api"
	"larek/internal/config"
	applog "larek/internal/log"
)

// larekd is the development catalog/order backend. The storefront only
// ever talks to it through the gateway client; in production the same
// contract is served by the real remote service.
func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := api.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	prodRepo := api.NewProductRepo(db)
	orderRepo := api.NewOrderRepo(db, prodRepo)
	h := &api.Handler{Prods: prodRepo, Orders: orderRepo}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/content/")
		},
	}))

	grp := app.Group("/api/weblarek")
	grp.Get("/product/", h.List)
	grp.Get("/product/:id", h.Get)
	grp.Post("/order", h.CreateOrder)

	// Product images. Guarded against traversal like any user-supplied
	// path segment.
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	app.Get("/content/weblarek/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		lower := strings.ToLower(path)
		if strings.Contains(lower, "..") || strings.Contains(lower, "%2e") || strings.Contains(lower, "\x00") {
			applog.Warn(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Warn(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// larekd listens on the API origin's port; the storefront gets the
	// rest of cfg.
	port := "9090"
	if i := strings.LastIndex(cfg.APIOrigin, ":"); i > strings.Index(cfg.APIOrigin, "//")+1 {
		port = cfg.APIOrigin[i+1:]
	}
	log.Fatal(app.Listen(":" + port))
}
