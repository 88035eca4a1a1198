package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"larek/internal/app"
	"larek/internal/bus"
	"larek/internal/config"
	"larek/internal/gateway"
	webui "larek/internal/http"
	applog "larek/internal/log"
	"larek/internal/models"
	"larek/internal/views"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	// State core: one bus, one set of models, wired explicitly and
	// shared by handle. No package-level singletons.
	events := bus.New()
	catalog := models.NewCatalog(events, cfg.CDNBase)
	cart := models.NewCart(events, catalog)
	wizard := models.NewWizard(events, cfg.DefaultPayment)
	gw := gateway.New(cfg.APIBase, cfg.GatewayTimeout)

	// Views draw on the page surface; the forms are pure projections of
	// the wizard, so wiring order does not matter.
	surface := webui.NewPageSurface()
	views.NewHeader(events, cart, surface)
	views.NewGallery(events, catalog, cart, surface)
	cartView := views.NewCartView(cart)
	shipping := views.NewShippingForm(wizard)
	contacts := views.NewContactsForm(wizard)
	modal := views.NewModal(events, surface)

	presenter := app.New(events, catalog, cart, wizard, gw, modal, cartView, shipping, contacts)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	fapp := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	fapp.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	fapp.Use(requestid.New())
	fapp.Use(logger.New())
	fapp.Use(helmet.New())
	fapp.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	fapp.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Warn(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("error", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	fapp.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	fapp.Static("/static", "./web/static")

	// ---------- Routes ----------
	pages := &webui.Pages{Events: events, Surface: surface, Engine: engine}

	fapp.Get("/", pages.Index)
	fapp.Get("/product/:id", pages.SelectCard)

	fapp.Post("/cart", pages.AddToCart)
	fapp.Post("/cart/remove", pages.RemoveFromCart)
	fapp.Post("/cart/open", pages.OpenCart)

	fapp.Post("/checkout", pages.Checkout)
	fapp.Post("/order/field", pages.OrderField)
	fapp.Post("/order/next", pages.OrderNext)
	fapp.Post("/order/back", pages.OrderBack)
	fapp.Post("/contacts", pages.SubmitContacts)

	fapp.Post("/modal/close", pages.CloseModal)
	fapp.Post("/success/continue", pages.ContinueShopping)

	fapp.Post("/reload", func(c *fiber.Ctx) error {
		presenter.LoadCatalog(context.Background())
		return c.Redirect("/")
	})

	fapp.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	fapp.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("error", fiber.Map{"Message": "Page not found"})
	})

	presenter.LoadCatalog(context.Background())

	log.Fatal(fapp.Listen(":" + cfg.Port))
}
