package views

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"larek/internal/bus"
	"larek/internal/models"
)

var reProducts = regexp.MustCompile(`^products:`)

// Gallery renders the product grid together with the catalog's load or
// error banner. Card button state comes from the cart at render time.
type Gallery struct {
	catalog *models.Catalog
	cart    *models.Cart
	surface Surface
}

func NewGallery(events *bus.Bus, catalog *models.Catalog, cart *models.Cart, surface Surface) *Gallery {
	g := &Gallery{catalog: catalog, cart: cart, surface: surface}
	events.SubscribePattern(reProducts, func(any) { g.Redraw() })
	events.Subscribe(bus.CartChanged, func(any) { g.Redraw() })
	g.Redraw()
	return g
}

func (g *Gallery) Render() Content {
	products := g.catalog.All()
	cards := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		cards = append(cards, fiber.Map{
			"ID":            p.ID,
			"Title":         p.Title,
			"Image":         p.Image,
			"Category":      p.Category,
			"CategoryClass": categoryClass(p.Category),
			"Price":         FormatPrice(p.Price),
			"InCart":        g.cart.Has(p.ID),
		})
	}
	return Content{
		Template: "partials/gallery",
		Data: fiber.Map{
			"State":   string(g.catalog.State()),
			"Loading": g.catalog.State() == models.LoadLoading,
			"Failed":  g.catalog.State() == models.LoadFailed,
			"Error":   g.catalog.Err(),
			"Cards":   cards,
		},
	}
}

func (g *Gallery) Redraw() { g.surface.Update(RegionGallery, g.Render()) }
