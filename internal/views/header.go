package views

import (
	"github.com/gofiber/fiber/v2"

	"larek/internal/bus"
	"larek/internal/models"
)

// Header shows the cart counter. It redraws on every cart change and
// re-reads the count from the model each time.
type Header struct {
	cart    *models.Cart
	surface Surface
}

func NewHeader(events *bus.Bus, cart *models.Cart, surface Surface) *Header {
	h := &Header{cart: cart, surface: surface}
	events.Subscribe(bus.CartChanged, func(any) { h.Redraw() })
	h.Redraw()
	return h
}

func (h *Header) Render() Content {
	return Content{
		Template: "partials/header",
		Data:     fiber.Map{"Count": h.cart.Count()},
	}
}

func (h *Header) Redraw() { h.surface.Update(RegionHeader, h.Render()) }
