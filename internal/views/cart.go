package views

import (
	"github.com/gofiber/fiber/v2"

	"larek/internal/models"
)

// CartView is the cart overlay: numbered rows, running total, checkout
// gate. Rows and total come from the model on every render, so entries
// whose product left the catalog simply do not appear.
type CartView struct {
	cart *models.Cart
}

func NewCartView(cart *models.Cart) *CartView { return &CartView{cart: cart} }

func (v *CartView) Render() Content {
	products := v.cart.Products()
	rows := make([]fiber.Map, 0, len(products))
	for i, p := range products {
		rows = append(rows, fiber.Map{
			"Index": i + 1,
			"ID":    p.ID,
			"Title": p.Title,
			"Price": FormatPrice(p.Price),
		})
	}
	return Content{
		Template: "partials/cart",
		Data: fiber.Map{
			"Rows":        rows,
			"Total":       FormatPrice(ptr(v.cart.Total())),
			"CanCheckout": len(products) > 0,
		},
	}
}

func ptr(f float64) *float64 { return &f }
