package views

import (
	"github.com/gofiber/fiber/v2"

	"larek/internal/models"
)

// Preview is the product detail overlay. A priceless product renders
// with the add button disabled; one already in the cart offers removal.
type Preview struct {
	catalog   *models.Catalog
	cart      *models.Cart
	productID string
}

func NewPreview(catalog *models.Catalog, cart *models.Cart, productID string) *Preview {
	return &Preview{catalog: catalog, cart: cart, productID: productID}
}

func (v *Preview) Render() Content {
	p, ok := v.catalog.ByID(v.productID)
	if !ok {
		return Content{
			Template: "partials/preview_missing",
			Data:     fiber.Map{"ID": v.productID},
		}
	}
	return Content{
		Template: "partials/preview",
		Data: fiber.Map{
			"ID":            p.ID,
			"Title":         p.Title,
			"Description":   p.Description,
			"Image":         p.Image,
			"Category":      p.Category,
			"CategoryClass": categoryClass(p.Category),
			"Price":         FormatPrice(p.Price),
			"Purchasable":   p.Purchasable(),
			"InCart":        v.cart.Has(p.ID),
		},
	}
}
