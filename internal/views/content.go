// Package views projects model state into renderable content. Views
// are stateless: every render re-reads the models; nothing here caches
// business state or knows how templates turn content into markup.
package views

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"larek/internal/domain"
)

// Content is the renderable value handed to the display surface: a
// template name plus its data. The view layer never renders HTML.
type Content struct {
	Template string
	Data     fiber.Map
}

// Surface is the display collaborator. Update replaces a region's
// content; Clear empties it.
type Surface interface {
	Update(region string, c Content)
	Clear(region string)
}

// Page regions owned by the view layer.
const (
	RegionHeader  = "header"
	RegionGallery = "gallery"
	RegionModal   = "modal"
)

// Renderer produces fresh content from current model state. Modal
// slots hold Renderers, not rendered snapshots, so an open overlay
// re-derives its content on every redraw.
type Renderer interface {
	Render() Content
}

// FormatPrice renders a price for display; a missing price is the
// catalog's "not for sale" marker.
func FormatPrice(price *float64) string {
	if price == nil {
		return "Priceless"
	}
	if *price == float64(int64(*price)) {
		return fmt.Sprintf("%d synapses", int64(*price))
	}
	return fmt.Sprintf("%.2f synapses", *price)
}

// categoryClass picks the card badge modifier for a product category.
func categoryClass(category string) string {
	switch category {
	case "soft-skill", "софт-скил":
		return "card__category_soft"
	case "hard-skill", "хард-скил":
		return "card__category_hard"
	case "additional", "дополнительное":
		return "card__category_additional"
	case "button", "кнопка":
		return "card__category_button"
	default:
		return "card__category_other"
	}
}

// errorText looks up one field's message from a sparse error map.
func errorText(errs domain.ValidationErrors, f domain.Field) string {
	return errs[f]
}
