package http

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"larek/internal/bus"
	"larek/internal/domain"
	applog "larek/internal/log"
	"larek/internal/validate"
	"larek/internal/views"
)

// Pages serves the storefront page and translates form posts into
// intent events on the bus.
type Pages struct {
	Events  *bus.Bus
	Surface *PageSurface
	Engine  *html.Engine
}

// Index composes the page from the surface regions. Each region's
// content value is rendered through the template engine here, at the
// edge; the view layer never sees markup.
func (h *Pages) Index(c *fiber.Ctx) error {
	data := fiber.Map{
		"Header":  h.regionHTML(c, views.RegionHeader),
		"Gallery": h.regionHTML(c, views.RegionGallery),
	}
	if modal, ok := h.Surface.Region(views.RegionModal); ok {
		data["Modal"] = h.contentHTML(c, modal)
	}
	return render(c, "index", data)
}

func (h *Pages) regionHTML(c *fiber.Ctx, region string) template.HTML {
	content, ok := h.Surface.Region(region)
	if !ok {
		return ""
	}
	return h.contentHTML(c, content)
}

func (h *Pages) contentHTML(c *fiber.Ctx, content views.Content) template.HTML {
	// The surface's content is shared by every request; render from a
	// copy so the per-request token never touches the stored map.
	data := make(fiber.Map, len(content.Data)+1)
	for k, v := range content.Data {
		data[k] = v
	}
	if tok, ok := c.Locals("CSRFToken").(string); ok {
		data["CSRFToken"] = tok
	}
	var buf bytes.Buffer
	if err := h.Engine.Render(&buf, content.Template, data); err != nil {
		applog.Error(c, "render.region", err, map[string]any{"template": content.Template})
		return ""
	}
	return template.HTML(buf.String())
}

// SelectCard opens the product preview overlay.
func (h *Pages) SelectCard(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Redirect("/")
	}
	h.Events.Publish(bus.CardSelect, bus.CardSelectPayload{ProductID: id})
	return c.Redirect("/")
}

// AddToCart handles the add button on cards and previews.
func (h *Pages) AddToCart(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	h.Events.Publish(bus.CartAdd, bus.CartAddPayload{ProductID: id})
	return c.Redirect("/")
}

// RemoveFromCart handles row delete buttons in the cart overlay.
func (h *Pages) RemoveFromCart(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	h.Events.Publish(bus.CartRemove, bus.CartRemovePayload{ProductID: id})
	return c.Redirect("/")
}

// OpenCart opens the cart overlay.
func (h *Pages) OpenCart(c *fiber.Ctx) error {
	h.Events.Publish(bus.CartOpen, nil)
	return c.Redirect("/")
}

// Checkout starts the order wizard from the current cart.
func (h *Pages) Checkout(c *fiber.Ctx) error {
	h.Events.Publish(bus.OrderOpen, nil)
	return c.Redirect("/")
}

// OrderField applies one field edit, for live per-field validation.
func (h *Pages) OrderField(c *fiber.Ctx) error {
	field, ok := parseField(c.FormValue("field"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("unknown field")
	}
	h.Events.Publish(bus.OrderField, bus.OrderFieldPayload{Field: field, Value: c.FormValue("value")})
	return c.Redirect("/")
}

// OrderNext applies the shipping fields and tries to advance.
func (h *Pages) OrderNext(c *fiber.Ctx) error {
	h.Events.Publish(bus.OrderField, bus.OrderFieldPayload{Field: domain.FieldPayment, Value: c.FormValue("payment")})
	h.Events.Publish(bus.OrderField, bus.OrderFieldPayload{Field: domain.FieldAddress, Value: c.FormValue("address")})
	h.Events.Publish(bus.OrderNext, nil)
	return c.Redirect("/")
}

// OrderBack returns from contacts to the shipping step.
func (h *Pages) OrderBack(c *fiber.Ctx) error {
	h.Events.Publish(bus.OrderBack, nil)
	return c.Redirect("/")
}

// SubmitContacts applies the contact fields and submits the order.
func (h *Pages) SubmitContacts(c *fiber.Ctx) error {
	h.Events.Publish(bus.OrderField, bus.OrderFieldPayload{Field: domain.FieldEmail, Value: c.FormValue("email")})
	h.Events.Publish(bus.OrderField, bus.OrderFieldPayload{Field: domain.FieldPhone, Value: c.FormValue("phone")})
	h.Events.Publish(bus.ContactsSubmit, nil)
	return c.Redirect("/")
}

// CloseModal dismisses the overlay; the escape key posts here too.
func (h *Pages) CloseModal(c *fiber.Ctx) error {
	h.Events.Publish(bus.ModalClose, nil)
	return c.Redirect("/")
}

// ContinueShopping closes the confirmation overlay.
func (h *Pages) ContinueShopping(c *fiber.Ctx) error {
	h.Events.Publish(bus.SuccessContinue, nil)
	return c.Redirect("/")
}

func parseField(s string) (domain.Field, bool) {
	switch domain.Field(s) {
	case domain.FieldPayment, domain.FieldAddress, domain.FieldEmail, domain.FieldPhone:
		return domain.Field(s), true
	}
	return "", false
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if tok, ok := c.Locals("CSRFToken").(string); ok {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}
