package api

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"larek/internal/domain"
	applog "larek/internal/log"
	"larek/internal/validate"
)

type Handler struct {
	Prods  *ProductRepo
	Orders *OrderRepo
}

// List serves GET /api/weblarek/product/.
func (h *Handler) List(c *fiber.Ctx) error {
	rows, err := h.Prods.List()
	if err != nil {
		applog.Error(c, "api.products.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	items := make([]domain.APIProduct, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.Wire())
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Get serves GET /api/weblarek/product/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	row, err := h.Prods.Get(id)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		applog.Error(c, "api.products.get", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	return c.JSON(row.Wire())
}

// CreateOrder serves POST /api/weblarek/order.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	var o domain.Order
	if err := c.BodyParser(&o); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed order"})
	}
	if _, ok := domain.ParsePayment(string(o.Payment)); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown payment method"})
	}
	if _, ok := validate.Address(o.Address); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing address"})
	}
	if _, ok := validate.Email(o.Email); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
	}
	if _, ok := validate.Phone(o.Phone); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone"})
	}

	orderID, err := h.Orders.Create(o)
	if err != nil {
		applog.Warn(c, "api.order.reject", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Info(c, "api.order.create", map[string]any{"order_id": orderID, "total": o.Total})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": orderID, "total": o.Total})
}
