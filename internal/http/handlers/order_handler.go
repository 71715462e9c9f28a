package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "ponsiv/internal/log"
	"ponsiv/internal/services"
)

type OrderHandler struct {
	Order *services.OrderService
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.History(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// Place checks out the whole cart.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	placed, err := h.Order.Place(c.UserContext())
	if err != nil {
		return err
	}
	applog.Audit(c, "order.place", map[string]any{"orders": len(placed)})
	return c.Status(fiber.StatusCreated).JSON(placed)
}
