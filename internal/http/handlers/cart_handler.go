package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "ponsiv/internal/log"
	"ponsiv/internal/services"
	"ponsiv/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addRequest struct {
	ProductID string `json:"productID" form:"productID"`
	Qty       int    `json:"qty" form:"qty"`
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	v, err := h.Cart.View(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(v)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing productID")
	}
	qty := validate.ClampQty(req.Qty)
	if _, err := h.Cart.Add(c.UserContext(), pid, qty); err != nil {
		return err
	}
	applog.Audit(c, "cart.add", map[string]any{"product": pid, "qty": qty})
	return h.View(c)
}

// Remove drops ?qty units of a line, or the whole line without qty.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	var err error
	if raw := c.Query("qty"); raw != "" {
		if _, convErr := strconv.Atoi(raw); convErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid qty")
		}
		_, err = h.Cart.Remove(c.UserContext(), pid, validate.Qty(raw))
	} else {
		_, err = h.Cart.RemoveLine(c.UserContext(), pid)
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": pid})
	return h.View(c)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.UserContext()); err != nil {
		return err
	}
	applog.Audit(c, "cart.clear", nil)
	return c.SendStatus(fiber.StatusNoContent)
}
