package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ponsiv/internal/services"
	"ponsiv/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List serves the feed; q, brand and category narrow it.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var f services.Filter
	if raw := c.Query("q"); raw != "" {
		q, ok := validate.Q(raw)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "invalid search query")
		}
		f.Q = q
	}
	f.Brand, _ = validate.NonEmpty(c.Query("brand"))
	f.Category, _ = validate.NonEmpty(c.Query("category"))

	items, err := h.Catalog.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "This item is no longer available")
	}
	p, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}
