package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "ponsiv/internal/log"
	"ponsiv/internal/services"
	"ponsiv/internal/validate"
)

type EngagementHandler struct {
	Eng *services.EngagementService
}

func (h *EngagementHandler) Likes(c *fiber.Ctx) error {
	ids, err := h.Eng.Liked(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ids)
}

func (h *EngagementHandler) ToggleLike(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	on, err := h.Eng.ToggleLike(c.UserContext(), id)
	if err != nil {
		return err
	}
	applog.Audit(c, "like.toggle", map[string]any{"id": id, "liked": on})
	return c.JSON(fiber.Map{"id": id, "liked": on})
}

func (h *EngagementHandler) Wardrobe(c *fiber.Ctx) error {
	ps, err := h.Eng.Wardrobe(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ps)
}

func (h *EngagementHandler) ToggleWardrobe(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	in, err := h.Eng.ToggleWardrobe(c.UserContext(), id)
	if err != nil {
		return err
	}
	applog.Audit(c, "wardrobe.toggle", map[string]any{"id": id, "saved": in})
	return c.JSON(fiber.Map{"id": id, "saved": in})
}
