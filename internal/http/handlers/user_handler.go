package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ponsiv/internal/services"
)

type UserHandler struct {
	Auth *services.AuthService
}

// List returns every account; password hashes never leave the server.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Auth.Accounts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}
