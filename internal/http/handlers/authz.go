package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ponsiv/internal/domain"
	applog "ponsiv/internal/log"
	"ponsiv/internal/services"
)

// RequireUser rejects the request with 401 unless a session user exists.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := auth.Current(c.UserContext())
		if err != nil {
			return err
		}
		if u == nil {
			applog.Security(c, "access.denied.session", nil)
			return domain.ErrMissingSession
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
