package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ponsiv/internal/domain"
	"ponsiv/internal/log"
	"ponsiv/internal/services"
	"ponsiv/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req domain.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	u, err := h.Auth.SignUp(c.UserContext(), req)
	if err != nil {
		log.Security(c, "auth.signup.fail", map[string]any{"email": req.Email, "reason": err.Error()})
		return err
	}
	log.Audit(c, "auth.signup.success", map[string]any{"user": u.ID.String()})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if _, ok := validate.Email(req.Email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return domain.ErrInvalidCredentials
	}
	u, err := h.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return err
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(u)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.Logout(c.UserContext()); err != nil {
		return err
	}
	log.Audit(c, "auth.logout", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// Avatar takes a multipart "image" upload.
func (h *AuthHandler) Avatar(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing image")
	}
	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable image")
	}
	defer f.Close()
	u, err := h.Auth.UpdateAvatar(c.UserContext(), f)
	if err != nil {
		return err
	}
	log.Audit(c, "user.avatar.update", map[string]any{"user": u.ID.String()})
	return c.JSON(u)
}
