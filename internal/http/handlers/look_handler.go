package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "ponsiv/internal/log"
	"ponsiv/internal/services"
	"ponsiv/internal/validate"
)

type LookHandler struct {
	Looks *services.LookService
}

func (h *LookHandler) List(c *fiber.Ctx) error {
	looks, err := h.Looks.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(looks)
}

// Create takes a multipart form: title, description, productIDs (comma
// separated) and the cover file.
func (h *LookHandler) Create(c *fiber.Ctx) error {
	in, cover, closeFn, err := lookForm(c)
	if err != nil {
		return err
	}
	defer closeFn()
	look, err := h.Looks.Create(c.UserContext(), in, cover)
	if err != nil {
		return err
	}
	applog.Audit(c, "look.create", map[string]any{"look": look.ID})
	return c.Status(fiber.StatusCreated).JSON(look)
}

// Update accepts the same multipart form as Create, or a JSON body without a cover.
func (h *LookHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "This look is no longer available")
	}
	in, cover, closeFn, err := lookForm(c)
	if err != nil {
		return err
	}
	defer closeFn()
	look, err := h.Looks.Update(c.UserContext(), id, in, cover)
	if err != nil {
		return err
	}
	applog.Audit(c, "look.update", map[string]any{"look": id})
	return c.JSON(look)
}

func (h *LookHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "This look is no longer available")
	}
	if err := h.Looks.Delete(c.UserContext(), id); err != nil {
		return err
	}
	applog.Audit(c, "look.delete", map[string]any{"look": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func lookForm(c *fiber.Ctx) (services.LookInput, io.Reader, func(), error) {
	nop := func() {}
	var in services.LookInput
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, nop, fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		return in, nil, nop, nil
	}
	in.Title = c.FormValue("title")
	if d := c.FormValue("description"); d != "" {
		in.Description = &d
	}
	for _, id := range strings.Split(c.FormValue("productIDs"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			in.ProductIDs = append(in.ProductIDs, id)
		}
	}
	fh, err := c.FormFile("cover")
	if err != nil {
		return in, nil, nop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return in, nil, nop, fiber.NewError(fiber.StatusBadRequest, "unreadable cover")
	}
	return in, f, func() { f.Close() }, nil
}
