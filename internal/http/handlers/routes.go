package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "ponsiv/internal/log"
)

const (
	CSRFCookie = "csrf_"
	CSRFHeader = "X-Csrf-Token"
)

type AppConfig struct {
	CatalogDir string
	MediaDir   string
	BodyLimit  int // bytes; uploads are photos
	RateMax    int // requests per minute per IP
	LoginMax   int // login attempts per 10 minutes per IP
	AccessLog  bool
}

func (c AppConfig) withDefaults() AppConfig {
	if c.BodyLimit <= 0 {
		c.BodyLimit = 8 << 20
	}
	if c.RateMax <= 0 {
		c.RateMax = 120
	}
	if c.LoginMax <= 0 {
		c.LoginMax = 5
	}
	return c
}

// NewApp builds the Fiber app with middleware and every route.
func NewApp(d *Deps, cfg AppConfig) *fiber.App {
	cfg = cfg.withDefaults()
	app := fiber.New(fiber.Config{
		AppName:      "ponsiv",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "same-site"}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateMax,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/assets/") || strings.HasPrefix(p, "/media/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:" + CSRFHeader,
		CookieName:     CSRFCookie,
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Security check failed. Please refresh and try again."})
		},
	}))

	// ---------- Static files ----------
	app.Get("/assets/*", GuardedFiles(cfg.CatalogDir, "assets.traversal.block"))
	app.Get("/media/*", GuardedFiles(cfg.MediaDir, "media.traversal.block"))

	// ---------- API ----------
	api := app.Group("/api/v1")
	api.Get("/csrf", func(c *fiber.Ctx) error {
		tok, _ := c.Locals("csrf").(string)
		return c.JSON(fiber.Map{"token": tok})
	})

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/looks", d.LookHandler.List)

	api.Post("/auth/signup", d.AuthHandler.SignUp)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        cfg.LoginMax,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	api.Post("/auth/logout", d.AuthHandler.Logout)

	requireUser := RequireUser(d.Auth)
	api.Get("/me", requireUser, d.AuthHandler.Me)
	api.Post("/me/avatar", requireUser, d.AuthHandler.Avatar)
	api.Get("/users", requireUser, d.UserHandler.List)

	api.Get("/likes", requireUser, d.EngagementHandler.Likes)
	api.Post("/likes/:id", requireUser, d.EngagementHandler.ToggleLike)
	api.Get("/wardrobe", requireUser, d.EngagementHandler.Wardrobe)
	api.Post("/wardrobe/:id", requireUser, d.EngagementHandler.ToggleWardrobe)

	api.Get("/cart", requireUser, d.CartHandler.View)
	api.Post("/cart", requireUser, d.CartHandler.Add)
	api.Delete("/cart/:id", requireUser, d.CartHandler.Remove)
	api.Delete("/cart", requireUser, d.CartHandler.Clear)

	api.Get("/orders", requireUser, d.OrderHandler.History)
	api.Post("/orders", requireUser, d.OrderHandler.Place)

	api.Post("/looks", requireUser, d.LookHandler.Create)
	api.Put("/looks/:id", requireUser, d.LookHandler.Update)
	api.Delete("/looks/:id", requireUser, d.LookHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Page not found"})
	})
	return app
}
