package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"ponsiv/internal/catalog"
	"ponsiv/internal/config"
	"ponsiv/internal/domain"
	"ponsiv/internal/http/handlers"
	applog "ponsiv/internal/log"
	"ponsiv/internal/media"
	"ponsiv/internal/repos"
	"ponsiv/internal/services"
)

// appEnv holds everything a command needs; close releases it.
type appEnv struct {
	cfg   config.Config
	repos *repos.Repos
	close func()
}

func setup(c *cli.Context) (*appEnv, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	logCloser, err := applog.Init(applog.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, File: cfg.LogFile})
	if err != nil {
		log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
	}

	st, err := repos.OpenStore(c.Context, cfg.Backend, cfg.StateDir, cfg.DBDSN)
	if err != nil {
		logCloser.Close()
		return nil, errors.Wrap(err, "open store")
	}
	products := repos.NewProductRepo(st, catalog.NewLoader(cfg.CatalogDir))
	return &appEnv{
		cfg:   cfg,
		repos: repos.New(st, products, repos.NewPasswordHasher(cfg.BcryptCost)),
		close: func() {
			if err := st.Close(); err != nil {
				applog.L().Error().Err(err).Msg("store.close.fail")
			}
			logCloser.Close()
		},
	}, nil
}

func serve(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()

	photos := media.NewPhotoStore(rt.cfg.MediaDir)
	deps := handlers.NewDeps(rt.repos, photos)
	app := handlers.NewApp(deps, handlers.AppConfig{
		CatalogDir: rt.cfg.CatalogDir,
		MediaDir:   rt.cfg.MediaDir,
		AccessLog:  true,
	})
	log.Printf("[static] /assets -> %s", rt.cfg.CatalogDir)
	log.Printf("[static] /media  -> %s", rt.cfg.MediaDir)

	// Warm the catalog so the first request does not pay for the scan.
	if _, err := rt.repos.Products.Products(c.Context); err != nil {
		applog.L().Warn().Err(err).Str("dir", rt.cfg.CatalogDir).Msg("catalog.warmup.fail")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()
	return app.Listen(":" + rt.cfg.Port)
}

func printCatalog(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()
	ps, err := rt.repos.Products.Products(c.Context)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, ps)
}

func signup(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()
	auth := services.NewAuthService(rt.repos.Users, nil)
	u, err := auth.SignUp(c.Context, domain.CreateUserRequest{
		Email:    c.String("email"),
		Password: c.String("password"),
		Name:     c.String("name"),
		Handle:   c.String("handle"),
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("signup failed: %v", err), 1)
	}
	fmt.Fprintf(c.App.Writer, "created %s (%s)\n", u.Email, u.ID)
	return nil
}

func listUsers(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()
	users, err := rt.repos.Users.All(c.Context)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, users)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ponsiv",
		Usage: "local data service for the Ponsiv shop",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a ponsiv.yaml", EnvVars: []string{"PONSIV_CONFIG"}},
		},
		Action: serve,
		Commands: []*cli.Command{
			{Name: "serve", Usage: "run the JSON API", Action: serve},
			{Name: "catalog", Usage: "print the scanned catalog as JSON", Action: printCatalog},
			{
				Name:  "signup",
				Usage: "create an account and make it the current session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "handle", Required: true},
				},
				Action: signup,
			},
			{Name: "users", Usage: "list accounts as JSON", Action: listUsers},
		},
	}
}

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
