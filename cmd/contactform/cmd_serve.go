package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/internal/server"
	"github.com/goliatone/go-contactform/internal/session"
	"github.com/goliatone/go-contactform/pkg/engine"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

type ServeCmd struct {
	env       *Env
	addr      string
	serverURL string
}

func NewServeCmd(env *Env) *ServeCmd {
	return &ServeCmd{env: env}
}

func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the form page and JSON API",
		UsageText: "contactform serve [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (overrides server.addr)",
				Destination: &cmd.addr,
			},
			&cli.StringFlag{
				Name:        "server-url",
				Usage:       "public base URL listed in /openapi.json",
				Sources:     cli.EnvVars("CONTACTFORM_SERVER_URL"),
				Destination: &cmd.serverURL,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.env.Config
	log := logging.Component(cmd.env.Log, "serve")

	form, err := contactform.LoadForm(cfg.Layout, cfg.FormID)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.New(cfg.Server.SessionTTL,
		func() *engine.Engine { return contactform.NewEngine(form) },
		session.WithOnEvicted(func(id string) {
			log.Debug().Str("session", id).Msg("session expired")
		}),
	)
	go store.Run(ctx, time.Minute)

	styles := vanilla.WithStylesheet("/assets/" + vanilla.StylesheetName)
	if cfg.Server.DefaultStyles {
		styles = vanilla.WithDefaultStyles()
	}
	renderer, err := vanilla.New(styles)
	if err != nil {
		return err
	}

	doc, err := openapi.MarshalJSON(form, openapi.ExportOptions{
		Title:     form.Title,
		Version:   version,
		ServerURL: cmd.serverURL,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(form, store, renderer,
		server.WithLogger(logging.Component(cmd.env.Log, "http")),
		server.WithCookieName(cfg.Server.CookieName),
		server.WithCSRFField(cfg.Server.CSRFField),
		server.WithCookieMaxAge(cfg.Server.SessionTTL),
		server.WithOpenAPI(doc),
		server.WithAssets(http.FS(contactform.AssetsFS())),
	)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if cmd.addr != "" {
		addr = cmd.addr
	}
	log.Info().Str("form", form.ID).Int("fields", len(form.Fields)).Msg("form mounted")
	return srv.Serve(ctx, addr, cfg.Server.ShutdownGrace)
}
