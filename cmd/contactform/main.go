package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/logging"
)

// Populated at build time via -ldflags.
var (
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

// Flags holds the global options shared by every subcommand.
type Flags struct {
	ConfigPath string
	EnvFile    string
	LogLevel   string
	LogFile    string
	Layout     string
	FormID     string
}

// Env is the state prepared in Before and handed to subcommands.
type Env struct {
	Config *config.Config
	Log    zerolog.Logger
}

func main() {
	var (
		flags     = &Flags{}
		env       = &Env{Log: zerolog.Nop()}
		logCloser = func() {}
	)

	app := &cli.Command{
		Name:      "contactform",
		Usage:     "Validate, serve, and echo a contact form",
		UsageText: "contactform [global options] command [command options]",
		Version:   build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to YAML config file",
				Sources:     cli.EnvVars("CONTACTFORM_CONFIG"),
				Value:       "contactform.yaml",
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "dotenv file loaded before the config",
				Value:       ".env",
				Destination: &flags.EnvFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error)",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "write logs to file instead of stdout",
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "layout",
				Usage:       "layout file or directory (embedded contact form when empty)",
				Destination: &flags.Layout,
			},
			&cli.StringFlag{
				Name:        "form",
				Usage:       "form id to mount from the layout",
				Destination: &flags.FormID,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := config.LoadEnv(flags.EnvFile); err != nil {
				return ctx, fmt.Errorf("load env: %w", err)
			}
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, err
			}
			flags.apply(c, cfg)
			if err := cfg.Validate(); err != nil {
				return ctx, fmt.Errorf("config: invalid flags: %w", err)
			}

			logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logCloser = closer
			env.Config = cfg
			env.Log = logger
			return ctx, nil
		},
		After: func(context.Context, *cli.Command) error {
			logCloser()
			return nil
		},
	}

	app = NewServeCmd(env).Register(app)
	app = NewPromptCmd(env).Register(app)
	app = NewRenderCmd(env).Register(app)
	app = NewOpenAPICmd(env).Register(app)

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "contactform: %v\n", err)
		os.Exit(1)
	}
}

// apply lets explicit global flags win over the file and environment.
func (f *Flags) apply(c *cli.Command, cfg *config.Config) {
	if c.IsSet("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if c.IsSet("log-file") {
		cfg.Log.File = f.LogFile
	}
	if c.IsSet("layout") {
		cfg.Layout = f.Layout
	}
	if c.IsSet("form") {
		cfg.FormID = f.FormID
	}
}
