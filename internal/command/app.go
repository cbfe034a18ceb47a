package command

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"taskmind/internal/client"
	"taskmind/internal/config"
)

type Deps struct {
	LoadConfig   func() (config.Config, error)
	RunServe     func(context.Context, config.Config) error
	RunMigrateUp func(context.Context, config.Config) error
	NewClient    func(config.Config) TaskClient
	Out          io.Writer
}

func BuildApp(deps Deps) *cli.App {
	return &cli.App{
		Name:  "taskmind",
		Usage: "task list server with AI assistance",
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(deps)
			if err != nil {
				return err
			}
			return runServe(ctx.Context, deps, cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP server",
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(deps)
					if err != nil {
						return err
					}
					return runServe(ctx.Context, deps, cfg)
				},
			},
			{
				Name:  "migrate",
				Usage: "run database migration",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply pending migrations",
						Action: func(ctx *cli.Context) error {
							cfg, err := loadConfig(deps)
							if err != nil {
								return err
							}
							return runMigrateUp(ctx.Context, deps, cfg)
						},
					},
				},
			},
			tasksCommand(deps),
		},
	}
}

func loadConfig(deps Deps) (config.Config, error) {
	if deps.LoadConfig != nil {
		return deps.LoadConfig()
	}
	return config.LoadConfig()
}

func runServe(ctx context.Context, deps Deps, cfg config.Config) error {
	if deps.RunServe == nil {
		return errors.New("serve runner is not configured")
	}
	return deps.RunServe(ctx, cfg)
}

func runMigrateUp(ctx context.Context, deps Deps, cfg config.Config) error {
	if deps.RunMigrateUp == nil {
		return errors.New("migrate up runner is not configured")
	}
	return deps.RunMigrateUp(ctx, cfg)
}

func newClient(deps Deps, cfg config.Config) TaskClient {
	if deps.NewClient != nil {
		return deps.NewClient(cfg)
	}
	return client.New(cfg.ServerURL, nil)
}

func outWriter(deps Deps) io.Writer {
	if deps.Out != nil {
		return deps.Out
	}
	return os.Stdout
}

func joinArgs(ctx *cli.Context) string {
	return strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
}
