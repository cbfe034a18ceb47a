package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"taskmind/internal/output"
	"taskmind/internal/task"
)

// TaskClient is the HTTP API as seen by the tasks subcommands.
type TaskClient interface {
	ListTasks(ctx context.Context, status string) ([]task.Task, error)
	CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error)
	UpdateStatus(ctx context.Context, id, status string) (task.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Summarize(ctx context.Context) (string, error)
	SuggestPriority(ctx context.Context, description string) (task.Priority, error)
	AutocompleteDescription(ctx context.Context, title string) (string, error)
}

func tasksCommand(deps Deps) *cli.Command {
	serverFlag := &cli.StringFlag{Name: "server", Usage: "server base URL (defaults to TASKMIND_SERVER_URL)"}
	return &cli.Command{
		Name:  "tasks",
		Usage: "manage tasks on a running server",
		Flags: []cli.Flag{serverFlag},
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list tasks, newest first",
				Flags: []cli.Flag{&cli.StringFlag{Name: "status", Usage: "pending, in_progress or completed"}},
				Action: withClient(deps, func(ctx *cli.Context, c TaskClient) error {
					tasks, err := c.ListTasks(ctx.Context, ctx.String("status"))
					if err != nil {
						return err
					}
					output.FormatTasks(outWriter(deps), tasks)
					return nil
				}),
			},
			{
				Name:  "add",
				Usage: "create a task",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "status"},
					&cli.StringFlag{Name: "priority"},
					&cli.BoolFlag{Name: "auto-description", Usage: "ask the model for a description when none is given"},
					&cli.BoolFlag{Name: "auto-priority", Usage: "ask the model for a priority when none is given"},
				},
				Action: withClient(deps, runAdd(deps)),
			},
			{
				Name:      "status",
				Usage:     "change the status of a task",
				ArgsUsage: "<id> <status>",
				Action: withClient(deps, func(ctx *cli.Context, c TaskClient) error {
					if ctx.NArg() < 2 {
						return errors.New("usage: taskmind tasks status <id> <status>")
					}
					id := ctx.Args().Get(0)
					status := strings.Join(ctx.Args().Slice()[1:], " ")
					updated, err := c.UpdateStatus(ctx.Context, id, status)
					if err != nil {
						return err
					}
					output.FormatTask(outWriter(deps), updated)
					return nil
				}),
			},
			{
				Name:      "rm",
				Usage:     "delete a task",
				ArgsUsage: "<id>",
				Action: withClient(deps, func(ctx *cli.Context, c TaskClient) error {
					id := ctx.Args().First()
					if id == "" {
						return errors.New("usage: taskmind tasks rm <id>")
					}
					if err := c.DeleteTask(ctx.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(outWriter(deps), "deleted %s\n", id)
					return nil
				}),
			},
			{
				Name:  "summarize",
				Usage: "summarize pending tasks",
				Action: withClient(deps, func(ctx *cli.Context, c TaskClient) error {
					summary, err := c.Summarize(ctx.Context)
					if err != nil {
						return err
					}
					output.FormatSummary(outWriter(deps), summary)
					return nil
				}),
			},
			{
				Name:      "suggest-priority",
				Usage:     "suggest a priority for a description",
				ArgsUsage: "<description>",
				Action: withClient(deps, func(ctx *cli.Context, c TaskClient) error {
					priority, err := c.SuggestPriority(ctx.Context, joinArgs(ctx))
					if err != nil {
						return err
					}
					fmt.Fprintln(outWriter(deps), priority)
					return nil
				}),
			},
			{
				Name:      "autocomplete",
				Usage:     "write a description for a title",
				ArgsUsage: "<title>",
				Action: withClient(deps, func(ctx *cli.Context, c TaskClient) error {
					description, err := c.AutocompleteDescription(ctx.Context, joinArgs(ctx))
					if err != nil {
						return err
					}
					fmt.Fprintln(outWriter(deps), description)
					return nil
				}),
			},
		},
	}
}

func withClient(deps Deps, fn func(*cli.Context, TaskClient) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := loadConfig(deps)
		if err != nil {
			return err
		}
		if server := strings.TrimSpace(ctx.String("server")); server != "" {
			cfg.ServerURL = server
		}
		return fn(ctx, newClient(deps, cfg))
	}
}

func runAdd(deps Deps) func(*cli.Context, TaskClient) error {
	return func(ctx *cli.Context, c TaskClient) error {
		in := task.CreateInput{
			Title:       ctx.String("title"),
			Description: ctx.String("description"),
			Status:      ctx.String("status"),
			Priority:    ctx.String("priority"),
		}
		if strings.TrimSpace(in.Description) == "" && ctx.Bool("auto-description") {
			description, err := c.AutocompleteDescription(ctx.Context, in.Title)
			if err != nil {
				return err
			}
			in.Description = description
		}
		if strings.TrimSpace(in.Priority) == "" && ctx.Bool("auto-priority") && strings.TrimSpace(in.Description) != "" {
			priority, err := c.SuggestPriority(ctx.Context, in.Description)
			if err != nil {
				return err
			}
			in.Priority = string(priority)
		}
		created, err := c.CreateTask(ctx.Context, in)
		if err != nil {
			return err
		}
		output.FormatTask(outWriter(deps), created)
		return nil
	}
}
