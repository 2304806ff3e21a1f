package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/tasktracker/internal/config"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/phrazzld/tasktracker/internal/platform/migrations"
	"github.com/urfave/cli/v3"
)

// newRootCommand returns the top-level CLI command. Without a subcommand it
// runs the server.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasktracker",
		Usage: "Task tracking HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an optional config file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a dotenv file loaded before reading the environment",
				Value: config.DefaultEnvFile,
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
			newConfigCommand(),
		},
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API",
		Action: runServe,
	}
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Manage the schema of a PostgreSQL or SQLite task store",
		ArgsUsage: "[up|down|reset|status|version]",
		Action:    runMigrate,
	}
}

func newConfigCommand() *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "Print the effective configuration as YAML",
		Action: runConfig,
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile: cmd.String("config"),
		EnvFile:    cmd.String("env-file"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadRuntime loads configuration and installs the logger.
func loadRuntime(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("store", storeKind(cfg.Database.URL)))
	return cfg, log, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func runMigrate(ctx context.Context, cmd *cli.Command) error {
	command := migrations.CommandUp
	if cmd.Args().Present() {
		command = cmd.Args().First()
	}

	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	return migrateStore(ctx, cfg.Database, command, log)
}

func runConfig(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	return config.WriteYAML(out, cfg)
}
