package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	commands "github.com/tmalloy/wayfarer/internal/cli"
	"github.com/tmalloy/wayfarer/pkg/logger"
)

func main() {
	// A missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "wayfarer",
		Usage:   "Travel planning assistant with journey history and AI chat",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "config-file",
				Value:   "",
				Usage:   "Path to configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Before: func(ctx *cli.Context) error {
			log := logger.NewLogger(logger.Config{
				Level:   logger.ParseLevel(ctx.String("log-level")),
				Format:  "text",
				Service: "wayfarer",
			})

			ctx.App.Metadata = map[string]interface{}{
				"logger": log,
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.LoginCommand(),
			commands.LogoutCommand(),
			commands.RouteCommand(),
			commands.ChatCommand(),
			commands.HistoryCommand(),
			commands.ConfigCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
