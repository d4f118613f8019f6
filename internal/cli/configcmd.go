package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	appconfig "github.com/tmalloy/wayfarer/internal/config"
)

// ConfigCommand returns the configuration commands.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration operations",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (secrets redacted)",
				Action: configShowAction,
			},
		},
	}
}

func configShowAction(ctx *cli.Context) error {
	cfg, err := appconfig.Load(ctx.String("config-file"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("service:        %s (%s, %s)\n", cfg.ServiceName, cfg.Version, cfg.Environment)
	fmt.Printf("chat provider:  %s\n", cfg.ChatProvider)
	fmt.Printf("gemini model:   %s (key %s)\n", cfg.Gemini.Model, redact(cfg.Gemini.APIKey))
	fmt.Printf("openai model:   %s (key %s)\n", cfg.OpenAI.Model, redact(cfg.OpenAI.APIKey))
	fmt.Printf("claude model:   %s (key %s)\n", cfg.Anthropic.Model, redact(cfg.Anthropic.APIKey))
	fmt.Printf("maps key:       %s\n", redact(cfg.Maps.APIKey))
	fmt.Printf("oauth secret:   %s\n", cfg.OAuth.ClientSecretPath)
	fmt.Printf("storage:        %s", cfg.Storage.Backend)
	if cfg.Storage.Backend == "s3" {
		fmt.Printf(" (bucket %s, prefix %q)", cfg.Storage.S3Bucket, cfg.Storage.S3Prefix)
	} else {
		fmt.Printf(" (%s)", cfg.Storage.LocalDir)
	}
	fmt.Println()
	fmt.Printf("logging:        %s/%s\n", cfg.Logging.Level, cfg.Logging.Format)
	fmt.Printf("metrics:        enabled=%t port=%d\n", cfg.Monitoring.MetricsEnabled, cfg.Monitoring.MetricsPort)
	return nil
}

func redact(key string) string {
	if key == "" {
		return "unset"
	}
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
