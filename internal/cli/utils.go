package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/tmalloy/wayfarer/pkg/logger"
)

// getLogger retrieves the logger from the CLI context metadata.
func getLogger(ctx *cli.Context) logger.Logger {
	if ctx.App.Metadata != nil {
		if log, ok := ctx.App.Metadata["logger"].(logger.Logger); ok {
			return log
		}
	}

	return logger.NewLogger(logger.Config{
		Level:   logger.InfoLevel,
		Format:  "text",
		Service: "wayfarer",
	})
}
