package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// HistoryCommand returns the journey history commands.
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Journey history operations",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Show your journeys, newest first",
				Action: historyListAction,
			},
			{
				Name:   "clear",
				Usage:  "Delete your journey and conversation history",
				Action: historyClearAction,
			},
		},
	}
}

func historyListAction(ctx *cli.Context) error {
	app, err := buildApplication(ctx)
	if err != nil {
		return err
	}
	defer app.shutdown(ctx.Context)

	identity, err := app.signedInUser(ctx.Context)
	if err != nil {
		return err
	}

	journeys := app.userData.ListJourneysDesc(ctx.Context, identity.Email)
	if len(journeys) == 0 {
		fmt.Println("No journeys recorded yet.")
		return nil
	}

	for _, record := range journeys {
		fmt.Printf("%s  %s → %s (%s, %s)\n",
			record.Timestamp,
			record.Data.Origin, record.Data.Destination,
			record.Data.Mode, record.Data.Duration)
	}
	return nil
}

func historyClearAction(ctx *cli.Context) error {
	app, err := buildApplication(ctx)
	if err != nil {
		return err
	}
	defer app.shutdown(ctx.Context)

	identity, err := app.signedInUser(ctx.Context)
	if err != nil {
		return err
	}

	if err := app.userData.Clear(ctx.Context, identity.Email); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Println("History cleared.")
	return nil
}
