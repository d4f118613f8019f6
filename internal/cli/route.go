package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tmalloy/wayfarer/internal/directions"
	"github.com/tmalloy/wayfarer/internal/store"
	"github.com/tmalloy/wayfarer/internal/tasks"
	"github.com/tmalloy/wayfarer/pkg/logger"
)

// RouteCommand returns the command that looks up directions and records
// them in the journey history.
func RouteCommand() *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "Look up directions and save them to your journey history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "Origin address", Required: true},
			&cli.StringFlag{Name: "to", Usage: "Destination address", Required: true},
			&cli.StringFlag{Name: "mode", Usage: "Travel mode (driving, walking, bicycling, transit)", Value: "driving"},
			&cli.TimestampFlag{Name: "depart", Usage: "Departure time (RFC3339); default now", Layout: time.RFC3339},
		},
		Action: routeAction,
	}
}

func routeAction(ctx *cli.Context) error {
	app, err := buildApplication(ctx)
	if err != nil {
		return err
	}
	defer app.shutdown(ctx.Context)

	identity, err := app.signedInUser(ctx.Context)
	if err != nil {
		return err
	}

	client, err := app.buildDirectionsClient()
	if err != nil {
		return err
	}

	var departure time.Time
	if t := ctx.Timestamp("depart"); t != nil {
		departure = *t
	}

	var journey store.Journey
	task, err := app.runner.Go(ctx.Context, tasks.KindRoute, func(taskCtx context.Context) error {
		var fetchErr error
		journey, fetchErr = client.Fetch(taskCtx, ctx.String("from"), ctx.String("to"), ctx.String("mode"), departure)
		return fetchErr
	})
	if err != nil {
		return err
	}
	<-task.Done()

	if err := task.Err(); err != nil {
		if errors.Is(err, directions.ErrNoRouteFound) {
			return fmt.Errorf("no route found between %q and %q", ctx.String("from"), ctx.String("to"))
		}
		return err
	}

	if err := app.userData.AppendJourney(ctx.Context, identity.Email, journey); err != nil {
		app.log.Error("Failed to record journey", logger.ErrorField(err))
		return err
	}

	printJourney(journey)
	return nil
}

func printJourney(j store.Journey) {
	fmt.Printf("%s → %s (%s)\n", j.Origin, j.Destination, j.Mode)
	fmt.Printf("  Duration: %s", j.Duration)
	if j.DurationInTraffic != "N/A" {
		fmt.Printf(" (%s in traffic)", j.DurationInTraffic)
	}
	fmt.Printf("\n  Distance: %s\n\n", j.Distance)

	for _, step := range j.Steps {
		fmt.Printf("  %d. %s (%s, %s)\n", step.Step, step.Instruction, step.Distance, step.Duration)
	}
}
