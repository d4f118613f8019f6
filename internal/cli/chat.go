package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tmalloy/wayfarer/internal/models"
	"github.com/tmalloy/wayfarer/internal/store"
	"github.com/tmalloy/wayfarer/internal/tasks"
	"github.com/tmalloy/wayfarer/pkg/logger"
)

// ChatCommand returns the interactive chat command.
func ChatCommand() *cli.Command {
	return &cli.Command{
		Name:   "chat",
		Usage:  "Talk to the travel assistant (type 'exit' to leave)",
		Action: chatAction,
	}
}

func chatAction(ctx *cli.Context) error {
	app, err := buildApplication(ctx)
	if err != nil {
		return err
	}
	defer app.shutdown(ctx.Context)

	identity, err := app.signedInUser(ctx.Context)
	if err != nil {
		return err
	}

	model, err := app.buildChatModel(ctx.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Chatting as %s using %s. Type 'exit' to leave.\n\n", identity.Email, model.Name())

	sess := &session{}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		reply, err := app.askModel(ctx.Context, model, identity, question, sess)
		if err != nil {
			var chatErr *models.ChatError
			if errors.As(err, &chatErr) {
				fmt.Fprintf(os.Stderr, "The %s provider returned an error: %v\n", chatErr.Provider, chatErr.Err)
				continue
			}
			return err
		}

		fmt.Printf("\n%s\n\n", reply)
	}

	return scanner.Err()
}

// askModel runs one chat turn: assemble the prompt, call the model on the
// task runner, persist the exchange and update the session transcript.
func (a *application) askModel(ctx context.Context, model models.ChatModel, identity store.UserIdentity, question string, sess *session) (string, error) {
	prompt := a.buildPrompt(ctx, identity.Email, question, sess.Lines())

	var reply string
	task, err := a.runner.Go(ctx, tasks.KindChat, func(taskCtx context.Context) error {
		var completeErr error
		reply, completeErr = model.Complete(taskCtx, prompt)
		return completeErr
	})
	if err != nil {
		return "", err
	}
	<-task.Done()
	if err := task.Err(); err != nil {
		return "", err
	}

	sess.AddExchange(question, reply)

	data := a.userData.Load(ctx, identity.Email)
	var contextJourney *store.Journey
	if len(data.Journeys) > 0 {
		contextJourney = &data.Journeys[len(data.Journeys)-1].Data
	}
	if err := a.userData.AppendConversation(ctx, identity.Email, reply, contextJourney); err != nil {
		a.log.Error("Failed to record conversation", logger.ErrorField(err))
	}

	return reply, nil
}
