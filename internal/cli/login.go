package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tmalloy/wayfarer/pkg/logger"
)

// LoginCommand returns the command that signs the user in.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Sign in with Google",
		Action: loginAction,
	}
}

func loginAction(ctx *cli.Context) error {
	app, err := buildApplication(ctx)
	if err != nil {
		return err
	}
	defer app.shutdown(ctx.Context)

	identity, err := app.signedInUser(ctx.Context)
	if err != nil {
		app.log.Error("Login failed", logger.ErrorField(err))
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Signed in as %s <%s>\n", identity.Name, identity.Email)
	return nil
}

// LogoutCommand returns the command that clears the stored token.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out and discard the stored token",
		Action: logoutAction,
	}
}

func logoutAction(ctx *cli.Context) error {
	app, err := buildApplication(ctx)
	if err != nil {
		return err
	}
	defer app.shutdown(ctx.Context)

	if err := app.auth.Logout(ctx.Context); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	fmt.Println("Signed out.")
	return nil
}
