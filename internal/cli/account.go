package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/services"
	"github.com/spf13/cobra"
)

func newSignInCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:     "signin",
		Aliases: []string{"login"},
		Short:   "Sign in with email and password",
		Args:    cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			email, err := getSimpleText(a.reader, "Enter email", a.w)
			if err != nil {
				return err
			}
			password, err := getPassword(a.reader, a.w)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if _, err := a.auth.SignIn(ctx, email, password); err != nil {
				return a.fail(ctx, err, services.AuthErrorMessage(err))
			}
			a.announceLogin(ctx)
			return nil
		}),
	}
}

func newSignUpCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:     "signup",
		Aliases: []string{"register"},
		Short:   "Create an account and sign in",
		Args:    cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			username, err := getSimpleText(a.reader, "Enter username", a.w)
			if err != nil {
				return err
			}
			email, err := getSimpleText(a.reader, "Enter email", a.w)
			if err != nil {
				return err
			}
			password, err := getPassword(a.reader, a.w)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if _, err := a.auth.SignUp(ctx, username, email, password); err != nil {
				return a.fail(ctx, err, services.SignUpErrorMessage(err))
			}
			a.announceLogin(ctx)
			return nil
		}),
	}
}

func newLogoutCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			if err := a.auth.Logout(ctx); err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Notice("Signed out")
			return nil
		}),
	}
}

func newWhoamiCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			u, ok := a.session.CurrentUser(ctx)
			if !ok {
				a.printer.Line("Not signed in")
				return nil
			}
			a.printer.Line(fmt.Sprintf("%s <%s>", u.Username, u.Email))

			info, err := a.session.Inspect(ctx)
			switch {
			case err == nil && !info.ExpiresAt.IsZero():
				if info.Expired(time.Now()) {
					a.printer.Error("Session expired, sign in again")
				} else {
					a.printer.Line("Session valid until " + info.ExpiresAt.Local().Format("2006-01-02 15:04"))
				}
			case errors.Is(err, common.ErrDecode):
				a.log.Warn(ctx, "unreadable token", "error", err)
			}
			return nil
		}),
	}
}

// announceLogin prints the welcome line once per sign-in.
func (a *App) announceLogin(ctx context.Context) {
	if msg, ok := a.session.CheckLogin(ctx); ok {
		a.printer.Notice(msg)
	}
}
