package cli

import (
	"context"
	"errors"
	"io"

	"github.com/exoshivam/folio/internal/models"
	"github.com/exoshivam/folio/internal/services"
	"github.com/spf13/cobra"
)

func newThemeCommand(h *holder) *cobra.Command {
	var (
		dark, light, toggle bool
		accent              string
	)
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change dark mode and the accent color",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			var err error
			switch {
			case dark:
				err = a.prefs.SetDarkMode(ctx, true)
			case light:
				err = a.prefs.SetDarkMode(ctx, false)
			case toggle:
				_, err = a.prefs.ToggleDarkMode(ctx)
			}
			if err == nil && accent != "" {
				err = a.prefs.SetAccent(ctx, models.AccentColor(accent))
			}
			if err != nil {
				return a.failDefault(ctx, err)
			}

			pref := a.prefs.Theme(ctx)
			a.printer.SetTheme(pref)
			a.printer.Theme(pref)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&dark, "dark", false, "switch to dark mode")
	cmd.Flags().BoolVar(&light, "light", false, "switch to light mode")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "flip between dark and light")
	cmd.Flags().StringVar(&accent, "accent", "", "orange, pink or blue")
	cmd.MarkFlagsMutuallyExclusive("dark", "light", "toggle")
	return cmd
}

func newContactCommand(h *holder) *cobra.Command {
	var msg models.ContactMessage
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the portfolio owner",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			if err := a.promptContact(&msg); err != nil {
				return err
			}
			if err := a.contact.Submit(ctx, msg); err != nil {
				return a.fail(ctx, err, services.ContactErrorMessage(err))
			}
			a.printer.Notice("Message sent! I'll get back to you soon.")
			return nil
		}),
	}
	cmd.Flags().StringVar(&msg.Name, "name", "", "your name")
	cmd.Flags().StringVar(&msg.Email, "email", "", "reply address")
	cmd.Flags().StringVar(&msg.Subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&msg.Message, "message", "", "message body")
	return cmd
}

// promptContact asks for any field not given as a flag. EOF leaves the
// field blank so validation reports it.
func (a *App) promptContact(msg *models.ContactMessage) error {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &msg.Name},
		{"Email", &msg.Email},
		{"Subject", &msg.Subject},
	}
	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		v, err := getSimpleText(a.reader, f.prompt, a.w)
		if err != nil && !isEOF(err) {
			return err
		}
		*f.dst = v
	}
	if msg.Message == "" {
		v, err := getMultiline(a.reader, "Message", a.w)
		if err != nil && !isEOF(err) {
			return err
		}
		msg.Message = v
	}
	return nil
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
