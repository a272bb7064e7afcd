package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newShellCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			runREPL(ctx, h, a)
			return nil
		}),
	}
}

// runREPL reads one command per line and runs it against the shared App.
// The loop ends on EOF, "exit" or "quit", or when ctx is cancelled.
// Command errors are printed and never stop the loop.
func runREPL(ctx context.Context, h *holder, a *App) {
	a.announceLogin(ctx)
	for ctx.Err() == nil {
		fmt.Fprint(a.w, a.prompt(ctx))
		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			a.log.Warn(ctx, "read command", "error", err)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				fmt.Fprintln(a.w)
				return
			}
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			a.printer.Line("Bye!")
			return
		case "shell":
			a.printer.Error("Already in the shell")
			continue
		}

		root := newRootCommand(h, false)
		root.SetArgs(parts)
		if cerr := root.ExecuteContext(ctx); cerr != nil && !IsReported(cerr) {
			a.printer.Error(cerr.Error())
		}
		a.announceLogin(ctx)

		if err != nil {
			return
		}
	}
}

func (a *App) prompt(ctx context.Context) string {
	if u, ok := a.session.CurrentUser(ctx); ok {
		return fmt.Sprintf("folio (%s) > ", u.Username)
	}
	return "folio > "
}
