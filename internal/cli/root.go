package cli

import (
	"context"
	"io"

	"github.com/exoshivam/folio/internal/config"
	"github.com/spf13/cobra"
)

// holder lazily builds the App on the first command that needs it, so
// "help" works without touching storage.
type holder struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	app    *App
}

func (h *holder) ensure(cmd *cobra.Command) (*App, error) {
	if h.app != nil {
		return h.app, nil
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	a, err := NewApp(cmd.Context(), cfg, h.in, h.out, h.errOut)
	if err != nil {
		return nil, err
	}
	h.app = a
	return a, nil
}

func (h *holder) close() error {
	if h.app == nil {
		return nil
	}
	err := h.app.Close()
	h.app = nil
	return err
}

type runFunc func(ctx context.Context, cmd *cobra.Command, a *App, args []string) error

func (h *holder) run(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := h.ensure(cmd)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), cmd, a, args)
	}
}

// Version is reported by --version.
var Version = "dev"

// Execute runs the folio command line with args (without the program name).
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	h := &holder{in: in, out: out, errOut: errOut}
	defer h.close()

	root := newRootCommand(h, true)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(h *holder, withShell bool) *cobra.Command {
	root := &cobra.Command{
		Use:           "folio",
		Short:         "Browse, like and discuss a developer portfolio from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())
	root.SetIn(h.in)
	root.SetOut(h.out)
	root.SetErr(h.errOut)

	root.AddCommand(
		newHomeCommand(h),
		newExploreCommand(h),
		newShowCommand(h),
		newActiveCommand(h),
		newSearchCommand(h),
		newHistoryCommand(h),
		newShareCommand(h),
		newLikeCommand(h),
		newCommentsCommand(h),
		newCommentCommand(h),
		newUncommentCommand(h),
		newSignInCommand(h),
		newSignUpCommand(h),
		newLogoutCommand(h),
		newWhoamiCommand(h),
		newThemeCommand(h),
		newContactCommand(h),
		newAdminCommand(h),
	)
	if withShell {
		root.AddCommand(newShellCommand(h))
	}
	return root
}
