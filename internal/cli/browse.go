package cli

import (
	"context"
	"strings"

	"github.com/exoshivam/folio/internal/models"
	"github.com/exoshivam/folio/internal/services"
	"github.com/spf13/cobra"
)

func newHomeCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the profile, skills and projects",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			a.printer.Home(a.portfolio.Home(ctx))
			return nil
		}),
	}
}

func newExploreCommand(h *holder) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "List every work item, optionally one category",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			items, err := a.portfolio.Explore(ctx, models.Category(category))
			if err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Feed(items)
			return nil
		}),
	}
	cmd.Flags().StringVar(&category, "category", "", "projects, experiments, hackathons, side_ideas or iot_works")
	return cmd
}

func newShowCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one work item with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, args []string) error {
			it, err := a.portfolio.Item(ctx, args[0])
			if err != nil {
				return a.failDefault(ctx, err)
			}
			comments, err := a.engagement.LoadComments(ctx, it.ID)
			if err != nil {
				a.log.Warn(ctx, "comments unavailable", "item", it.ID, "error", err)
			}
			a.printer.Item(*it, comments, a.viewerID(ctx))
			return nil
		}),
	}
}

func newActiveCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "active [query...]",
		Short: "List projects in progress",
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, args []string) error {
			list, err := a.portfolio.ActiveProjects(ctx, strings.Join(args, " "))
			if err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Active(list)
			return nil
		}),
	}
}

func newSearchCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search titles, descriptions, technologies and categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, args []string) error {
			query := strings.Join(args, " ")
			snapshot, err := a.portfolio.Snapshot(ctx)
			if err != nil {
				return a.failDefault(ctx, err)
			}
			if _, err := a.history.Push(ctx, query); err != nil {
				a.log.Warn(ctx, "search history not saved", "error", err)
			}
			a.printer.Feed(services.Search(snapshot, query))
			return nil
		}),
	}
}

func newHistoryCommand(h *holder) *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear recent searches",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, _ []string) error {
			if clear {
				if err := a.history.Clear(ctx); err != nil {
					return a.failDefault(ctx, err)
				}
				a.printer.Notice("Search history cleared")
				return nil
			}
			a.printer.History(a.history.List(ctx))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "forget all recent searches")
	return cmd
}

func newShareCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Print a link to a project on the web front end",
		Args:  cobra.ExactArgs(1),
		RunE: h.run(func(_ context.Context, _ *cobra.Command, a *App, args []string) error {
			a.printer.Line(services.ShareURL(a.config.ShareOrigin, args[0]))
			return nil
		}),
	}
}

func (a *App) viewerID(ctx context.Context) string {
	if u, ok := a.session.CurrentUser(ctx); ok {
		return u.ID
	}
	return ""
}
