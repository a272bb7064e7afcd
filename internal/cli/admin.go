package cli

import (
	"context"
	"fmt"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAdminCommand(h *holder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Edit the profile and projects (sign in first)",
	}
	cmd.AddCommand(
		newProfileEditCommand(h),
		newAddProjectCommand(h),
		newUpdateProjectCommand(h),
		newDeleteProjectCommand(h),
	)
	return cmd
}

func newProfileEditCommand(h *holder) *cobra.Command {
	var in models.Profile
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update profile fields given as flags",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, cmd *cobra.Command, a *App, _ []string) error {
			if !a.isLoggedIn(ctx) {
				return a.failDefault(ctx, common.SignInRequired("edit the profile"))
			}
			current := a.portfolio.Home(ctx).Profile
			if current == nil {
				current = &models.Profile{}
			}
			next := *current
			fs := cmd.Flags()
			set := func(name string, dst *string, v string) {
				if fs.Changed(name) {
					*dst = v
				}
			}
			set("username", &next.Username, in.Username)
			set("full-name", &next.FullName, in.FullName)
			set("bio", &next.Bio, in.Bio)
			set("website", &next.Website, in.Website)
			set("github", &next.GithubURL, in.GithubURL)
			set("avatar", &next.AvatarURL, in.AvatarURL)

			out, err := a.portfolio.UpdateProfile(ctx, next)
			if err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Notice("Profile updated")
			a.printer.Profile(out)
			return nil
		}),
	}
	fs := cmd.Flags()
	fs.StringVar(&in.Username, "username", "", "handle shown on the profile")
	fs.StringVar(&in.FullName, "full-name", "", "display name")
	fs.StringVar(&in.Bio, "bio", "", "short bio")
	fs.StringVar(&in.Website, "website", "", "personal site")
	fs.StringVar(&in.GithubURL, "github", "", "GitHub profile URL")
	fs.StringVar(&in.AvatarURL, "avatar", "", "avatar image URL")
	return cmd
}

// projectFlags binds the editable work item fields.
type projectFlags struct {
	item models.WorkItem
}

func (p *projectFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&p.item.Title, "title", "", "project title")
	fs.StringVar(&p.item.Description, "description", "", "what it is")
	fs.StringVar(&p.item.ProjectURL, "url", "", "repository or demo link")
	fs.StringSliceVar(&p.item.Technologies, "tech", nil, "technologies, comma separated")
	fs.StringSliceVar(&p.item.ImageURLs, "image", nil, "image URLs, comma separated")
	fs.IntVar(&p.item.OrderIndex, "order", 0, "position in listings")
}

// apply copies the flags the user set onto w.
func (p *projectFlags) apply(fs *pflag.FlagSet, w *models.WorkItem) {
	if fs.Changed("title") {
		w.Title = p.item.Title
	}
	if fs.Changed("description") {
		w.Description = p.item.Description
	}
	if fs.Changed("url") {
		w.ProjectURL = p.item.ProjectURL
	}
	if fs.Changed("tech") {
		w.Technologies = p.item.Technologies
	}
	if fs.Changed("image") {
		w.ImageURLs = p.item.ImageURLs
	}
	if fs.Changed("order") {
		w.OrderIndex = p.item.OrderIndex
	}
}

func newAddProjectCommand(h *holder) *cobra.Command {
	var pf projectFlags
	cmd := &cobra.Command{
		Use:   "add-project",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: h.run(func(ctx context.Context, cmd *cobra.Command, a *App, _ []string) error {
			var w models.WorkItem
			pf.apply(cmd.Flags(), &w)
			out, err := a.portfolio.CreateProject(ctx, w)
			if err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Notice(fmt.Sprintf("Created %s [%s]", out.Title, out.ID))
			return nil
		}),
	}
	pf.register(cmd.Flags())
	return cmd
}

func newUpdateProjectCommand(h *holder) *cobra.Command {
	var pf projectFlags
	cmd := &cobra.Command{
		Use:   "update-project <id>",
		Short: "Change fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: h.run(func(ctx context.Context, cmd *cobra.Command, a *App, args []string) error {
			current, err := a.portfolio.Item(ctx, args[0])
			if err != nil {
				return a.failDefault(ctx, err)
			}
			w := current.WorkItem
			pf.apply(cmd.Flags(), &w)
			out, err := a.portfolio.UpdateProject(ctx, args[0], w)
			if err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Notice(fmt.Sprintf("Updated %s [%s]", out.Title, out.ID))
			return nil
		}),
	}
	pf.register(cmd.Flags())
	return cmd
}

func newDeleteProjectCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-project <id>",
		Short: "Remove a project",
		Args:  cobra.ExactArgs(1),
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, args []string) error {
			if err := a.portfolio.DeleteProject(ctx, args[0]); err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Notice("Deleted " + args[0])
			return nil
		}),
	}
}
