package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/exoshivam/folio/internal/models"
	"github.com/spf13/cobra"
)

func newLikeCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>",
		Short: "Like an item, or unlike it if already liked",
		Args:  cobra.ExactArgs(1),
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, args []string) error {
			res, err := a.engagement.ToggleLike(ctx, args[0])
			if err != nil {
				return a.failDefault(ctx, err)
			}
			verb := "Unliked"
			if res.Liked {
				verb = "Liked"
			}
			n, ok := a.engagement.LikeCount(args[0])
			if !ok {
				n = res.Likes
			}
			a.printer.Notice(fmt.Sprintf("%s %s · %d likes", verb, args[0], n))
			return nil
		}),
	}
}

func newCommentsCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "comments <id>",
		Short: "List comments on an item, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, args []string) error {
			list, err := a.engagement.LoadComments(ctx, args[0])
			if err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Comments(list, a.viewerID(ctx))
			return nil
		}),
	}
}

func newCommentCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text...>",
		Short: "Post a comment (sign in first)",
		Args:  cobra.MinimumNArgs(1),
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, args []string) error {
			text := strings.Join(args[1:], " ")
			c, err := a.engagement.PostComment(ctx, args[0], text)
			if err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Notice("Comment posted")
			a.printer.Comments([]models.Comment{*c}, c.AuthorID)
			return nil
		}),
	}
}

func newUncommentCommand(h *holder) *cobra.Command {
	return &cobra.Command{
		Use:   "uncomment <item-id> <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: h.run(func(ctx context.Context, _ *cobra.Command, a *App, args []string) error {
			itemID, commentID := args[0], args[1]
			if a.isLoggedIn(ctx) {
				// refresh so authorship is checked before the request
				if _, err := a.engagement.LoadComments(ctx, itemID); err != nil {
					a.log.Warn(ctx, "comments unavailable", "item", itemID, "error", err)
				}
			}
			if err := a.engagement.DeleteComment(ctx, itemID, commentID); err != nil {
				return a.failDefault(ctx, err)
			}
			a.printer.Notice("Comment deleted")
			a.printer.Comments(a.engagement.CachedComments(itemID), a.viewerID(ctx))
			return nil
		}),
	}
}
