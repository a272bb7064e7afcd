package gateway

import (
	"context"

	"github.com/exoshivam/folio/internal/models"
)

// Client is the transport-agnostic contract of the portfolio REST API.
type Client interface {
	Profile(ctx context.Context) (*models.Profile, error)
	Skills(ctx context.Context) ([]models.Skill, error)
	Projects(ctx context.Context) ([]models.WorkItem, error)
	Explore(ctx context.Context) (models.ExploreFeed, error)
	ActiveProjects(ctx context.Context) ([]models.ActiveProject, error)

	ToggleLike(ctx context.Context, itemID string, action models.LikeAction) (*models.WorkItem, error)
	Comments(ctx context.Context, itemID string) ([]models.Comment, error)
	PostComment(ctx context.Context, itemID string, c models.NewComment) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID string) error

	SignIn(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignUp(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)

	SubmitContact(ctx context.Context, msg models.ContactMessage) error

	UpdateProfile(ctx context.Context, p models.Profile) (*models.Profile, error)
	CreateProject(ctx context.Context, w models.WorkItem) (*models.WorkItem, error)
	UpdateProject(ctx context.Context, id string, w models.WorkItem) (*models.WorkItem, error)
	DeleteProject(ctx context.Context, id string) error
}
