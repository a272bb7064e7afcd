package services

import (
	"context"

	"github.com/exoshivam/folio/internal/models"
)

// Session is the part of session.Session the services depend on.
type Session interface {
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*models.User, bool)
	Establish(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
}
