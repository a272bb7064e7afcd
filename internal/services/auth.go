package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/gateway"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
)

const (
	authFailedMessage   = "Authentication failed"
	authNetworkMessage  = "Network error. Please try again."
	signUpFailedMessage = "Registration failed"
)

// AuthService signs users in and out against the API and keeps the
// resulting session in the local store.
//
// Contract:
//   - SignIn/SignUp: validate input locally, call the API, then establish
//     the session with both token and user or not at all.
//   - Logout: clear the session.
//
// Passwords are wiped from memory once sent.
type AuthService interface {
	SignIn(ctx context.Context, email string, password []byte) (*models.User, error)
	SignUp(ctx context.Context, username, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client  gateway.Client
	session Session
	log     logging.Logger
}

func NewAuthService(client gateway.Client, sess Session, log logging.Logger) AuthService {
	return &authService{client: client, session: sess, log: log}
}

func (a *authService) SignIn(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, common.NewValidationError("email", "Email is required")
	}
	if len(password) == 0 {
		return nil, common.NewValidationError("password", "Password is required")
	}

	res, err := a.client.SignIn(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if err := a.session.Establish(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	a.log.Info(ctx, "signed in", "user", res.User.Username)
	return &res.User, nil
}

func (a *authService) SignUp(ctx context.Context, username, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return nil, common.NewValidationError("username", "Username is required")
	case email == "":
		return nil, common.NewValidationError("email", "Email is required")
	case len(password) == 0:
		return nil, common.NewValidationError("password", "Password is required")
	}

	res, err := a.client.SignUp(ctx, models.Credentials{
		Username: username,
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if err := a.session.Establish(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	a.log.Info(ctx, "signed up", "user", res.User.Username)
	return &res.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.log.Info(ctx, "signed out")
	return nil
}

// AuthErrorMessage is the text shown for a failed sign-in.
func AuthErrorMessage(err error) string {
	if errors.Is(err, common.ErrNetwork) {
		return authNetworkMessage
	}
	return common.PublicMessage(err, authFailedMessage)
}

// SignUpErrorMessage is the text shown for a failed registration.
func SignUpErrorMessage(err error) string {
	if errors.Is(err, common.ErrNetwork) {
		return authNetworkMessage
	}
	return common.PublicMessage(err, signUpFailedMessage)
}
