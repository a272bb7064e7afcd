// Package session derives the client's belief about the signed-in user from
// the preference store. A session exists exactly when an auth token is
// stored; nothing about it lives only in memory except the login-notice
// bookkeeping.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
	"github.com/exoshivam/folio/internal/store"
	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	store store.Store
	log   logging.Logger

	mu          sync.Mutex
	wasLoggedIn bool
}

func New(st store.Store, log logging.Logger) *Session {
	return &Session{store: st, log: log}
}

// Token returns the stored auth token. Read failures are logged and
// reported as absent. Its signature matches gateway.TokenSource.
func (s *Session) Token(ctx context.Context) (string, bool) {
	tok, ok, err := s.store.Get(ctx, common.KeyAuthToken)
	if err != nil {
		s.log.Warn(ctx, "reading auth token failed", "error", err)
		return "", false
	}
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// CurrentUser decodes the stored user record. A malformed record is treated
// as absent.
func (s *Session) CurrentUser(ctx context.Context) (*models.User, bool) {
	raw, ok, err := s.store.Get(ctx, common.KeyAuthUser)
	if err != nil {
		s.log.Warn(ctx, "reading user record failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn(ctx, "stored user record is malformed, ignoring it", "error", fmt.Errorf("%w: %v", common.ErrDecode, err))
		return nil, false
	}
	return &u, true
}

// Establish stores token and user together: either both keys are written or
// neither is.
func (s *Session) Establish(ctx context.Context, token string, user models.User) error {
	if strings.TrimSpace(token) == "" {
		return common.NewValidationError("token", "Missing auth token")
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		if err := s.store.Set(ctx, common.KeyAuthToken, token); err != nil {
			return err
		}
		return s.store.Set(ctx, common.KeyAuthUser, string(encoded))
	})
	if err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	s.log.Info(ctx, "session established", "user", user.Username)
	return nil
}

// Clear removes the token and user record. It is visible to the very next
// IsAuthenticated/CurrentUser call.
func (s *Session) Clear(ctx context.Context) error {
	err := s.store.Atomically(ctx, func(ctx context.Context) error {
		if err := s.store.Remove(ctx, common.KeyAuthToken); err != nil {
			return err
		}
		return s.store.Remove(ctx, common.KeyAuthUser)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.wasLoggedIn = false
	s.mu.Unlock()
	return nil
}

// CheckLogin returns "Logged in as <username>" once for each transition from
// logged-out to logged-in observed by this process.
func (s *Session) CheckLogin(ctx context.Context) (string, bool) {
	loggedIn := s.IsAuthenticated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !loggedIn {
		s.wasLoggedIn = false
		return "", false
	}
	if s.wasLoggedIn {
		return "", false
	}
	s.wasLoggedIn = true

	u, ok := s.CurrentUser(ctx)
	if !ok {
		return "", false
	}
	return "Logged in as " + u.Username, true
}

// TokenInfo is what can be read from a JWT without verifying it. The
// signature is checked by the API, never here.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// Inspect decodes the stored token's registered claims. Opaque tokens yield
// common.ErrDecode.
func (s *Session) Inspect(ctx context.Context) (*TokenInfo, error) {
	tok, ok := s.Token(ctx)
	if !ok {
		return nil, common.ErrNotAuthenticated
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return nil, fmt.Errorf("%w: token is not a JWT: %v", common.ErrDecode, err)
	}
	info := &TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
