package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/config"
	"github.com/exoshivam/folio/internal/filex"
	"github.com/exoshivam/folio/internal/gateway"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/render"
	"github.com/exoshivam/folio/internal/services"
	"github.com/exoshivam/folio/internal/session"
	"github.com/exoshivam/folio/internal/store"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   store.Store
	closers []func() error

	session    *session.Session
	auth       services.AuthService
	engagement services.EngagementService
	portfolio  services.PortfolioService
	prefs      services.PreferencesService
	contact    services.ContactService
	history    *services.SearchHistory

	printer *render.Printer
	reader  *bufio.Reader
	w       io.Writer
}

// NewApp wires storage, session, gateway and services for cfg. The caller
// must Close it.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	log, err := logging.New(cfg.LogDriver, cfg.LogLevel, errOut)
	if err != nil {
		return nil, err
	}

	a := &App{config: cfg, log: log, reader: bufio.NewReader(in), w: out}
	if s, ok := log.(interface{ Sync() error }); ok {
		a.closers = append(a.closers, func() error { _ = s.Sync(); return nil })
	}

	if cfg.Ephemeral {
		a.store = store.NewMemoryStore()
	} else {
		path := cfg.DBPath()
		if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("prepare data dir: %w", err)
		}
		db, err := store.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open preferences: %w", err)
		}
		a.store = db
		a.closers = append(a.closers, db.Close)
	}

	a.session = session.New(a.store, log)
	client, err := gateway.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout,
		gateway.WithTokenSource(a.session.Token),
		gateway.WithLogger(log),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.engagement = services.NewEngagementService(client, a.store, a.session, log)
	a.auth = services.NewAuthService(client, a.session, log)
	a.portfolio = services.NewPortfolioService(client, a.engagement, a.session, log)
	a.prefs = services.NewPreferencesService(a.store, log)
	a.contact = services.NewContactService(client, log)
	a.history = services.NewSearchHistory(a.store, log)
	a.printer = render.NewPrinter(out, a.prefs.Theme(ctx))

	log.Debug(ctx, "app ready", "api", cfg.APIBaseURL, "ephemeral", cfg.Ephemeral)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

// reportedError wraps an error that has already been shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported tells whether err was already printed by a command.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// fail shows message and returns err marked as reported.
func (a *App) fail(ctx context.Context, err error, message string) error {
	a.log.Debug(ctx, "command failed", "error", err)
	a.printer.Error(message)
	return &reportedError{err: err}
}

// failDefault picks the message from the error taxonomy.
func (a *App) failDefault(ctx context.Context, err error) error {
	return a.fail(ctx, err, userMessage(err))
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInFlight):
		return "Still waiting for the previous request on this item"
	case errors.Is(err, common.ErrNotFound):
		return "Not found"
	case errors.Is(err, common.ErrNetwork):
		return "Network error. Please try again."
	}
	return common.PublicMessage(err, common.GenericFailureMessage)
}
