package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
	"github.com/exoshivam/folio/internal/store"
)

// PreferencesService reads and writes the local theme. Unreadable values
// fall back to the defaults instead of failing.
type PreferencesService interface {
	Theme(ctx context.Context) models.ThemePreference
	SetDarkMode(ctx context.Context, dark bool) error
	ToggleDarkMode(ctx context.Context) (bool, error)
	SetAccent(ctx context.Context, accent models.AccentColor) error
}

type preferencesService struct {
	store store.Store
	log   logging.Logger
}

func NewPreferencesService(st store.Store, log logging.Logger) PreferencesService {
	return &preferencesService{store: st, log: log}
}

func (p *preferencesService) Theme(ctx context.Context) models.ThemePreference {
	theme := models.DefaultTheme()

	if raw, ok := p.get(ctx, common.KeyDarkMode); ok {
		var dark bool
		if err := json.Unmarshal([]byte(raw), &dark); err != nil {
			p.log.Warn(ctx, "stored dark mode flag is malformed, using default", "value", raw, "error", fmt.Errorf("%w: %v", common.ErrDecode, err))
		} else {
			theme.DarkMode = dark
		}
	}

	if raw, ok := p.get(ctx, common.KeyAccentColor); ok {
		accent := models.AccentColor(raw)
		if accent.Valid() {
			theme.Accent = accent
		} else {
			p.log.Warn(ctx, "unknown accent color, using default", "value", raw)
		}
	}
	return theme
}

func (p *preferencesService) get(ctx context.Context, key string) (string, bool) {
	raw, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.log.Warn(ctx, "reading preference failed", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

func (p *preferencesService) SetDarkMode(ctx context.Context, dark bool) error {
	if err := p.store.Set(ctx, common.KeyDarkMode, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("save dark mode: %w", err)
	}
	return nil
}

func (p *preferencesService) ToggleDarkMode(ctx context.Context) (bool, error) {
	next := !p.Theme(ctx).DarkMode
	if err := p.SetDarkMode(ctx, next); err != nil {
		return !next, err
	}
	return next, nil
}

func (p *preferencesService) SetAccent(ctx context.Context, accent models.AccentColor) error {
	if !accent.Valid() {
		return common.NewValidationError("accent", fmt.Sprintf("Unknown accent color %q (choose orange, pink or blue)", accent))
	}
	if err := p.store.Set(ctx, common.KeyAccentColor, string(accent)); err != nil {
		return fmt.Errorf("save accent color: %w", err)
	}
	return nil
}
