// Package render prints portfolio data to a terminal, styled with the
// user's theme preference: dark or light base colours plus the accent pair.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/exoshivam/folio/internal/models"
)

var (
	darkForeground  = lipgloss.Color("#f2f2f2")
	darkMuted       = lipgloss.Color("#9ca3af")
	darkBorder      = lipgloss.Color("#374151")
	lightForeground = lipgloss.Color("#111827")
	lightMuted      = lipgloss.Color("#6b7280")
	lightBorder     = lipgloss.Color("#d1d5db")

	errorColor = lipgloss.Color("#e53935")
)

// Theme is the resolved colour scheme for one ThemePreference.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Error      lipgloss.Color
	IsDark     bool
}

func NewTheme(pref models.ThemePreference) Theme {
	pal := pref.Accent.Palette()
	t := Theme{
		Primary:   lipgloss.Color(pal.Primary.Hex()),
		Secondary: lipgloss.Color(pal.Secondary.Hex()),
		Error:     errorColor,
		IsDark:    pref.DarkMode,
	}
	if pref.DarkMode {
		t.Foreground, t.Muted, t.Border = darkForeground, darkMuted, darkBorder
	} else {
		t.Foreground, t.Muted, t.Border = lightForeground, lightMuted, lightBorder
	}
	return t
}

// Styles holds the styled components built from a Theme.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Liked    lipgloss.Style
	Tag      lipgloss.Style
	Card     lipgloss.Style
	Notice   lipgloss.Style
	Error    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, t Theme) Styles {
	return Styles{
		Theme:    t,
		Title:    r.NewStyle().Bold(true).Foreground(t.Primary),
		Subtitle: r.NewStyle().Bold(true).Foreground(t.Foreground),
		Body:     r.NewStyle().Foreground(t.Foreground),
		Muted:    r.NewStyle().Foreground(t.Muted),
		Accent:   r.NewStyle().Foreground(t.Secondary),
		Liked:    r.NewStyle().Bold(true).Foreground(t.Secondary),
		Tag:      r.NewStyle().Foreground(t.Primary),
		Card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Notice: r.NewStyle().Bold(true).Foreground(t.Primary),
		Error:  r.NewStyle().Bold(true).Foreground(t.Error),
	}
}
