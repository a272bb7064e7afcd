package models

import "fmt"

type AccentColor string

const (
	AccentOrange AccentColor = "orange"
	AccentPink   AccentColor = "pink"
	AccentBlue   AccentColor = "blue"
)

// RGB is a colour triple.
type RGB [3]uint8

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// AccentPalette is the primary/secondary pair an accent maps to.
type AccentPalette struct {
	Primary   RGB
	Secondary RGB
}

var accentPalettes = map[AccentColor]AccentPalette{
	AccentOrange: {Primary: RGB{249, 115, 22}, Secondary: RGB{236, 72, 153}},
	AccentPink:   {Primary: RGB{236, 72, 153}, Secondary: RGB{225, 29, 72}},
	AccentBlue:   {Primary: RGB{59, 130, 246}, Secondary: RGB{34, 197, 94}},
}

func (a AccentColor) Valid() bool {
	_, ok := accentPalettes[a]
	return ok
}

// Palette falls back to orange for unknown accents.
func (a AccentColor) Palette() AccentPalette {
	if p, ok := accentPalettes[a]; ok {
		return p
	}
	return accentPalettes[AccentOrange]
}

// ThemePreference is local-only and never sent to the API.
type ThemePreference struct {
	DarkMode bool
	Accent   AccentColor
}

// DefaultTheme applies when nothing has been stored yet.
func DefaultTheme() ThemePreference {
	return ThemePreference{DarkMode: true, Accent: AccentOrange}
}
