// Package styles provides shared lipgloss styles for UI components.
//
// Colors come from the active [Theme]. Style accessors are functions so that
// they pick up a theme selected after package initialization.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // titles, table headers
	Accent  color.Color // selected items, matched characters
	Success color.Color // created/persisted notices
	Warning color.Color // warnings, stale items
	Error   color.Color // error messages
	Muted   color.Color // secondary text (paths, ages)
	Normal  color.Color // standard text
}

var (
	// DefaultTheme uses the 256-color palette.
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink
		Success: lipgloss.Color("82"),  // green
		Warning: lipgloss.Color("214"), // orange
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Normal:  lipgloss.Color("252"), // light gray
	}

	// NoneTheme keeps formatting but uses terminal default colors.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
	}
)

var themes = map[string]Theme{
	"default": DefaultTheme,
	"none":    NoneTheme,
}

// ThemeNames lists the names accepted by [Init].
var ThemeNames = []string{"default", "none"}

var current = DefaultTheme

// Init selects the theme by name. Unknown names fall back to the default theme.
func Init(name string) {
	if t, ok := themes[name]; ok {
		current = t
		return
	}
	current = DefaultTheme
}

// Current returns the active theme.
func Current() Theme {
	return current
}

func Bold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(current.Primary)
}

func Accent() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(current.Accent)
}

// Highlight marks fuzzy-matched characters.
func Highlight() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Underline(true).Foreground(current.Accent)
}

func Success() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(current.Success)
}

func Warning() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(current.Warning)
}

func Error() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(current.Error)
}

func Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(current.Muted)
}

func Normal() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(current.Normal)
}
