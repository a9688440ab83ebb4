// Package ui provides the visual styling and small render helpers for
// the karat terminal interface.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Gold on deep blue, matching the web dashboards.
var (
	// Light mode
	LightBackground = lipgloss.Color("#faf9f6")
	LightForeground = lipgloss.Color("#1c2340")
	LightPrimary    = lipgloss.Color("#1c2340") // Deep blue
	LightAccent     = lipgloss.Color("#c9a227") // Gold
	LightMuted      = lipgloss.Color("#8a8f9e")
	LightBorder     = lipgloss.Color("#d9d5c9")

	// Dark mode
	DarkBackground = lipgloss.Color("#14182b")
	DarkForeground = lipgloss.Color("#f2efe6")
	DarkPrimary    = lipgloss.Color("#c9a227") // Gold (flipped)
	DarkAccent     = lipgloss.Color("#1c2340")
	DarkMuted      = lipgloss.Color("#6b7089")
	DarkBorder     = lipgloss.Color("#2c3352")

	// Semantic colors, same in both modes
	Destructive = lipgloss.Color("#e05252")
	Success     = lipgloss.Color("#5fae6e")
	Warning     = lipgloss.Color("#e0b152")
	Info        = lipgloss.Color("#5294e0")
)

// Theme holds the active color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ResolveTheme maps a config value to a theme. "auto" inspects the
// terminal background.
func ResolveTheme(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return detectTheme()
	}
}

// detectTheme guesses light/dark from COLORFGBG, defaulting to dark.
func detectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is "foreground;background"; ANSI backgrounds 0-6 and 8
		// are dark.
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
				if bg == 7 || (bg >= 9 && bg <= 15) {
					return LightTheme()
				}
			}
		}
	}
	return DarkTheme()
}

// Styles holds every lipgloss style the TUI renders with.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	StatCard lipgloss.Style
	Badge    lipgloss.Style
	Selected lipgloss.Style
	FormBox  lipgloss.Style
}

// NewStyles builds a Styles set for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().Padding(1, 2),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		TabOn: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Padding(0, 1).
			Underline(true),

		Title:    lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true),
		Body:     lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Bold:     lipgloss.NewStyle().Bold(true),

		Success: lipgloss.NewStyle().Foreground(Success),
		Error:   lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(Warning),
		Info:    lipgloss.NewStyle().Foreground(Info),

		StatCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2),

		Badge: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(theme.Background).
			Bold(true),

		FormBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 2),
	}
}
