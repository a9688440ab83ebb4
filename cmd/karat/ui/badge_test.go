package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"lead", "Lead"},
		{"closed_won", "Closed Won"},
		{"no_show", "No Show"},
		{"platform_admin", "Platform Admin"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusLabel(tc.in), tc.in)
	}
}

func TestStatusBadgeFallsBackToMuted(t *testing.T) {
	s := NewStyles(DarkTheme())
	// Unknown statuses still render their label.
	assert.Contains(t, s.StatusBadge("mystery_state"), "Mystery State")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "abc  ", pad("abc", 5))
	assert.Equal(t, "abcd…", pad("abcdefgh", 5))
}

// Truncating a styled cell must cut between escape sequences, never
// through one, or the broken code colors everything after it.
func TestPadTruncatesStyledCells(t *testing.T) {
	styled := "\x1b[33mLow Stock Warning\x1b[0m"
	got := pad(styled, 9)
	assert.Equal(t, 9, lipgloss.Width(got))
	assert.Equal(t, "Low Stoc…", ansi.Strip(got))
	assert.Contains(t, got, "\x1b[33m", "intact sequences are preserved")
}
