package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultSearchDebounce is how long to wait after the last keystroke
// before firing a search request.
const DefaultSearchDebounce = 300 * time.Millisecond

// Debounce returns a command that delivers msg after d. Callers tag
// msg with a sequence number and ignore stale deliveries, so a burst
// of keystrokes produces a single fetch.
func Debounce(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
