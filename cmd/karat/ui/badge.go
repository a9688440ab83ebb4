package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLabel turns a wire status like "closed_won" into "Closed Won".
func StatusLabel(status string) string {
	if status == "" {
		return ""
	}
	parts := strings.Split(status, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// statusColors maps wire statuses to badge colors. Anything unlisted
// renders muted.
var statusColors = map[string]lipgloss.Color{
	"lead":        Info,
	"active":      Success,
	"inactive":    lipgloss.Color("#8a8f9e"),
	"lost":        Destructive,
	"closed_won":  Success,
	"closed_lost": Destructive,
	"negotiation": Warning,
	"proposal":    Info,
	"contacted":   Info,
	"qualified":   Warning,
	"scheduled":   Info,
	"confirmed":   Success,
	"completed":   Success,
	"cancelled":   Destructive,
	"no_show":     Warning,
	"suspended":   Destructive,
}

// Badge renders a colored status pill.
func (s Styles) StatusBadge(status string) string {
	color, ok := statusColors[status]
	if !ok {
		color = s.Theme.Muted
	}
	return s.Badge.Foreground(color).Render(StatusLabel(status))
}
