package tui

import (
	"fmt"
	"time"

	"karat/internal/stats"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard aggregates across the other pages' controllers.
// Every number is derived from whatever those controllers currently
// hold; an empty list simply contributes zeros.
func (m Model) renderDashboard() string {
	s := m.styles

	clients := summarizeClients(m.clients.Records(), time.Now())
	pipeline := summarizePipeline(m.pipeline.Records())
	products := summarizeProducts(m.products.Records())
	schedule := summarizeAppointments(m.appointments.Records(), time.Now())

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.statCard("Clients", fmt.Sprintf("%d", clients.Total)),
			m.statCard("New This Month", fmt.Sprintf("%d", clients.NewThisMonth)),
			m.statCard("Revenue", stats.FormatINR(clients.Revenue)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.statCard("Pipeline Value", stats.FormatINR(pipeline.TotalValue)),
			m.statCard("Deals Won", fmt.Sprintf("%d", pipeline.Won)),
			m.statCard("Conversion", stats.FormatPercent(pipeline.Conversion)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.statCard("Products", fmt.Sprintf("%d", products.Total)),
			m.statCard("Low Stock", fmt.Sprintf("%d", products.LowStock)),
			m.statCard("Appointments Today", fmt.Sprintf("%d", schedule.Today)),
		),
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		s.Subtitle.Render("Overview"),
		"",
		rows[0], rows[1], rows[2],
	)

	if m.anyLoading() {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "",
			m.spinner.View()+" refreshing...")
	}
	return m.pageLayout(body, nil, "", "r refresh  tab next page")
}

func (m Model) anyLoading() bool {
	return m.clients.Loading() || m.pipeline.Loading() ||
		m.products.Loading() || m.appointments.Loading()
}
