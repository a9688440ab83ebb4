package tui

import (
	"strings"

	"karat/cmd/karat/ui"

	"github.com/charmbracelet/lipgloss"
)

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "Starting karat..."
	}
	if m.view == LoginView {
		return m.renderLogin()
	}

	sections := []string{m.renderHeader(), m.renderTabs()}

	switch {
	case m.form != nil:
		sections = append(sections, m.renderForm())
	case m.confirm != nil:
		sections = append(sections, m.renderConfirm())
	case m.showDetail:
		sections = append(sections, m.styles.Content.Render(m.detail.View()),
			m.styles.Footer.Render("esc back  ↑/↓ scroll"))
	default:
		sections = append(sections, m.renderPage())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	s := m.styles
	left := "karat"
	right := m.user.Name()
	if m.user.Role != "" {
		right += "  " + ui.StatusLabel(m.user.Role)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return s.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderTabs() string {
	s := m.styles
	var tabs []string
	for _, v := range m.tabs() {
		if v == m.view {
			tabs = append(tabs, s.TabOn.Render(v.String()))
		} else {
			tabs = append(tabs, s.Tab.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderPage() string {
	switch m.view {
	case DashboardView:
		return m.renderDashboard()
	case ClientsView:
		return m.renderClients()
	case TrashView:
		return m.renderTrash()
	case ProductsView:
		return m.renderProducts()
	case PipelineView:
		return m.renderPipeline()
	case AppointmentsView:
		return m.renderAppointments()
	case AnnouncementsView:
		return m.renderAnnouncements()
	case TeamView:
		return m.renderTeam()
	case TenantsView:
		return m.renderTenants()
	}
	return ""
}

// newPageTable builds a table for the active page with its cursor
// applied.
func (m Model) newPageTable(headers []string, widths []int) *ui.Table {
	t := ui.NewTable(m.styles, headers, widths)
	t.Cursor = m.cursor()
	return &t
}

// pageLayout assembles the standard page: stat cards, an optional
// search box, the table, and a footer with pagination plus key hints.
func (m Model) pageLayout(cards string, table *ui.Table, footer, keys string) string {
	s := m.styles
	var parts []string

	if cards != "" {
		parts = append(parts, cards, "")
	}
	if m.searchOpen {
		parts = append(parts, "Search: "+m.search.View(), "")
	}
	if table != nil {
		body := table.Render()
		if ctrl := m.activeController(); ctrl != nil && ctrl.loading() {
			body = m.spinner.View() + " Loading...\n\n" + body
		}
		parts = append(parts, body)
	}

	footerLine := keys + "  q quit  ctrl+l sign out"
	if footer != "" {
		footerLine = footer + "\n" + footerLine
	}
	if m.status != "" {
		status := s.Success.Render(m.status)
		if m.statusErr {
			status = s.Error.Render(m.status)
		}
		footerLine = status + "\n" + footerLine
	}
	parts = append(parts, "", s.Footer.Render(footerLine))

	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// statCard renders one dashboard-style figure.
func (m Model) statCard(label, value string) string {
	s := m.styles
	return s.StatCard.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Muted.Render(label),
		s.Title.Render(value),
	))
}

func (m Model) renderForm() string {
	s := m.styles
	lines := []string{s.Title.Render(m.form.title), ""}
	for i, f := range m.form.fields {
		label := f.label
		if i == m.form.focus {
			label = s.Bold.Render(label)
		}
		lines = append(lines, label, f.input.View())
	}
	if m.form.errMsg != "" {
		lines = append(lines, "", s.Error.Render(m.form.errMsg))
	}
	lines = append(lines, "", s.Muted.Render("enter save  tab next field  esc cancel"))
	return s.Content.Render(s.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m Model) renderConfirm() string {
	s := m.styles
	box := s.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Subtitle.Render(m.confirm.prompt),
		"",
		s.Muted.Render("y confirm  n cancel"),
	))
	return s.Content.Render(box)
}
