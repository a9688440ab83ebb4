package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"karat/internal/api"
	"karat/internal/stats"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientStatusFilters is the cycle order for the status filter key.
var clientStatusFilters = []string{
	"", api.CustomerStatusLead, api.CustomerStatusActive,
	api.CustomerStatusVIP, api.CustomerStatusInactive,
}

// clientSummary holds the stat cards above the clients table. All
// values are recomputed from the current record set on every render.
type clientSummary struct {
	Total        int
	Leads        int
	VIPs         int
	NewThisMonth int
	Revenue      float64
}

// summarizeClients derives the clients page stats relative to now.
func summarizeClients(records []api.Customer, now time.Time) clientSummary {
	return clientSummary{
		Total: len(records),
		Leads: stats.Count(records, func(c api.Customer) bool {
			return c.Status == api.CustomerStatusLead
		}),
		VIPs: stats.Count(records, func(c api.Customer) bool {
			return c.Status == api.CustomerStatusVIP
		}),
		NewThisMonth: stats.NewThisMonth(records, func(c api.Customer) time.Time {
			return c.CreatedAt.Time
		}, now),
		Revenue: stats.Sum(records, func(c api.Customer) float64 {
			return c.TotalPurchases.Float()
		}),
	}
}

func (m Model) clientsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.clients.Records()
	switch msg.String() {
	case "f":
		next := nextFilter(clientStatusFilters, m.clients.Filter("status"))
		m.clients.SetFilter("status", next)
		return m, m.clients.Load()

	case "n":
		cmd := m.openForm(m.clientForm(nil))
		return m, cmd

	case "e":
		if m.cursor() < len(records) {
			c := records[m.cursor()]
			cmd := m.openForm(m.clientForm(&c))
			return m, cmd
		}

	case "d":
		if m.cursor() < len(records) {
			c := records[m.cursor()]
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Move %s to trash?", c.Name()),
				action: func() tea.Cmd {
					return m.mutate(ClientsView, "Client moved to trash.", func(ctx context.Context) (*api.Response, error) {
						return m.client.DeleteClient(ctx, c.ID)
					})
				},
			}
		}

	case "x":
		return m, m.exportClientsCmd(api.ExportCSV)
	}
	return m, nil
}

func (m Model) trashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.trash.Records()
	if msg.String() == "u" && m.cursor() < len(records) {
		c := records[m.cursor()]
		return m, m.mutate(TrashView, "Client restored.", func(ctx context.Context) (*api.Response, error) {
			return m.client.RestoreClient(ctx, c.ID)
		})
	}
	return m, nil
}

// clientForm builds the create or edit modal. A nil existing record
// means create.
func (m Model) clientForm(existing *api.Customer) *formState {
	f := &formState{
		title: "New Client",
		fields: []formField{
			newField("first_name", "First name"),
			newField("last_name", "Last name"),
			newField("email", "Email"),
			newField("phone", "Phone"),
			newField("status", "Status (lead/active/vip/inactive)"),
			newField("notes", "Notes"),
		},
	}
	if existing != nil {
		f.title = "Edit Client"
		setField(f, "first_name", existing.FirstName)
		setField(f, "last_name", existing.LastName)
		setField(f, "email", existing.Email)
		setField(f, "phone", existing.Phone)
		setField(f, "status", existing.Status)
		setField(f, "notes", existing.Notes)
	}

	client := m.client
	f.submit = func(values map[string]string) tea.Cmd {
		input := api.CustomerInput{
			FirstName: values["first_name"],
			LastName:  values["last_name"],
			Email:     values["email"],
			Phone:     values["phone"],
			Status:    values["status"],
			Notes:     values["notes"],
		}
		if existing == nil {
			return m.mutate(ClientsView, "Client created.", func(ctx context.Context) (*api.Response, error) {
				return client.CreateClient(ctx, input)
			})
		}
		id := existing.ID
		return m.mutate(ClientsView, "Client updated.", func(ctx context.Context) (*api.Response, error) {
			return client.UpdateClient(ctx, id, input)
		})
	}
	return f
}

// exportClientsCmd downloads the export blob and writes it next to the
// working directory.
func (m Model) exportClientsCmd(format api.ExportFormat) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		export, err := client.ExportClients(context.Background(), format)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		name := export.Filename
		if name == "" {
			name = fmt.Sprintf("clients-%s.%s", time.Now().Format("2006-01-02"), format)
		}
		if err := os.WriteFile(name, export.Data, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: name}
	}
}

func (m Model) renderClients() string {
	s := m.styles
	summary := summarizeClients(m.clients.Records(), time.Now())

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Total", fmt.Sprintf("%d", summary.Total)),
		m.statCard("Leads", fmt.Sprintf("%d", summary.Leads)),
		m.statCard("VIP", fmt.Sprintf("%d", summary.VIPs)),
		m.statCard("New This Month", fmt.Sprintf("%d", summary.NewThisMonth)),
		m.statCard("Revenue", stats.FormatINR(summary.Revenue)),
	)

	table := m.newPageTable(
		[]string{"Name", "Email", "Phone", "Status", "Purchases"},
		[]int{24, 28, 14, 12, 14},
	)
	for _, c := range m.clients.Records() {
		table.Rows = append(table.Rows, []string{
			c.Name(), c.Email, c.Phone,
			s.StatusBadge(c.Status),
			stats.FormatINR(c.TotalPurchases.Float()),
		})
	}

	footer := fmt.Sprintf("Page %d", m.clients.Page())
	if f := m.clients.Filter("status"); f != "" {
		footer += "  filter: " + f
	}

	return m.pageLayout(cards, table, footer,
		"n new  e edit  d trash  x export  f filter  / search")
}

func (m Model) renderTrash() string {
	table := m.newPageTable(
		[]string{"Name", "Email", "Deleted"},
		[]int{26, 30, 16},
	)
	table.Empty = "Trash is empty."
	for _, c := range m.trash.Records() {
		deleted := ""
		if !c.DeletedAt.IsZero() {
			deleted = c.DeletedAt.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{c.Name(), c.Email, deleted})
	}
	return m.pageLayout("", table, "", "u restore  r refresh")
}

// newField builds a form input with the given key and placeholder.
func newField(key, label string) formField {
	in := textinput.New()
	in.Placeholder = label
	in.CharLimit = 120
	in.Width = 40
	return formField{key: key, label: label, input: in}
}

func setField(f *formState, key, value string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(value)
			return
		}
	}
}

// nextFilter cycles through the filter values, wrapping at the end.
func nextFilter(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

