package tui

import (
	"context"
	"fmt"

	"karat/internal/api"
	"karat/internal/stats"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) tenantsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.tenants.Records()
	switch msg.String() {
	case "n":
		cmd := m.openForm(m.tenantForm())
		return m, cmd

	case "d":
		if m.cursor() < len(records) {
			t := records[m.cursor()]
			if t.Status == api.TenantSuspended {
				return m, nil
			}
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Suspend tenant %q?", t.Name),
				action: func() tea.Cmd {
					return m.mutate(TenantsView, "Tenant suspended.", func(ctx context.Context) (*api.Response, error) {
						return m.client.SuspendTenant(ctx, t.ID)
					})
				},
			}
		}

	case "a":
		if m.cursor() < len(records) {
			t := records[m.cursor()]
			if t.Status != api.TenantSuspended {
				return m, nil
			}
			return m, m.mutate(TenantsView, "Tenant activated.", func(ctx context.Context) (*api.Response, error) {
				return m.client.ActivateTenant(ctx, t.ID)
			})
		}
	}
	return m, nil
}

func (m Model) tenantForm() *formState {
	f := &formState{
		title: "New Tenant",
		fields: []formField{
			newField("name", "Business name"),
			newField("slug", "Slug"),
			newField("plan", "Plan (starter/growth/enterprise)"),
		},
	}
	client := m.client
	f.submit = func(values map[string]string) tea.Cmd {
		input := api.TenantInput{
			Name: values["name"],
			Slug: values["slug"],
			Plan: values["plan"],
		}
		return m.mutate(TenantsView, "Tenant created.", func(ctx context.Context) (*api.Response, error) {
			return client.CreateTenant(ctx, input)
		})
	}
	return f
}

func (m Model) renderTenants() string {
	s := m.styles
	records := m.tenants.Records()

	active := stats.Count(records, func(t api.Tenant) bool {
		return t.Status == api.TenantActive
	})
	byPlan := stats.CountBy(records, func(t api.Tenant) string { return t.Plan })

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Tenants", fmt.Sprintf("%d", len(records))),
		m.statCard("Active", fmt.Sprintf("%d", active)),
		m.statCard("Enterprise", fmt.Sprintf("%d", byPlan["enterprise"])),
	)

	table := m.newPageTable(
		[]string{"Name", "Slug", "Plan", "Status", "Since"},
		[]int{26, 16, 12, 12, 12},
	)
	for _, t := range records {
		since := ""
		if !t.CreatedAt.IsZero() {
			since = t.CreatedAt.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{
			t.Name, t.Slug, t.Plan,
			s.StatusBadge(t.Status),
			since,
		})
	}
	return m.pageLayout(cards, table, "", "n new  d suspend  a activate")
}
