package tui

import (
	"context"
	"fmt"

	"karat/cmd/karat/ui"
	"karat/internal/api"
	"karat/internal/stats"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) teamKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.team.Records()
	switch msg.String() {
	case "n":
		cmd := m.openForm(m.teamForm(nil))
		return m, cmd

	case "e":
		if m.cursor() < len(records) {
			u := records[m.cursor()]
			cmd := m.openForm(m.teamForm(&u))
			return m, cmd
		}

	case "d":
		if m.cursor() < len(records) {
			u := records[m.cursor()]
			if u.ID == m.user.ID {
				cmd := m.flash("Cannot deactivate your own account.", true)
				return m, cmd
			}
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Deactivate %s?", u.Name()),
				action: func() tea.Cmd {
					return m.mutate(TeamView, "Account deactivated.", func(ctx context.Context) (*api.Response, error) {
						return m.client.DeactivateTeamMember(ctx, u.ID)
					})
				},
			}
		}
	}
	return m, nil
}

func (m Model) teamForm(existing *api.User) *formState {
	f := &formState{
		title: "Invite Team Member",
		fields: []formField{
			newField("email", "Email"),
			newField("first_name", "First name"),
			newField("last_name", "Last name"),
			newField("role", "Role (business_admin/store_manager/sales_rep)"),
			newField("store", "Store"),
		},
	}
	if existing != nil {
		f.title = "Edit Team Member"
		setField(f, "email", existing.Email)
		setField(f, "first_name", existing.FirstName)
		setField(f, "last_name", existing.LastName)
		setField(f, "role", existing.Role)
		setField(f, "store", existing.Store)
	}

	client := m.client
	f.submit = func(values map[string]string) tea.Cmd {
		input := api.TeamMemberInput{
			Email:     values["email"],
			FirstName: values["first_name"],
			LastName:  values["last_name"],
			Role:      values["role"],
			Store:     values["store"],
		}
		if existing == nil {
			return m.mutate(TeamView, "Invitation sent.", func(ctx context.Context) (*api.Response, error) {
				return client.CreateTeamMember(ctx, input)
			})
		}
		id := existing.ID
		return m.mutate(TeamView, "Account updated.", func(ctx context.Context) (*api.Response, error) {
			return client.UpdateTeamMember(ctx, id, input)
		})
	}
	return f
}

func (m Model) renderTeam() string {
	s := m.styles
	records := m.team.Records()

	byRole := stats.CountBy(records, func(u api.User) string { return u.Role })
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Team", fmt.Sprintf("%d", len(records))),
		m.statCard("Managers", fmt.Sprintf("%d", byRole[api.RoleStoreManager])),
		m.statCard("Sales Reps", fmt.Sprintf("%d", byRole[api.RoleSalesRep])),
	)

	table := m.newPageTable(
		[]string{"Name", "Email", "Role", "Store", "Active"},
		[]int{22, 28, 16, 14, 8},
	)
	for _, u := range m.team.Records() {
		active := "yes"
		if !u.IsActive {
			active = s.Muted.Render("no")
		}
		table.Rows = append(table.Rows, []string{
			u.Name(), u.Email, ui.StatusLabel(u.Role), u.Store, active,
		})
	}
	return m.pageLayout(cards, table, "", "n invite  e edit  d deactivate")
}
