package tui

import (
	"context"
	"fmt"

	"karat/internal/api"
	"karat/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) announcementsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.announcements.Records()
	switch msg.String() {
	case "enter":
		if m.cursor() < len(records) {
			a := records[m.cursor()]
			m.showDetail = true
			m.detail.SetContent(m.renderMarkdown("# "+a.Title+"\n\n"+a.Body))
			m.detail.GotoTop()
			return m, nil
		}

	case "n":
		if m.user.Role != api.RolePlatformAdmin && m.user.Role != api.RoleBusinessAdmin {
			return m, nil
		}
		cmd := m.openForm(m.announcementForm())
		return m, cmd

	case "d":
		if m.user.Role != api.RolePlatformAdmin && m.user.Role != api.RoleBusinessAdmin {
			return m, nil
		}
		if m.cursor() < len(records) {
			a := records[m.cursor()]
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Delete announcement %q?", a.Title),
				action: func() tea.Cmd {
					return m.mutate(AnnouncementsView, "Announcement deleted.", func(ctx context.Context) (*api.Response, error) {
						return m.client.DeleteAnnouncement(ctx, a.ID)
					})
				},
			}
		}
	}
	return m, nil
}

func (m Model) announcementForm() *formState {
	f := &formState{
		title: "New Announcement",
		fields: []formField{
			newField("title", "Title"),
			newField("body", "Body (markdown)"),
			newField("audience", "Audience (all/admins)"),
			newField("priority", "Priority (normal/urgent)"),
		},
	}
	client := m.client
	f.submit = func(values map[string]string) tea.Cmd {
		input := api.AnnouncementInput{
			Title:    values["title"],
			Body:     values["body"],
			Audience: values["audience"],
			Priority: values["priority"],
		}
		return m.mutate(AnnouncementsView, "Announcement published.", func(ctx context.Context) (*api.Response, error) {
			return client.CreateAnnouncement(ctx, input)
		})
	}
	return f
}

// renderMarkdown renders announcement bodies through glamour, falling
// back to the raw text when the renderer is unavailable.
func (m Model) renderMarkdown(body string) string {
	if m.renderer == nil {
		return body
	}
	out, err := m.renderer.Render(body)
	if err != nil {
		logging.ViewError("markdown render failed: %v", err)
		return body
	}
	return out
}

func (m Model) renderAnnouncements() string {
	s := m.styles
	table := m.newPageTable(
		[]string{"Title", "Priority", "Published"},
		[]int{40, 10, 12},
	)
	table.Empty = "No announcements."
	for _, a := range m.announcements.Records() {
		published := ""
		if !a.PublishedAt.IsZero() {
			published = a.PublishedAt.Format("2006-01-02")
		}
		priority := a.Priority
		if priority == "urgent" {
			priority = s.Error.Render(priority)
		}
		table.Rows = append(table.Rows, []string{a.Title, priority, published})
	}
	return m.pageLayout("", table, "", "enter read  n new  d delete")
}
