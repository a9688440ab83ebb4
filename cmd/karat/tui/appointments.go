package tui

import (
	"context"
	"fmt"
	"time"

	"karat/internal/api"
	"karat/internal/stats"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var appointmentStatusFilters = []string{
	"", api.AppointmentScheduled, api.AppointmentCompleted,
	api.AppointmentCancelled, api.AppointmentNoShow,
}

// appointmentSummary holds the schedule stat cards.
type appointmentSummary struct {
	Total     int
	Today     int
	Scheduled int
	NoShows   int
}

func summarizeAppointments(records []api.Appointment, now time.Time) appointmentSummary {
	y, mo, d := now.Date()
	return appointmentSummary{
		Total: len(records),
		Today: stats.Count(records, func(a api.Appointment) bool {
			if a.Date.IsZero() {
				return false
			}
			ay, am, ad := a.Date.Date()
			return ay == y && am == mo && ad == d
		}),
		Scheduled: stats.Count(records, func(a api.Appointment) bool {
			return a.Status == api.AppointmentScheduled
		}),
		NoShows: stats.Count(records, func(a api.Appointment) bool {
			return a.Status == api.AppointmentNoShow
		}),
	}
}

func (m Model) appointmentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.appointments.Records()
	switch msg.String() {
	case "f":
		next := nextFilter(appointmentStatusFilters, m.appointments.Filter("status"))
		m.appointments.SetFilter("status", next)
		return m, m.appointments.Load()

	case "t":
		today := time.Now().Format("2006-01-02")
		if m.appointments.Filter("date") == today {
			today = ""
		}
		m.appointments.SetFilter("date", today)
		return m, m.appointments.Load()

	case "n":
		cmd := m.openForm(m.appointmentForm(nil))
		return m, cmd

	case "e":
		if m.cursor() < len(records) {
			a := records[m.cursor()]
			cmd := m.openForm(m.appointmentForm(&a))
			return m, cmd
		}

	case "d":
		if m.cursor() < len(records) {
			a := records[m.cursor()]
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Cancel appointment with %s?", a.CustomerName),
				action: func() tea.Cmd {
					return m.mutate(AppointmentsView, "Appointment cancelled.", func(ctx context.Context) (*api.Response, error) {
						return m.client.CancelAppointment(ctx, a.ID)
					})
				},
			}
		}
	}
	return m, nil
}

func (m Model) appointmentForm(existing *api.Appointment) *formState {
	f := &formState{
		title: "New Appointment",
		fields: []formField{
			newField("client_id", "Client ID"),
			newField("date", "Date (YYYY-MM-DD)"),
			newField("time", "Time slot"),
			newField("type", "Type (consultation/fitting/pickup)"),
			newField("notes", "Notes"),
		},
	}
	if existing != nil {
		f.title = "Edit Appointment"
		setField(f, "client_id", existing.CustomerID.String())
		if !existing.Date.IsZero() {
			setField(f, "date", existing.Date.Format("2006-01-02"))
		}
		setField(f, "time", existing.TimeSlot)
		setField(f, "type", existing.Type)
		setField(f, "notes", existing.Notes)
	}

	client := m.client
	f.submit = func(values map[string]string) tea.Cmd {
		input := api.AppointmentInput{
			CustomerID: api.ID(values["client_id"]),
			Date:       values["date"],
			TimeSlot:   values["time"],
			Type:       values["type"],
			Notes:      values["notes"],
		}
		if existing == nil {
			return m.mutate(AppointmentsView, "Appointment booked.", func(ctx context.Context) (*api.Response, error) {
				return client.CreateAppointment(ctx, input)
			})
		}
		id := existing.ID
		return m.mutate(AppointmentsView, "Appointment updated.", func(ctx context.Context) (*api.Response, error) {
			return client.UpdateAppointment(ctx, id, input)
		})
	}
	return f
}

func (m Model) renderAppointments() string {
	s := m.styles
	summary := summarizeAppointments(m.appointments.Records(), time.Now())

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Total", fmt.Sprintf("%d", summary.Total)),
		m.statCard("Today", fmt.Sprintf("%d", summary.Today)),
		m.statCard("Scheduled", fmt.Sprintf("%d", summary.Scheduled)),
		m.statCard("No-shows", fmt.Sprintf("%d", summary.NoShows)),
	)

	table := m.newPageTable(
		[]string{"Client", "Date", "Time", "Type", "Status"},
		[]int{24, 12, 10, 16, 14},
	)
	for _, a := range m.appointments.Records() {
		date := ""
		if !a.Date.IsZero() {
			date = a.Date.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{
			a.CustomerName, date, a.TimeSlot, a.Type,
			s.StatusBadge(a.Status),
		})
	}

	footer := ""
	if f := m.appointments.Filter("status"); f != "" {
		footer = "filter: " + f
	}
	if d := m.appointments.Filter("date"); d != "" {
		footer += "  date: " + d
	}
	return m.pageLayout(cards, table, footer,
		"n new  e edit  d cancel  f filter  t today")
}
