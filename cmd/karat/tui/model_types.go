// Package tui implements the interactive terminal interface for karat.
package tui

import (
	"context"

	"karat/cmd/karat/ui"
	"karat/internal/api"
	"karat/internal/config"
	"karat/internal/listview"
	"karat/internal/session"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// ViewMode determines which page is active.
type ViewMode int

const (
	LoginView ViewMode = iota
	DashboardView
	ClientsView
	TrashView
	ProductsView
	PipelineView
	AppointmentsView
	AnnouncementsView
	TeamView
	TenantsView
)

// String returns the tab label for each page.
func (v ViewMode) String() string {
	names := []string{
		"Login", "Dashboard", "Clients", "Trash", "Products",
		"Pipeline", "Appointments", "Announcements", "Team", "Tenants",
	}
	if int(v) < len(names) {
		return names[v]
	}
	return "Unknown"
}

// controllerName maps a page to the name its list controller was
// registered under, so loaded messages route back to the right page.
func (v ViewMode) controllerName() string {
	switch v {
	case ClientsView:
		return "clients"
	case TrashView:
		return "trash"
	case ProductsView:
		return "products"
	case PipelineView:
		return "pipeline"
	case AppointmentsView:
		return "appointments"
	case AnnouncementsView:
		return "announcements"
	case TeamView:
		return "team"
	case TenantsView:
		return "tenants"
	}
	return ""
}

// formField is a single labelled input inside a modal form.
type formField struct {
	key   string
	label string
	input textinput.Model
}

// formState is an open modal form. Submit receives the field values by
// key and returns the mutation command. On failure the form stays open
// with the server message; on success it closes and the page reloads.
type formState struct {
	title  string
	fields []formField
	focus  int
	errMsg string
	submit func(values map[string]string) tea.Cmd
}

func (f *formState) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fld := range f.fields {
		out[fld.key] = fld.input.Value()
	}
	return out
}

// confirmState is a pending yes/no prompt, used for deletes and
// tenant suspension.
type confirmState struct {
	prompt string
	action func() tea.Cmd
}

// Model is the root bubbletea model.
type Model struct {
	// UI components
	styles   ui.Styles
	spinner  spinner.Model
	search   textinput.Model
	pager    paginator.Model
	detail   viewport.Model
	renderer *glamour.TermRenderer

	view       ViewMode
	width      int
	height     int
	ready      bool
	searchOpen bool
	showDetail bool

	// Login form
	loginUser    textinput.Model
	loginPass    textinput.Model
	loginFocus   int
	loginErr     string
	loggingIn    bool

	// Backend
	cfg      *config.Config
	client   *api.Client
	sessions *session.Store
	user     api.User

	// Session watcher
	sessionEvents <-chan session.Event
	watchCancel   context.CancelFunc

	// List controllers, one per page
	clients       *listview.Controller[api.Customer]
	trash         *listview.Controller[api.Customer]
	products      *listview.Controller[api.Product]
	pipeline      *listview.Controller[api.Deal]
	appointments  *listview.Controller[api.Appointment]
	announcements *listview.Controller[api.Announcement]
	team          *listview.Controller[api.User]
	tenants       *listview.Controller[api.Tenant]

	// Per-page cursor positions
	cursors map[ViewMode]int

	// Modal state
	form    *formState
	confirm *confirmState

	// Debounce bookkeeping for the search box
	searchSeq int

	// Transient footer status
	status    string
	statusErr bool
	statusSeq int
}

// Messages for tea updates
type (
	// loginResultMsg carries the outcome of a login attempt.
	loginResultMsg struct {
		result *api.LoginResult
		err    error
	}

	// profileMsg refreshes the signed-in user after boot.
	profileMsg struct {
		user api.User
		err  error
	}

	// mutationDoneMsg reports a create/update/delete. A nil err closes
	// any open modal and reloads the page's list.
	mutationDoneMsg struct {
		view    ViewMode
		message string
		err     error
	}

	// exportDoneMsg reports a client export written to disk.
	exportDoneMsg struct {
		path string
		err  error
	}

	// searchTickMsg fires after the search debounce window. Stale
	// sequence numbers are ignored.
	searchTickMsg struct {
		view ViewMode
		seq  int
	}

	// statusClearMsg expires a transient footer status.
	statusClearMsg struct{ seq int }

	// sessionEventMsg relays external session file changes.
	sessionEventMsg session.Event
)
