package tui

import (
	"context"
	"strconv"

	"karat/cmd/karat/ui"
	"karat/internal/api"
	"karat/internal/config"
	"karat/internal/listview"
	"karat/internal/logging"
	"karat/internal/session"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const productsPerScreen = 10

// New builds the root model. The caller owns the api client and
// session store; the model owns its list controllers and the session
// watcher.
func New(cfg *config.Config, client *api.Client, sessions *session.Store) Model {
	styles := ui.NewStyles(ui.ResolveTheme(cfg.UI.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Title

	search := textinput.New()
	search.Placeholder = "Search..."
	search.CharLimit = 80
	search.Width = 32

	user := textinput.New()
	user.Placeholder = "Username"
	user.Focus()
	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.EchoMode = textinput.EchoPassword

	pager := paginator.New()
	pager.PerPage = productsPerScreen

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(76))
	if err != nil {
		logging.ViewError("markdown renderer unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	events, werr := sessions.Watch(ctx)
	if werr != nil {
		logging.SessionError("session watcher unavailable: %v", werr)
	}

	m := Model{
		styles:        styles,
		spinner:       sp,
		search:        search,
		pager:         pager,
		renderer:      renderer,
		loginUser:     user,
		loginPass:     pass,
		cfg:           cfg,
		client:        client,
		sessions:      sessions,
		sessionEvents: events,
		watchCancel:   cancel,
		cursors:       make(map[ViewMode]int),
		view:          LoginView,
	}

	m.clients = listview.New("clients", func(ctx context.Context, q listview.Query) ([]api.Customer, error) {
		return client.ListClients(ctx, api.ClientListParams{
			Page:   q.Page,
			Search: q.Search,
			Status: q.Filter("status"),
		})
	})
	m.trash = listview.New("trash", func(ctx context.Context, q listview.Query) ([]api.Customer, error) {
		return client.ListTrashedClients(ctx)
	})
	m.products = listview.New("products", func(ctx context.Context, q listview.Query) ([]api.Product, error) {
		return client.ListProducts(ctx)
	})
	m.pipeline = listview.New("pipeline", func(ctx context.Context, q listview.Query) ([]api.Deal, error) {
		return client.ListPipeline(ctx, q.Filter("stage"))
	})
	m.appointments = listview.New("appointments", func(ctx context.Context, q listview.Query) ([]api.Appointment, error) {
		return client.ListAppointments(ctx, api.AppointmentListParams{
			Status: q.Filter("status"),
			Date:   q.Filter("date"),
		})
	})
	m.announcements = listview.New("announcements", func(ctx context.Context, q listview.Query) ([]api.Announcement, error) {
		return client.ListAnnouncements(ctx)
	})
	m.team = listview.New("team", func(ctx context.Context, q listview.Query) ([]api.User, error) {
		return client.ListTeam(ctx)
	})
	m.tenants = listview.New("tenants", func(ctx context.Context, q listview.Query) ([]api.Tenant, error) {
		return client.ListTenants(ctx)
	})

	if sess := sessions.Current(); sess != nil && sess.Token != "" {
		m.user = sess.User
		m.view = DashboardView
	}
	return m
}

// Init starts the spinner, arms the session watcher, and kicks off the
// initial loads when a saved session exists.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.waitSession()}
	if m.view != LoginView {
		cmds = append(cmds, m.fetchProfile())
		cmds = append(cmds, m.loadDashboard()...)
	}
	return tea.Batch(cmds...)
}

// Close releases the session watcher and any in-flight fetches.
func (m *Model) Close() {
	if m.watchCancel != nil {
		m.watchCancel()
	}
	for _, c := range []interface{ Close() }{
		m.clients, m.trash, m.products, m.pipeline,
		m.appointments, m.announcements, m.team, m.tenants,
	} {
		c.Close()
	}
}

// waitSession blocks on the next external session event.
func (m Model) waitSession() tea.Cmd {
	events := m.sessionEvents
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return sessionEventMsg(ev)
	}
}

func (m Model) fetchProfile() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Profile(context.Background())
		if err != nil || user == nil {
			return profileMsg{err: err}
		}
		return profileMsg{user: *user}
	}
}

// loadDashboard refreshes every list the dashboard aggregates over.
func (m Model) loadDashboard() []tea.Cmd {
	return []tea.Cmd{
		m.clients.Load(),
		m.pipeline.Load(),
		m.products.Load(),
		m.appointments.Load(),
	}
}

// loadView fetches the list behind a page, if it has one.
func (m Model) loadView(v ViewMode) tea.Cmd {
	switch v {
	case DashboardView:
		return tea.Batch(m.loadDashboard()...)
	case ClientsView:
		return m.clients.Load()
	case TrashView:
		return m.trash.Load()
	case ProductsView:
		return m.products.Load()
	case PipelineView:
		return m.pipeline.Load()
	case AppointmentsView:
		return m.appointments.Load()
	case AnnouncementsView:
		return m.announcements.Load()
	case TeamView:
		return m.team.Load()
	case TenantsView:
		return m.tenants.Load()
	}
	return nil
}

// tabs returns the pages the signed-in user may open. Platform admins
// manage tenants and announcements only; team management needs an
// admin or manager role. Gating here is display-only; the backend
// enforces authorization.
func (m Model) tabs() []ViewMode {
	if m.user.Role == api.RolePlatformAdmin {
		return []ViewMode{DashboardView, TenantsView, AnnouncementsView}
	}
	pages := []ViewMode{
		DashboardView, ClientsView, TrashView, ProductsView,
		PipelineView, AppointmentsView, AnnouncementsView,
	}
	if m.user.Role == api.RoleBusinessAdmin || m.user.Role == api.RoleStoreManager {
		pages = append(pages, TeamView)
	}
	return pages
}

// rowCount reports how many rows the active page's table shows.
func (m Model) rowCount() int {
	switch m.view {
	case ClientsView:
		return len(m.clients.Records())
	case TrashView:
		return len(m.trash.Records())
	case ProductsView:
		lo, hi := m.pager.GetSliceBounds(len(m.visibleProducts()))
		return hi - lo
	case PipelineView:
		return len(m.pipeline.Records())
	case AppointmentsView:
		return len(m.appointments.Records())
	case AnnouncementsView:
		return len(m.announcements.Records())
	case TeamView:
		return len(m.team.Records())
	case TenantsView:
		return len(m.tenants.Records())
	}
	return 0
}

func (m Model) cursor() int { return m.cursors[m.view] }

func (m *Model) clampCursor() {
	n := m.rowCount()
	if n == 0 {
		m.cursors[m.view] = 0
		return
	}
	if m.cursors[m.view] >= n {
		m.cursors[m.view] = n - 1
	}
	if m.cursors[m.view] < 0 {
		m.cursors[m.view] = 0
	}
}

// flash sets a transient footer status and schedules its expiry.
func (m *Model) flash(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return ui.Debounce(statusTTL, statusClearMsg{seq: seq})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
