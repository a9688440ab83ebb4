package tui

import (
	"context"
	"time"

	"karat/cmd/karat/ui"
	"karat/internal/api"
	"karat/internal/listview"
	"karat/internal/logging"
	"karat/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 4 * time.Second

// Update is the root message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 8
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case listview.LoadedMsg[api.Customer]:
		if !m.clients.Apply(msg) {
			m.trash.Apply(msg)
		}
		m.clampCursor()
		cmd := m.reportLoadErr()
		return m, cmd

	case listview.LoadedMsg[api.Product]:
		m.products.Apply(msg)
		m.pager.SetTotalPages(max(1, len(m.visibleProducts())))
		m.clampCursor()
		cmd := m.reportLoadErr()
		return m, cmd

	case listview.LoadedMsg[api.Deal]:
		m.pipeline.Apply(msg)
		m.clampCursor()
		cmd := m.reportLoadErr()
		return m, cmd

	case listview.LoadedMsg[api.Appointment]:
		m.appointments.Apply(msg)
		m.clampCursor()
		cmd := m.reportLoadErr()
		return m, cmd

	case listview.LoadedMsg[api.Announcement]:
		m.announcements.Apply(msg)
		m.clampCursor()
		cmd := m.reportLoadErr()
		return m, cmd

	case listview.LoadedMsg[api.User]:
		m.team.Apply(msg)
		m.clampCursor()
		cmd := m.reportLoadErr()
		return m, cmd

	case listview.LoadedMsg[api.Tenant]:
		m.tenants.Apply(msg)
		m.clampCursor()
		cmd := m.reportLoadErr()
		return m, cmd

	case loginResultMsg:
		return m.applyLoginResult(msg)

	case profileMsg:
		if msg.err == nil && !msg.user.ID.IsZero() {
			m.user = msg.user
			if sess := m.sessions.Current(); sess != nil {
				sess.User = msg.user
				if err := m.sessions.Save(*sess); err != nil {
					logging.SessionError("failed to persist profile: %v", err)
				}
			}
		}
		return m, nil

	case mutationDoneMsg:
		return m.applyMutationResult(msg)

	case exportDoneMsg:
		if msg.err != nil {
			cmd := m.flash("Export failed: "+msg.err.Error(), true)
			return m, cmd
		}
		cmd := m.flash("Exported to "+msg.path, false)
		return m, cmd

	case searchTickMsg:
		if msg.seq != m.searchSeq || msg.view != m.view {
			return m, nil
		}
		cmd := m.applySearch()
		return m, cmd

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case sessionEventMsg:
		return m.applySessionEvent(session.Event(msg))
	}
	return m, nil
}

// reportLoadErr surfaces a fetch failure for the active page.
func (m *Model) reportLoadErr() tea.Cmd {
	ctrl := m.activeController()
	if ctrl == nil {
		return nil
	}
	if err := ctrl.err(); err != nil {
		return m.flash("Load failed: "+err.Error(), true)
	}
	return nil
}

// controllerState is the untyped view of a list controller that the
// shared key handling needs.
type controllerState interface {
	err() error
	loading() bool
	setSearch(string)
	load() tea.Cmd
}

type ctrlAdapter[T any] struct{ c *listview.Controller[T] }

func (a ctrlAdapter[T]) err() error         { return a.c.Err() }
func (a ctrlAdapter[T]) loading() bool      { return a.c.Loading() }
func (a ctrlAdapter[T]) setSearch(s string) { a.c.SetSearch(s) }
func (a ctrlAdapter[T]) load() tea.Cmd      { return a.c.Load() }

func (m Model) activeController() controllerState {
	switch m.view {
	case ClientsView:
		return ctrlAdapter[api.Customer]{m.clients}
	case TrashView:
		return ctrlAdapter[api.Customer]{m.trash}
	case ProductsView:
		return ctrlAdapter[api.Product]{m.products}
	case PipelineView:
		return ctrlAdapter[api.Deal]{m.pipeline}
	case AppointmentsView:
		return ctrlAdapter[api.Appointment]{m.appointments}
	case AnnouncementsView:
		return ctrlAdapter[api.Announcement]{m.announcements}
	case TeamView:
		return ctrlAdapter[api.User]{m.team}
	case TenantsView:
		return ctrlAdapter[api.Tenant]{m.tenants}
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}

	if m.view == LoginView {
		return m.updateLogin(msg)
	}
	if m.form != nil {
		return m.updateForm(msg)
	}
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	if m.showDetail {
		return m.updateDetail(msg)
	}
	if m.searchOpen {
		return m.updateSearch(msg)
	}
	return m.updatePage(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		action := m.confirm.action
		m.confirm = nil
		return m, action()
	case "n", "esc":
		m.confirm = nil
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "q" {
		m.showDetail = false
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchOpen = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searchOpen = false
		m.search.Blur()
		m.searchSeq++
		cmd := m.applySearch()
		return m, cmd
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.searchSeq++
	tick := ui.Debounce(ui.DefaultSearchDebounce, searchTickMsg{view: m.view, seq: m.searchSeq})
	return m, tea.Batch(cmd, tick)
}

// applySearch pushes the search box value into the active controller
// and refetches.
func (m *Model) applySearch() tea.Cmd {
	ctrl := m.activeController()
	if ctrl == nil {
		return nil
	}
	ctrl.setSearch(m.search.Value())
	return ctrl.load()
}

func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Close()
		return m, tea.Quit

	case "tab", "shift+tab":
		tabs := m.tabs()
		idx := 0
		for i, v := range tabs {
			if v == m.view {
				idx = i
				break
			}
		}
		if msg.String() == "tab" {
			idx = (idx + 1) % len(tabs)
		} else {
			idx = (idx - 1 + len(tabs)) % len(tabs)
		}
		m.view = tabs[idx]
		m.searchOpen = false
		m.search.SetValue("")
		return m, m.loadView(m.view)

	case "up", "k":
		m.cursors[m.view] = m.cursor() - 1
		m.clampCursor()
		return m, nil

	case "down", "j":
		m.cursors[m.view] = m.cursor() + 1
		m.clampCursor()
		return m, nil

	case "left", "h":
		cmd := m.pageBack()
		return m, cmd

	case "right", "l":
		cmd := m.pageForward()
		return m, cmd

	case "/":
		if m.activeController() != nil {
			m.searchOpen = true
			m.search.SetValue("")
			cmd := m.search.Focus()
			return m, cmd
		}
		return m, nil

	case "r":
		if m.view == DashboardView {
			return m, tea.Batch(m.loadDashboard()...)
		}
		if ctrl := m.activeController(); ctrl != nil {
			return m, ctrl.load()
		}
		return m, nil

	case "ctrl+l":
		return m, m.logoutCmd()
	}
	return m.handlePageAction(msg)
}

// pageBack and pageForward move pagination. Clients page server-side;
// products page through the local paginator.
func (m *Model) pageBack() tea.Cmd {
	switch m.view {
	case ClientsView:
		if m.clients.Page() > 1 {
			m.clients.PrevPage()
			return m.clients.Load()
		}
	case ProductsView:
		m.pager.PrevPage()
		m.clampCursor()
	}
	return nil
}

func (m *Model) pageForward() tea.Cmd {
	switch m.view {
	case ClientsView:
		m.clients.NextPage()
		return m.clients.Load()
	case ProductsView:
		m.pager.NextPage()
		m.clampCursor()
	}
	return nil
}

// handlePageAction routes the remaining keys to page-specific actions.
func (m Model) handlePageAction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case ClientsView:
		return m.clientsKey(msg)
	case TrashView:
		return m.trashKey(msg)
	case ProductsView:
		return m.productsKey(msg)
	case PipelineView:
		return m.pipelineKey(msg)
	case AppointmentsView:
		return m.appointmentsKey(msg)
	case AnnouncementsView:
		return m.announcementsKey(msg)
	case TeamView:
		return m.teamKey(msg)
	case TenantsView:
		return m.tenantsKey(msg)
	}
	return m, nil
}

// updateForm drives the open modal form.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil

	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % len(m.form.fields)
		return m, m.focusFormField()

	case "shift+tab", "up":
		m.form.focus = (m.form.focus - 1 + len(m.form.fields)) % len(m.form.fields)
		return m, m.focusFormField()

	case "enter":
		return m, m.form.submit(m.form.values())
	}

	var cmd tea.Cmd
	f := &m.form.fields[m.form.focus]
	f.input, cmd = f.input.Update(msg)
	return m, cmd
}

func (m *Model) focusFormField() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.form.fields {
		if i == m.form.focus {
			cmd = m.form.fields[i].input.Focus()
		} else {
			m.form.fields[i].input.Blur()
		}
	}
	return cmd
}

// openForm installs a modal form with the first field focused.
func (m *Model) openForm(f *formState) tea.Cmd {
	m.form = f
	m.form.focus = 0
	return m.focusFormField()
}

// applyMutationResult is the refetch-after-mutation contract: every
// successful mutation closes the modal and reloads the page's list.
func (m Model) applyMutationResult(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.form != nil {
			m.form.errMsg = msg.err.Error()
			return m, nil
		}
		cmd := m.flash(msg.err.Error(), true)
		return m, cmd
	}
	m.form = nil
	m.confirm = nil
	cmds := []tea.Cmd{m.loadView(msg.view)}
	// Trash and the main client list are two views over the same
	// records; a soft delete or restore changes both.
	switch msg.view {
	case ClientsView:
		cmds = append(cmds, m.trash.Load())
	case TrashView:
		cmds = append(cmds, m.clients.Load())
	}
	if msg.message != "" {
		cmds = append(cmds, m.flash(msg.message, false))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) applySessionEvent(ev session.Event) (tea.Model, tea.Cmd) {
	rearm := m.waitSession()
	switch ev {
	case session.Cleared:
		logging.Session("session cleared externally, returning to login")
		m.view = LoginView
		m.user = api.User{}
		m.form = nil
		m.confirm = nil
		m.searchOpen = false
		m.loginErr = "Signed out."
		return m, tea.Batch(rearm, textinput.Blink)
	case session.Updated:
		if sess := m.sessions.Current(); sess != nil {
			m.user = sess.User
		}
	}
	return m, rearm
}

// mutate wraps an api call as a tea command that reports back through
// mutationDoneMsg.
func (m Model) mutate(view ViewMode, okMessage string, call func(ctx context.Context) (*api.Response, error)) tea.Cmd {
	return func() tea.Msg {
		resp, err := call(context.Background())
		if err != nil {
			return mutationDoneMsg{view: view, err: err}
		}
		if resp != nil && !resp.Success {
			msg := resp.Message
			if msg == "" {
				msg = "request rejected"
			}
			return mutationDoneMsg{view: view, err: errString(msg)}
		}
		message := okMessage
		if resp != nil && resp.Message != "" {
			message = resp.Message
		}
		return mutationDoneMsg{view: view, message: message}
	}
}

// errString is a trivial error wrapper for server-supplied messages.
type errString string

func (e errString) Error() string { return string(e) }
