package tui

import (
	"context"

	"karat/internal/logging"
	"karat/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.loginPass.Blur()
			cmd := m.loginUser.Focus()
			return m, cmd
		}
		m.loginUser.Blur()
		cmd := m.loginPass.Focus()
		return m, cmd

	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.loginUser.Blur()
			cmd := m.loginPass.Focus()
			return m, cmd
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, m.loginCmd()

	case "esc":
		m.Close()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginUser, cmd = m.loginUser.Update(msg)
	} else {
		m.loginPass, cmd = m.loginPass.Update(msg)
	}
	return m, cmd
}

func (m Model) loginCmd() tea.Cmd {
	email := m.loginUser.Value()
	password := m.loginPass.Value()
	client := m.client
	return func() tea.Msg {
		result, err := client.Login(context.Background(), email, password)
		return loginResultMsg{result: result, err: err}
	}
}

func (m Model) applyLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	if msg.err != nil {
		m.loginErr = msg.err.Error()
		return m, nil
	}
	if !msg.result.Success {
		m.loginErr = msg.result.Message
		if m.loginErr == "" {
			m.loginErr = "Invalid credentials."
		}
		return m, nil
	}

	if err := m.sessions.Save(session.Session{
		Token:   msg.result.Token,
		Refresh: msg.result.Refresh,
		User:    msg.result.User,
	}); err != nil {
		m.loginErr = "Could not save session: " + err.Error()
		return m, nil
	}
	logging.Session("logged in as %s", msg.result.User.Email)

	m.user = msg.result.User
	m.loginPass.SetValue("")
	m.loginErr = ""
	m.view = DashboardView
	cmds := append(m.loadDashboard(), m.fetchProfile())
	return m, tea.Batch(cmds...)
}

// logoutCmd tells the server, clears the local session, and lets the
// session watcher route everyone back to the login page.
func (m Model) logoutCmd() tea.Cmd {
	client := m.client
	sessions := m.sessions
	return func() tea.Msg {
		if err := client.Logout(context.Background()); err != nil {
			logging.SessionError("server logout failed: %v", err)
		}
		if err := sessions.Clear(); err != nil {
			logging.SessionError("failed to clear session: %v", err)
		}
		return nil
	}
}

func (m Model) renderLogin() string {
	s := m.styles

	var status string
	switch {
	case m.loggingIn:
		status = m.spinner.View() + " Signing in..."
	case m.loginErr != "":
		status = s.Error.Render(m.loginErr)
	}

	box := s.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("karat"),
		s.Muted.Render("Jewelry business CRM"),
		"",
		"Username "+m.loginUser.View(),
		"Password "+m.loginPass.View(),
		"",
		status,
		s.Muted.Render("enter to sign in, ctrl+c to quit"),
	))

	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
