package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shop-admin/internal/auth"
	"shop-admin/internal/logger"
)

// User-facing alert text for the login screen.
const (
	titleError        = "Error"
	titleSuccess      = "Success"
	titleLoginFailed  = "Login Failed"
	msgMissingFields  = "Please enter username and password."
	msgLoggedIn       = "Logged in successfully!"
	msgConnectionFail = "Something went wrong. Check server connection."
)

// Authenticator performs one login round trip.
type Authenticator interface {
	Login(ctx context.Context, creds auth.Credentials) (string, error)
}

type LoginModel struct {
	Auth     Authenticator
	Store    auth.TokenStore
	Nav      Navigator
	Notify   Notifier
	Inputs   []textinput.Model
	FocusIdx int
}

const (
	inputUsername = iota
	inputPassword
)

// loginResultMsg carries the outcome of one submission back into Update.
type loginResultMsg struct {
	Token string
	Err   error
}

func NewLoginModel(a Authenticator, store auth.TokenStore, nav Navigator, notify Notifier) LoginModel {
	inputs := make([]textinput.Model, 2)

	inputs[inputUsername] = textinput.New()
	inputs[inputUsername].Placeholder = "Username"
	inputs[inputUsername].Prompt = "Username: "
	inputs[inputUsername].PromptStyle = focusedStyle
	inputs[inputUsername].Focus()

	inputs[inputPassword] = textinput.New()
	inputs[inputPassword].Placeholder = "Password"
	inputs[inputPassword].Prompt = "Password: "
	inputs[inputPassword].EchoMode = textinput.EchoPassword
	inputs[inputPassword].EchoCharacter = '•'

	return LoginModel{
		Auth:   a,
		Store:  store,
		Nav:    nav,
		Notify: notify,
		Inputs: inputs,
	}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.handleResult(msg)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.Submit()
			}
			m.nextInput()
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
			return m, nil
		}
	}

	cmds := make([]tea.Cmd, len(m.Inputs))
	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

// SetUsername replaces the username field.
func (m *LoginModel) SetUsername(v string) { m.Inputs[inputUsername].SetValue(v) }

// SetPassword replaces the password field.
func (m *LoginModel) SetPassword(v string) { m.Inputs[inputPassword].SetValue(v) }

func (m LoginModel) Credentials() auth.Credentials {
	return auth.Credentials{
		Username: m.Inputs[inputUsername].Value(),
		Password: m.Inputs[inputPassword].Value(),
	}
}

// Submit validates the form and returns the command that performs the login,
// or nil when a field is empty. Nothing prevents a second submit while the
// first is in flight.
func (m LoginModel) Submit() tea.Cmd {
	creds := m.Credentials()
	if err := creds.Validate(); err != nil {
		m.Notify.Alert(titleError, msgMissingFields)
		return nil
	}
	a, store := m.Auth, m.Store
	return func() tea.Msg {
		ctx := context.Background()
		token, err := a.Login(ctx, creds)
		if err == nil && store != nil {
			if serr := store.Save(ctx, token); serr != nil {
				logger.L.Warn().Err(serr).Msg("token not persisted")
			}
		}
		return loginResultMsg{Token: token, Err: err}
	}
}

func (m LoginModel) handleResult(res loginResultMsg) {
	var (
		authErr  *auth.AuthenticationError
		validErr *auth.ValidationError
	)
	switch {
	case res.Err == nil:
		logger.L.Info().Str("user", m.Credentials().Username).Msg("login succeeded")
		m.Notify.Alert(titleSuccess, msgLoggedIn)
		m.Nav.Navigate(RouteDashboard, map[string]string{"token": res.Token})
	case errors.As(res.Err, &authErr):
		logger.L.Info().Int("status", authErr.Status).Msg("login rejected")
		m.Notify.Alert(titleLoginFailed, authErr.Message)
	case errors.As(res.Err, &validErr):
		m.Notify.Alert(titleError, msgMissingFields)
	default:
		logger.L.Error().Err(res.Err).Msg("login request failed")
		m.Notify.Alert(titleError, msgConnectionFail)
	}
}

func (m *LoginModel) nextInput() {
	m.focus((m.FocusIdx + 1) % len(m.Inputs))
}

func (m *LoginModel) prevInput() {
	m.focus((m.FocusIdx - 1 + len(m.Inputs)) % len(m.Inputs))
}

func (m *LoginModel) focus(idx int) {
	m.Inputs[m.FocusIdx].Blur()
	m.Inputs[m.FocusIdx].PromptStyle = blurredStyle
	m.FocusIdx = idx
	m.Inputs[idx].Focus()
	m.Inputs[idx].PromptStyle = focusedStyle
}

func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Admin Login") + "\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		b.WriteRune('\n')
	}
	b.WriteString("\n")
	b.WriteString(buttonStyle.Render("LOGIN"))
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Tab to change fields, Enter on password to log in, Ctrl+C to quit"))
	return docStyle.Render(b.String())
}
