package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"shop-admin/internal/auth"
	"shop-admin/internal/logger"
)

// Deps are the collaborators the console screens are built from.
type Deps struct {
	Auth  Authenticator
	Store auth.TokenStore
	// NewShop builds a shop API client bound to a session token.
	NewShop func(token string) (ShopService, error)
}

// sessionRestoredMsg reports a token found in the store at startup.
type sessionRestoredMsg struct {
	Token string
}

type RootModel struct {
	Screen    string
	Router    *Router
	Alerts    *Alerts
	Login     LoginModel
	Dashboard DashboardModel
	Quitting  bool
	deps      Deps
	width     int
	height    int
}

func NewRootModel(d Deps) RootModel {
	router := NewRouter()
	alerts := NewAlerts()
	return RootModel{
		Screen: RouteLogin,
		Router: router,
		Alerts: alerts,
		Login:  NewLoginModel(d.Auth, d.Store, router, alerts),
		deps:   d,
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.Login.Init(), m.restoreSession())
}

func (m RootModel) restoreSession() tea.Cmd {
	store := m.deps.Store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		token, err := store.Load(context.Background())
		if err != nil {
			if !errors.Is(err, auth.ErrNoToken) {
				logger.L.Warn().Err(err).Msg("load saved token")
			}
			return nil
		}
		return sessionRestoredMsg{Token: token}
	}
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Dashboard.Table.SetHeight(tableHeight(msg.Height))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}
		// The open alert swallows every key except its acknowledgement.
		if _, open := m.Alerts.Active(); open {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
				m.Alerts.Dismiss()
			}
			return m, nil
		}

	case sessionRestoredMsg:
		logger.Info("resuming saved session")
		m.Router.Navigate(RouteDashboard, map[string]string{"token": msg.Token})

	case loginResultMsg:
		// A login may complete after the user already left the form.
		var cmd tea.Cmd
		m.Login, cmd = m.Login.Update(msg)
		cmds = append(cmds, cmd)
		return m.drainRoutes(cmds)
	}

	switch m.Screen {
	case RouteLogin:
		var cmd tea.Cmd
		m.Login, cmd = m.Login.Update(msg)
		cmds = append(cmds, cmd)
	case RouteDashboard:
		var cmd tea.Cmd
		m.Dashboard, cmd = m.Dashboard.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m.drainRoutes(cmds)
}

func (m RootModel) drainRoutes(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	for {
		route, ok := m.Router.Take()
		if !ok {
			break
		}
		var cmd tea.Cmd
		m, cmd = m.open(route)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m RootModel) open(r Route) (RootModel, tea.Cmd) {
	switch r.Destination {
	case RouteDashboard:
		token := r.Params["token"]
		svc, err := m.deps.NewShop(token)
		if err != nil {
			logger.L.Error().Err(err).Msg("build shop client")
			m.Alerts.Alert(titleError, msgConnectionFail)
			return m, nil
		}
		m.Dashboard = NewDashboardModel(token, svc, m.deps.Store, m.Router, m.Alerts, m.height)
		m.Screen = RouteDashboard
		return m, m.Dashboard.Init()
	case RouteLogin:
		m.Login = NewLoginModel(m.deps.Auth, m.deps.Store, m.Router, m.Alerts)
		m.Screen = RouteLogin
		return m, m.Login.Init()
	}
	logger.Warnf("unknown destination %q", r.Destination)
	return m, nil
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	if _, open := m.Alerts.Active(); open {
		return m.Alerts.View(m.width, m.height)
	}
	switch m.Screen {
	case RouteLogin:
		return m.Login.View()
	case RouteDashboard:
		return m.Dashboard.View()
	}
	return "Unknown screen"
}
