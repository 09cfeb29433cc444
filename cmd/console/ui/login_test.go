package ui

import (
	"context"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-admin/internal/auth"
)

func newTestLogin(t *testing.T, baseURL string, store auth.TokenStore) (LoginModel, *recordingNavigator, *recordingNotifier) {
	t.Helper()
	nav := &recordingNavigator{}
	notify := &recordingNotifier{}
	return NewLoginModel(newAuthClient(t, baseURL), store, nav, notify), nav, notify
}

// submit runs the whole flow: Submit, the network command, then the result message.
func submit(t *testing.T, m LoginModel) LoginModel {
	t.Helper()
	cmd := m.Submit()
	if cmd == nil {
		return m
	}
	m, _ = m.Update(cmd())
	return m
}

func TestLoginSuccessNavigatesWithToken(t *testing.T) {
	srv := newFakeLoginServer(t, http.StatusOK, `{"token":"abc123"}`)
	store := auth.NewMemoryStore()
	m, nav, notify := newTestLogin(t, srv.URL, store)
	m.SetUsername("admin")
	m.SetPassword("secret")

	submit(t, m)

	require.Len(t, nav.routes, 1)
	assert.Equal(t, RouteDashboard, nav.routes[0].Destination)
	assert.Equal(t, map[string]string{"token": "abc123"}, nav.routes[0].Params)
	assert.Equal(t, []Alert{{Title: titleSuccess, Message: msgLoggedIn}}, notify.alerts)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", saved)
}

func TestLoginMissingFieldMakesNoRequest(t *testing.T) {
	cases := []struct {
		name, user, pass string
	}{
		{"empty username", "", "secret"},
		{"empty password", "admin", ""},
		{"both empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newFakeLoginServer(t, http.StatusOK, `{"token":"abc123"}`)
			m, nav, notify := newTestLogin(t, srv.URL, nil)
			m.SetUsername(tc.user)
			m.SetPassword(tc.pass)

			assert.Nil(t, m.Submit())
			assert.Equal(t, 0, srv.Calls())
			assert.Empty(t, nav.routes)
			assert.Equal(t, []Alert{{Title: titleError, Message: msgMissingFields}}, notify.alerts)
		})
	}
}

func TestLoginRejectedShowsServerMessage(t *testing.T) {
	srv := newFakeLoginServer(t, http.StatusUnauthorized, `{"error":"Invalid credentials"}`)
	m, nav, notify := newTestLogin(t, srv.URL, nil)
	m.SetUsername("admin")
	m.SetPassword("wrong")

	submit(t, m)

	assert.Empty(t, nav.routes)
	assert.Equal(t, []Alert{{Title: titleLoginFailed, Message: "Invalid credentials"}}, notify.alerts)
}

func TestLoginRejectedWithoutMessageUsesFallback(t *testing.T) {
	srv := newFakeLoginServer(t, http.StatusForbidden, `{}`)
	m, _, notify := newTestLogin(t, srv.URL, nil)
	m.SetUsername("admin")
	m.SetPassword("wrong")

	submit(t, m)

	assert.Equal(t, []Alert{{Title: titleLoginFailed, Message: auth.DefaultFailureMessage}}, notify.alerts)
}

func TestLoginTransportFailures(t *testing.T) {
	t.Run("server unreachable", func(t *testing.T) {
		srv := newFakeLoginServer(t, http.StatusOK, `{}`)
		base := srv.URL
		srv.Close()

		m, nav, notify := newTestLogin(t, base, nil)
		m.SetUsername("admin")
		m.SetPassword("secret")
		submit(t, m)

		assert.Empty(t, nav.routes)
		assert.Equal(t, []Alert{{Title: titleError, Message: msgConnectionFail}}, notify.alerts)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := newFakeLoginServer(t, http.StatusOK, `<html>`)
		m, nav, notify := newTestLogin(t, srv.URL, nil)
		m.SetUsername("admin")
		m.SetPassword("secret")
		submit(t, m)

		assert.Empty(t, nav.routes)
		assert.Equal(t, []Alert{{Title: titleError, Message: msgConnectionFail}}, notify.alerts)
	})

	t.Run("success without token", func(t *testing.T) {
		srv := newFakeLoginServer(t, http.StatusOK, `{"access_token":"abc123"}`)
		m, nav, notify := newTestLogin(t, srv.URL, nil)
		m.SetUsername("admin")
		m.SetPassword("secret")
		submit(t, m)

		assert.Empty(t, nav.routes)
		assert.Equal(t, []Alert{{Title: titleError, Message: msgConnectionFail}}, notify.alerts)
	})
}

func TestLoginKeyboardFlow(t *testing.T) {
	srv := newFakeLoginServer(t, http.StatusOK, `{"token":"abc123"}`)
	m, nav, _ := newTestLogin(t, srv.URL, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("admin")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "enter on username only moves focus")
	assert.Equal(t, inputPassword, m.FocusIdx)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("secret")})
	assert.Equal(t, auth.Credentials{Username: "admin", Password: "secret"}, m.Credentials())

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	require.Len(t, nav.routes, 1)
	assert.Equal(t, "abc123", nav.routes[0].Params["token"])
	assert.Equal(t, 1, srv.Calls())
}

func TestLoginFocusWraps(t *testing.T) {
	m, _, _ := newTestLogin(t, "http://127.0.0.1:8000", nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, inputPassword, m.FocusIdx)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, inputUsername, m.FocusIdx)
	assert.True(t, m.Inputs[inputUsername].Focused())
	assert.False(t, m.Inputs[inputPassword].Focused())
}

func TestLoginViewHidesPassword(t *testing.T) {
	m, _, _ := newTestLogin(t, "http://127.0.0.1:8000", nil)
	m.SetUsername("admin")
	m.SetPassword("secret")

	view := m.View()
	assert.Contains(t, view, "admin")
	assert.NotContains(t, view, "secret")
	assert.Contains(t, view, "LOGIN")
}
