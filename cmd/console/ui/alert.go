package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Notifier shows a blocking, single-button message to the user.
type Notifier interface {
	Alert(title, message string)
}

type Alert struct {
	Title   string
	Message string
}

// Alerts is the modal overlay. Alerts raised while one is open wait their turn.
type Alerts struct {
	queue []Alert
}

func NewAlerts() *Alerts { return &Alerts{} }

func (a *Alerts) Alert(title, message string) {
	a.queue = append(a.queue, Alert{Title: title, Message: message})
}

// Active returns the alert on screen, if any.
func (a *Alerts) Active() (Alert, bool) {
	if len(a.queue) == 0 {
		return Alert{}, false
	}
	return a.queue[0], true
}

// Dismiss acknowledges the alert on screen.
func (a *Alerts) Dismiss() {
	if len(a.queue) > 0 {
		a.queue = a.queue[1:]
	}
}

func (a *Alerts) View(width, height int) string {
	al, ok := a.Active()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(alertTitleStyle.Render(al.Title) + "\n\n")
	b.WriteString(al.Message + "\n\n")
	b.WriteString(buttonStyle.Render("OK"))
	box := alertBoxStyle.Render(b.String())
	if width == 0 || height == 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
