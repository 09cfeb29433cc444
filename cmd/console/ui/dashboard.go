package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	jwt "github.com/golang-jwt/jwt/v5"

	"shop-admin/internal/auth"
	"shop-admin/internal/logger"
	"shop-admin/internal/shop"
)

// ShopService is the slice of the shop API the dashboard needs.
type ShopService interface {
	ListOrders(ctx context.Context, phone string) ([]shop.Order, error)
	ListProducts(ctx context.Context) ([]shop.Product, error)
	UpdateOrderStatus(ctx context.Context, id int, status string) (string, error)
}

type dashboardTab int

const (
	tabOrders dashboardTab = iota
	tabProducts
)

type DashboardModel struct {
	Token    string
	Shop     ShopService
	Store    auth.TokenStore
	Nav      Navigator
	Notify   Notifier
	Table    table.Model
	Orders   []shop.Order
	Products []shop.Product
	Tab      dashboardTab
	Expires  time.Time
	Err      error
	Status   string
}

type ordersLoadedMsg struct {
	Orders []shop.Order
	Err    error
}

type productsLoadedMsg struct {
	Products []shop.Product
	Err      error
}

type orderStatusMsg struct {
	ID     int
	Status string
	Err    error
}

type loggedOutMsg struct{}

func NewDashboardModel(token string, svc ShopService, store auth.TokenStore, nav Navigator, notify Notifier, height int) DashboardModel {
	t := table.New(
		table.WithColumns(orderColumns()),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	m := DashboardModel{
		Token:  token,
		Shop:   svc,
		Store:  store,
		Nav:    nav,
		Notify: notify,
		Table:  t,
	}
	if exp, ok := tokenExpiry(token); ok {
		m.Expires = exp
	}
	return m
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadOrders()
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.Status = "refreshing..."
			if m.Tab == tabProducts {
				return m, m.loadProducts()
			}
			return m, m.loadOrders()
		case "p":
			if m.Tab == tabOrders {
				m.Tab = tabProducts
				m.Table.SetRows(nil)
				m.Table.SetColumns(productColumns())
				m.Table.SetRows(productRows(m.Products))
				return m, m.loadProducts()
			}
			m.Tab = tabOrders
			m.Table.SetRows(nil)
			m.Table.SetColumns(orderColumns())
			m.Table.SetRows(orderRows(m.Orders))
			return m, m.loadOrders()
		case "n", "x":
			if m.Tab != tabOrders {
				return m, nil
			}
			o, ok := m.selectedOrder()
			if !ok {
				return m, nil
			}
			next := shop.NextStatus(o.Status)
			if msg.String() == "x" {
				next = shop.StatusCancelled
			}
			if next == o.Status {
				m.Status = fmt.Sprintf("order #%d is already %s", o.ID, o.Status)
				return m, nil
			}
			return m, m.updateStatus(o.ID, next)
		case "l":
			return m, m.logout()
		case "q":
			return m, tea.Quit
		}

	case ordersLoadedMsg:
		if m.sessionExpired(msg.Err) {
			return m, m.logout()
		}
		m.Err = msg.Err
		if msg.Err == nil {
			m.Orders = msg.Orders
			m.Status = fmt.Sprintf("%d orders", len(msg.Orders))
			if m.Tab == tabOrders {
				m.Table.SetRows(orderRows(m.Orders))
			}
		}
		return m, nil

	case productsLoadedMsg:
		if m.sessionExpired(msg.Err) {
			return m, m.logout()
		}
		m.Err = msg.Err
		if msg.Err == nil {
			m.Products = msg.Products
			m.Status = fmt.Sprintf("%d products", len(msg.Products))
			if m.Tab == tabProducts {
				m.Table.SetRows(productRows(m.Products))
			}
		}
		return m, nil

	case orderStatusMsg:
		if m.sessionExpired(msg.Err) {
			return m, m.logout()
		}
		if msg.Err != nil {
			m.Notify.Alert("Update Failed", msg.Err.Error())
			return m, nil
		}
		for i := range m.Orders {
			if m.Orders[i].ID == msg.ID {
				m.Orders[i].Status = msg.Status
			}
		}
		m.Table.SetRows(orderRows(m.Orders))
		m.Status = fmt.Sprintf("order #%d -> %s", msg.ID, msg.Status)
		return m, nil

	case loggedOutMsg:
		m.Nav.Navigate(RouteLogin, nil)
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) selectedOrder() (shop.Order, bool) {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return shop.Order{}, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(row[0], "#"))
	if err != nil {
		return shop.Order{}, false
	}
	for _, o := range m.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return shop.Order{}, false
}

func (m DashboardModel) sessionExpired(err error) bool {
	var apiErr *shop.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status != http.StatusUnauthorized && apiErr.Status != http.StatusForbidden {
		return false
	}
	m.Notify.Alert("Session Expired", "Please log in again.")
	return true
}

func (m DashboardModel) loadOrders() tea.Cmd {
	svc := m.Shop
	return func() tea.Msg {
		orders, err := svc.ListOrders(context.Background(), "")
		if err != nil {
			logger.L.Error().Err(err).Msg("load orders")
		}
		return ordersLoadedMsg{Orders: orders, Err: err}
	}
}

func (m DashboardModel) loadProducts() tea.Cmd {
	svc := m.Shop
	return func() tea.Msg {
		products, err := svc.ListProducts(context.Background())
		if err != nil {
			logger.L.Error().Err(err).Msg("load products")
		}
		return productsLoadedMsg{Products: products, Err: err}
	}
}

func (m DashboardModel) updateStatus(id int, status string) tea.Cmd {
	svc := m.Shop
	return func() tea.Msg {
		got, err := svc.UpdateOrderStatus(context.Background(), id, status)
		return orderStatusMsg{ID: id, Status: got, Err: err}
	}
}

func (m DashboardModel) logout() tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		if store != nil {
			if err := store.Clear(context.Background()); err != nil {
				logger.L.Warn().Err(err).Msg("clear token")
			}
		}
		return loggedOutMsg{}
	}
}

// tokenExpiry reads exp from a JWT-shaped token without verifying it. Tokens
// in any other format simply have no known expiry.
func tokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func tableHeight(h int) int {
	if h-12 < 5 {
		return 10
	}
	return h - 12
}

func orderColumns() []table.Column {
	return []table.Column{
		{Title: "Order", Width: 8},
		{Title: "Customer", Width: 20},
		{Title: "Total", Width: 10},
		{Title: "Payment", Width: 8},
		{Title: "Status", Width: 18},
		{Title: "Placed", Width: 16},
	}
}

func productColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 28},
		{Title: "Price", Width: 10},
		{Title: "Unit", Width: 10},
		{Title: "Stock", Width: 8},
	}
}

func orderRows(orders []shop.Order) []table.Row {
	rows := make([]table.Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(o.ID),
			o.Customer.DisplayName(),
			o.TotalAmount,
			o.PaymentMethod,
			o.Status,
			o.PlacedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func productRows(products []shop.Product) []table.Row {
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, table.Row{
			strconv.Itoa(p.ID),
			p.Name,
			p.Price,
			p.Unit,
			strconv.Itoa(p.Stock),
		})
	}
	return rows
}

func (m DashboardModel) View() string {
	var b strings.Builder
	title := "Dashboard - Orders"
	if m.Tab == tabProducts {
		title = "Dashboard - Products"
	}
	b.WriteString(titleStyle.Render(title))
	if !m.Expires.IsZero() {
		b.WriteString("  " + blurredStyle.Render("session expires "+m.Expires.Local().Format("15:04")))
	}
	b.WriteString("\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("r refresh  p orders/products  n next status  x cancel  l logout  q quit"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return docStyle.Render(b.String())
}
