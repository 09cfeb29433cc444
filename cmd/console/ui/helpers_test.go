package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"shop-admin/internal/auth"
	"shop-admin/internal/shop"
)

type recordingNavigator struct {
	routes []Route
}

func (n *recordingNavigator) Navigate(destination string, params map[string]string) {
	n.routes = append(n.routes, Route{Destination: destination, Params: params})
}

type recordingNotifier struct {
	alerts []Alert
}

func (n *recordingNotifier) Alert(title, message string) {
	n.alerts = append(n.alerts, Alert{Title: title, Message: message})
}

// fakeLoginServer answers every login with status/body and counts calls.
type fakeLoginServer struct {
	*httptest.Server
	calls int32
}

func newFakeLoginServer(t *testing.T, status int, body string) *fakeLoginServer {
	t.Helper()
	f := &fakeLoginServer{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeLoginServer) Calls() int { return int(atomic.LoadInt32(&f.calls)) }

func newAuthClient(t *testing.T, baseURL string) *auth.Client {
	t.Helper()
	c, err := auth.New(baseURL, auth.Options{})
	require.NoError(t, err)
	return c
}

type fakeShop struct {
	orders   []shop.Order
	products []shop.Product
	listErr  error
	updates  []string
}

func (f *fakeShop) ListOrders(_ context.Context, _ string) ([]shop.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.orders, nil
}

func (f *fakeShop) ListProducts(_ context.Context) ([]shop.Product, error) {
	return f.products, nil
}

func (f *fakeShop) UpdateOrderStatus(_ context.Context, id int, status string) (string, error) {
	f.updates = append(f.updates, status)
	return status, nil
}
