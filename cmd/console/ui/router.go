package ui

import "sync"

// Screen names understood by the console.
const (
	RouteLogin     = "Login"
	RouteDashboard = "Dashboard"
)

// Navigator moves the console to another screen.
type Navigator interface {
	Navigate(destination string, params map[string]string)
}

type Route struct {
	Destination string
	Params      map[string]string
}

// Router queues navigation requests made during Update; RootModel drains them.
type Router struct {
	mu      sync.Mutex
	pending []Route
}

func NewRouter() *Router { return &Router{} }

func (r *Router) Navigate(destination string, params map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, Route{Destination: destination, Params: params})
}

// Take pops the oldest pending route.
func (r *Router) Take() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return Route{}, false
	}
	next := r.pending[0]
	r.pending = r.pending[1:]
	return next, true
}
