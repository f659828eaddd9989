package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"SocialFlow/internal/authgate"
	"SocialFlow/internal/ui"
)

// Navigator is the terminal stand-in for page navigation. It records the
// current route and tells the user what to run next.
type Navigator struct {
	mu    sync.Mutex
	out   io.Writer
	route string
}

// NewNavigator writes navigation hints to out
func NewNavigator(out io.Writer) *Navigator {
	return &Navigator{out: out}
}

// Navigate implements authgate.Navigator
func (n *Navigator) Navigate(_ context.Context, route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.route = route
	switch route {
	case authgate.RouteLogin:
		fmt.Fprintln(n.out, ui.Hint("You are signed out. Run `socialflow login` to continue."))
	case authgate.RouteDashboard:
		fmt.Fprintln(n.out, ui.OK("Signed in. Run `socialflow dashboard` to get started."))
	}
}

// Route is the last route navigated to
func (n *Navigator) Route() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}
