// Package authgate decides, on every dashboard entry, whether the stored
// token still belongs to a signed-in account. It either hydrates the
// session with that account or sends the user to the login route.
package authgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"SocialFlow/internal/backend"
	"SocialFlow/internal/credentials"
	"SocialFlow/internal/session"
)

// Routes the gate and the actions navigate between
const (
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
)

// State of a gate check
type State int

const (
	Checking State = iota
	Authenticated
	Redirecting
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Redirecting:
		return "redirecting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrRedirect is returned by Require when the gate sent the user to login
var ErrRedirect = errors.New("authgate: not logged in")

// Navigator moves the user to another route
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(ctx context.Context, route string)

// Navigate calls f
func (f NavigatorFunc) Navigate(ctx context.Context, route string) {
	f(ctx, route)
}

// AccountFetcher validates the stored token against the backend
type AccountFetcher interface {
	Me(ctx context.Context) (*backend.MeResponse, error)
}

// Gate runs the dashboard bootstrap check once and remembers the outcome
type Gate struct {
	creds   credentials.Store
	account AccountFetcher
	store   *session.Store
	nav     Navigator
	logger  *slog.Logger

	mu    sync.Mutex
	state State
	done  chan struct{}
	busy  bool
}

// New creates a gate in the Checking state
func New(creds credentials.Store, account AccountFetcher, store *session.Store, nav Navigator, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		creds:   creds,
		account: account,
		store:   store,
		nav:     nav,
		logger:  logger,
		state:   Checking,
		done:    make(chan struct{}),
	}
}

// State returns the current state
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Check runs the bootstrap. Terminal states are sticky; concurrent callers
// wait for the check already in progress. A cancelled ctx leaves the gate
// in Checking so it can be retried.
func (g *Gate) Check(ctx context.Context) (State, error) {
	g.mu.Lock()
	if g.state != Checking {
		st := g.state
		g.mu.Unlock()
		return st, nil
	}
	if g.busy {
		done := g.done
		g.mu.Unlock()
		select {
		case <-done:
			// woken by a finished or an abandoned run; the latter is retried
			return g.Check(ctx)
		case <-ctx.Done():
			return Checking, ctx.Err()
		}
	}
	g.busy = true
	g.mu.Unlock()

	st, err := g.run(ctx)

	g.mu.Lock()
	g.busy = false
	close(g.done)
	if err == nil {
		g.state = st
	} else {
		g.done = make(chan struct{})
	}
	g.mu.Unlock()

	if st == Redirecting && err == nil {
		g.nav.Navigate(ctx, RouteLogin)
	}
	return st, err
}

// Wait blocks until the gate reaches a terminal state or ctx ends
func (g *Gate) Wait(ctx context.Context) (State, error) {
	for {
		g.mu.Lock()
		st, done := g.state, g.done
		g.mu.Unlock()
		if st != Checking {
			return st, nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return Checking, ctx.Err()
		}
	}
}

// Require runs Check and converts a redirect into ErrRedirect
func (g *Gate) Require(ctx context.Context) error {
	st, err := g.Check(ctx)
	if err != nil {
		return err
	}
	if st != Authenticated {
		return ErrRedirect
	}
	return nil
}

// Reset returns the gate to Checking, e.g. after logout or a fresh login
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Checking {
		return
	}
	g.state = Checking
	g.done = make(chan struct{})
}

func (g *Gate) run(ctx context.Context) (State, error) {
	token, err := g.creds.Token(ctx)
	if err != nil || token == "" {
		if err != nil && !errors.Is(err, credentials.ErrNotFound) {
			g.logger.Warn("failed to read stored token", "error", err)
		}
		g.logger.Info("no stored token, redirecting to login")
		return Redirecting, nil
	}

	me, err := g.account.Me(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Checking, ctxErr
		}
		g.logger.Info("stored token rejected, redirecting to login", "error", err)
		if rmErr := g.creds.RemoveToken(ctx); rmErr != nil {
			g.logger.Error("failed to remove rejected token", "error", rmErr)
		}
		g.store.SetUser(nil)
		return Redirecting, nil
	}

	user := session.UserFromMe(me)
	g.store.SetUser(user)
	g.logger.Info("session authenticated", "user_id", user.ID, "subscription", user.Subscription)
	return Authenticated, nil
}
