package actions

import (
	"context"
	"sync"
	"sync/atomic"
)

// Guard is the in-flight flag of one action. While a run is outstanding,
// further triggers fail with ErrInFlight instead of sending a duplicate.
type Guard struct {
	busy atomic.Bool
}

// Busy reports whether a run is outstanding
func (g *Guard) Busy() bool {
	return g.busy.Load()
}

// Run executes fn unless another run is outstanding
func (g *Guard) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer g.busy.Store(false)
	return fn(ctx)
}

// Scope ties requests to the lifetime of one page or command. Closing the
// scope cancels everything started under it and waits for it to return.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScope derives a scope from parent
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Go runs fn in the background under the scope's context
func (s *Scope) Go(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Close cancels outstanding work and waits for it
func (s *Scope) Close() {
	s.cancel()
	s.wg.Wait()
}
