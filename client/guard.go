package client

import (
	"context"
	"sync"
)

// PostGuard serializes a submit action so that rapid repeated triggers (a
// double-clicked button, an enter key held down) run it at most once at a
// time. Calls that arrive while a run is in flight are dropped.
type PostGuard struct {
	mu   sync.Mutex
	busy bool
}

// Do runs fn unless another run is already in flight, in which case it
// returns (false, nil) without calling fn.
func (g *PostGuard) Do(ctx context.Context, fn func(context.Context) error) (ran bool, err error) {
	g.mu.Lock()
	if g.busy {
		g.mu.Unlock()
		return false, nil
	}
	g.busy = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.busy = false
		g.mu.Unlock()
	}()
	return true, fn(ctx)
}

// Busy reports whether a run is currently in flight.
func (g *PostGuard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
