package app

import "sync/atomic"

// Gate is closed until startup work finishes. The zero value is closed.
type Gate struct {
	ready atomic.Bool
}

func (g *Gate) Ready() bool {
	return g.ready.Load()
}

func (g *Gate) Open() {
	g.ready.Store(true)
}
