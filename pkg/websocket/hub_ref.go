package websocket

import (
	"log"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// HubRef provides an atomic indirection to the currently-active Hub.
// The server swaps in a fresh hub after a panic without restarting HTTP;
// handlers call Get() for each new connection or broadcast.
type HubRef struct {
	p       atomic.Pointer[Hub]
	stopped atomic.Bool
}

func NewHubRef(initial *Hub) *HubRef {
	r := &HubRef{}
	r.p.Store(initial)
	return r
}

func (r *HubRef) Get() (*Hub, bool) {
	h := r.p.Load()
	return h, h != nil
}

func (r *HubRef) Set(h *Hub) {
	r.p.Store(h)
}

// Publish broadcasts to room on the current hub, if any.
func (r *HubRef) Publish(room, typ string, payload any) {
	if h, ok := r.Get(); ok {
		h.Broadcast(room, typ, payload)
	}
}

// Stop stops the current hub and prevents RunSupervised from restarting it.
func (r *HubRef) Stop() {
	r.stopped.Store(true)
	if h, ok := r.Get(); ok {
		h.Stop()
	}
}

// RunSupervised runs the current hub, replacing it with a fresh one whenever
// Run panics. It returns once Run exits normally (after Stop).
func (r *HubRef) RunSupervised(restartDelay time.Duration) {
	for {
		current, ok := r.Get()
		if !ok {
			current = NewHub()
			r.Set(current)
		}
		panicked := false
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					panicked = true
					log.Printf("hub.Run panic: %v\n%s", rec, debug.Stack())
				}
			}()
			current.Run()
		}()
		if !panicked || r.stopped.Load() {
			return
		}
		// Make Register/Broadcast on the dead hub no-ops instead of blocking forever.
		current.Stop()
		r.Set(NewHub())
		time.Sleep(restartDelay)
	}
}
