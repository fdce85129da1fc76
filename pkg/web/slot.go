package web

import (
	"fmt"
	"slices"
	"sync"
)

// hint is the remainder of a route, stored on the port it starts from. Only
// hints written by a completed query are verified shortest; a spider never
// commits to any other.
type hint struct {
	suffix   []ID   // nodes after the port's far end, ending at the destination
	epoch    uint64 // topology epoch the route was written in
	verified bool
}

// followable reports whether a spider in the given epoch may commit to h.
func (h hint) followable(epoch uint64) bool {
	return h.verified && h.epoch == epoch
}

// routeSlot is the per-port route table, keyed by destination.
type routeSlot struct {
	mu     sync.RWMutex
	routes map[ID]hint
}

func newRouteSlot() *routeSlot {
	return &routeSlot{routes: make(map[ID]hint)}
}

func (s *routeSlot) get(dst ID) (hint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.routes[dst]
	return h, ok
}

// set replaces the route to dst. suffix must not be shared with the caller.
func (s *routeSlot) set(dst ID, h hint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[dst] = h
}

// live counts the hints a spider in epoch could follow.
func (s *routeSlot) live(epoch uint64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, h := range s.routes {
		if h.followable(epoch) {
			n++
		}
	}
	return n
}

func (s *routeSlot) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.routes)
}

// RouteHint returns the cached remainder of a route that leaves u through v
// towards dst: the nodes strictly after v, ending with dst. An empty suffix
// means v is dst. The second result is false when nothing is known, which
// does not imply that dst is unreachable.
func (w *Web) RouteHint(u, v, dst ID) ([]ID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.linkedLocked(u, v) {
		return nil, false
	}
	h, ok := w.nodes[u].slots[v].get(dst)
	if !ok {
		return nil, false
	}
	return slices.Clone(h.suffix), true
}

// SetRouteHint overwrites the cached route from u through v to dst.
// Queries write their own hints; this is exposed for tooling and tests.
//
// The suffix is stored unverified: [Web.RouteHint] returns it, but queries
// never commit to it and it is not counted by [Web.RouteCount]. A later query
// routed through the port to dst replaces it.
func (w *Web) SetRouteHint(u, v, dst ID, suffix []ID) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.linkedLocked(u, v) {
		return fmt.Errorf("%w: %s -> %s", ErrNoSuchEdge, w.Name(u), w.Name(v))
	}
	w.nodes[u].slots[v].set(dst, hint{suffix: slices.Clone(suffix), epoch: w.epoch})
	return nil
}

// RouteCount returns how many destinations the port u -> v holds a
// followable route to. Hints from before the last added link are not counted.
func (w *Web) RouteCount(u, v ID) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.linkedLocked(u, v) {
		return 0
	}
	return w.nodes[u].slots[v].live(w.epoch)
}

// ClearRoutes drops every cached route while keeping all links.
func (w *Web) ClearRoutes() {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, p := range w.nodes {
		for _, s := range p.slots {
			s.clear()
		}
	}
}
