package web

import (
	"math"
	"slices"
	"sync/atomic"
)

// trail is a persistent route from the query source. Sibling spiders share
// the trail of their common ancestor.
type trail struct {
	node  ID
	prev  *trail
	depth int
}

func (t *trail) path() []ID {
	out := make([]ID, 0, t.depth+1)
	for at := t; at != nil; at = at.prev {
		out = append(out, at.node)
	}
	slices.Reverse(out)
	return out
}

// spider is one frontier unit of a query.
type spider struct {
	at      *trail
	from    ID   // node the spider arrived from
	rooted  bool // true for the first spider, which arrived from nowhere
	claim   uint64
	commits int
}

const unclaimed = math.MaxUint64

// claimKey orders arrivals at a node: shallower first, then by the
// registration order of the parent spider within its generation.
func claimKey(depth, rank int) uint64 {
	return uint64(depth)<<32 | uint64(uint32(rank))
}

// registry records, per node, the best arrival of the current query.
type registry struct {
	claims []atomic.Uint64
}

func newRegistry(n int) *registry {
	r := &registry{claims: make([]atomic.Uint64, n)}
	for i := range r.claims {
		r.claims[i].Store(unclaimed)
	}
	return r
}

// claim attempts to record an arrival at id. It returns false if the node is
// dominated, meaning an arrival at the same or a lesser depth is already
// registered ahead of this one.
func (r *registry) claim(id ID, key uint64) bool {
	slot := &r.claims[id]
	for {
		cur := slot.Load()
		if cur <= key {
			return false
		}
		if slot.CompareAndSwap(cur, key) {
			return true
		}
	}
}

// owns reports whether key is still the winning arrival at id.
func (r *registry) owns(id ID, key uint64) bool {
	return r.claims[id].Load() == key
}

// crawl advances s by one generation and returns its children.
//
//  1. If exactly one outbound port (other than the way back) holds a usable
//     route to the destination, the spider commits to it and spawns one child.
//  2. Otherwise it spawns one child per neighbor it can claim.
//  3. A spider with no claimable hop is a dead end and spawns nothing.
//
// Children may still lose their claim to a spider of lower rank running
// concurrently; the caller filters them once the generation completes.
func (q *query) crawl(s spider, rank int) []spider {
	n := s.at.node
	next := s.at.depth + 1
	key := claimKey(next, rank)
	out := q.web.nodes[n].order

	hits := 0
	var hinted ID
	for _, m := range out {
		if !s.rooted && m == s.from {
			continue
		}
		if q.usable(n, m) {
			hits++
			hinted = m
		}
	}

	if hits == 1 {
		q.hits.Add(1)
		if !q.visited.claim(hinted, key) {
			return nil
		}
		return []spider{{
			at:      &trail{node: hinted, prev: s.at, depth: next},
			from:    n,
			claim:   key,
			commits: s.commits + 1,
		}}
	}

	q.misses.Add(1)
	var children []spider
	for _, m := range out {
		if !s.rooted && m == s.from {
			continue
		}
		if !q.visited.claim(m, key) {
			continue
		}
		children = append(children, spider{
			at:      &trail{node: m, prev: s.at, depth: next},
			from:    n,
			claim:   key,
			commits: s.commits,
		})
	}
	return children
}

// usable reports whether the port n -> m holds a route to the destination
// that can be followed. The route must have been written by a query in the
// current epoch, and every link along its suffix must still exist; a broken link
// anywhere downstream means the hint is stale and the spider branches instead.
func (q *query) usable(n, m ID) bool {
	h, ok := q.web.nodes[n].slots[m].get(q.dst)
	if !ok || !h.followable(q.epoch) {
		return false
	}
	prev := m
	for _, x := range h.suffix {
		if !q.web.linkedLocked(prev, x) {
			return false
		}
		prev = x
	}
	return prev == q.dst
}
