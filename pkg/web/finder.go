package web

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/observability"
)

// parallelFrontier is the smallest generation that is split across workers.
// Smaller generations are crawled on the calling goroutine.
const parallelFrontier = 64

// Route is the outcome of a query.
type Route struct {
	// Path lists the nodes from source to destination inclusive.
	// It is nil when Found is false.
	Path []ID

	// Found is false when source and destination are in different components.
	Found bool

	// Rounds is the number of spider generations that were advanced.
	Rounds int

	// Commits counts the hops of the winning path that followed a cached route.
	Commits int
}

// Hops returns the number of links on the path.
func (r Route) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// query is the state of one FindPath call. It lives only while the caller
// holds the web's read lock.
type query struct {
	web     *Web
	dst     ID
	epoch   uint64
	visited *registry
	hits    atomic.Int64
	misses  atomic.Int64
}

// FindPath finds a shortest route between src and dst.
//
// The search front expands in rings from src. Every generation, each spider
// advances one hop, so the first spider to arrive at dst holds a route of
// minimal length. When several spiders arrive in the same generation, the one
// registered first wins. After a successful search the route is written onto
// every port it crossed, for dst in the forward direction and for src in the
// reverse direction.
//
// An unreachable destination is reported as Route.Found == false with a nil
// error once the source's component is exhausted. The error is non-nil only
// for unknown identifiers or context cancellation.
func (w *Web) FindPath(ctx context.Context, src, dst ID) (Route, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.hasLocked(src) {
		return Route{}, swerr.Wrap(swerr.ErrCodeUnknownNode, ErrUnknownNode, "source #%d", src)
	}
	if !w.hasLocked(dst) {
		return Route{}, swerr.Wrap(swerr.ErrCodeUnknownNode, ErrUnknownNode, "destination #%d", dst)
	}

	srcName, dstName := w.Name(src), w.Name(dst)
	hooks := observability.Query()
	hooks.OnQueryStart(ctx, srcName, dstName)
	start := time.Now()

	route, err := w.find(ctx, src, dst)

	elapsed := time.Since(start)
	hooks.OnQueryComplete(ctx, srcName, dstName, observability.QueryStats{
		Hops:     route.Hops(),
		Rounds:   route.Rounds,
		Commits:  route.Commits,
		Found:    route.Found,
		Duration: elapsed,
	}, err)
	w.logger.Debug("route query",
		"src", srcName,
		"dst", dstName,
		"found", route.Found,
		"hops", route.Hops(),
		"rounds", route.Rounds,
		"commits", route.Commits,
		"duration", elapsed)
	return route, err
}

func (w *Web) find(ctx context.Context, src, dst ID) (Route, error) {
	if src == dst {
		return Route{Path: []ID{src}, Found: true}, nil
	}

	q := &query{
		web:     w,
		dst:     dst,
		epoch:   w.epoch,
		visited: newRegistry(len(w.nodes)),
	}
	q.visited.claim(src, claimKey(0, 0))
	frontier := []spider{{at: &trail{node: src}, rooted: true, claim: claimKey(0, 0)}}

	rounds := 0
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return Route{Rounds: rounds}, err
		}
		for _, s := range frontier {
			if s.at.node == dst {
				path := s.at.path()
				q.remember(ctx, path)
				q.report(ctx)
				return Route{Path: path, Found: true, Rounds: rounds, Commits: s.commits}, nil
			}
		}

		next, err := q.advance(ctx, frontier)
		if err != nil {
			return Route{Rounds: rounds}, err
		}
		frontier = next
		rounds++
	}
	q.report(ctx)
	return Route{Rounds: rounds}, nil
}

// advance runs one generation and returns the surviving children in
// registration order.
func (q *query) advance(ctx context.Context, frontier []spider) ([]spider, error) {
	spawned := make([][]spider, len(frontier))
	workers := q.web.workers

	if len(frontier) < parallelFrontier || workers <= 1 {
		for i, s := range frontier {
			spawned[i] = q.crawl(s, i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		chunk := (len(frontier) + workers - 1) / workers
		for lo := 0; lo < len(frontier); lo += chunk {
			hi := min(lo+chunk, len(frontier))
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					if err := gctx.Err(); err != nil {
						return err
					}
					spawned[i] = q.crawl(frontier[i], i)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var next []spider
	for _, children := range spawned {
		for _, c := range children {
			if q.visited.owns(c.at.node, c.claim) {
				next = append(next, c)
			}
		}
	}
	return next, nil
}

// remember writes a verified shortest path onto the ports it crossed. Each
// port x -> y learns the rest of the path towards the destination, and each
// reverse port y -> x learns the way back towards the source.
func (q *query) remember(ctx context.Context, path []ID) {
	src, dst := path[0], path[len(path)-1]
	for i := 0; i+1 < len(path); i++ {
		x, y := path[i], path[i+1]
		q.web.nodes[x].slots[y].set(dst, hint{suffix: slices.Clone(path[i+2:]), epoch: q.epoch, verified: true})

		back := make([]ID, 0, i)
		for j := i - 1; j >= 0; j-- {
			back = append(back, path[j])
		}
		q.web.nodes[y].slots[x].set(src, hint{suffix: back, epoch: q.epoch, verified: true})
	}
	observability.Cache().OnCacheSet(ctx, "route", 2*(len(path)-1))
}

func (q *query) report(ctx context.Context) {
	hooks := observability.Cache()
	for range q.hits.Load() {
		hooks.OnCacheHit(ctx, "route")
	}
	for range q.misses.Load() {
		hooks.OnCacheMiss(ctx, "route")
	}
}

// FindPathByName finds a shortest route between two named nodes and returns
// the names along it. Unknown names yield an UNKNOWN_NODE error; an
// unreachable destination yields a DISCONNECTED error wrapping ErrDisconnected.
func (w *Web) FindPathByName(ctx context.Context, src, dst string) ([]string, error) {
	s, err := w.Resolve(src)
	if err != nil {
		return nil, err
	}
	d, err := w.Resolve(dst)
	if err != nil {
		return nil, err
	}
	route, err := w.FindPath(ctx, s, d)
	if err != nil {
		return nil, fmt.Errorf("route %s -> %s: %w", src, dst, err)
	}
	if !route.Found {
		return nil, swerr.Wrap(swerr.ErrCodeDisconnected, ErrDisconnected, "no route from %q to %q", src, dst)
	}
	return w.Names(route.Path), nil
}
