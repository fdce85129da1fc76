package web

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// RouteAll routes every unordered pair of nodes and returns how many pairs
// are connected. It is a diagnostic for traffic analysis, not something
// queries depend on.
//
// Destinations are processed in batches of Workers() concurrent queries, with
// a synchronization point after each batch so that later batches can follow
// the routes written by earlier ones. progress, if non-nil, is called after
// every batch with the number of pairs done and the total.
//
// The work is quadratic in the number of nodes.
func (w *Web) RouteAll(ctx context.Context, progress func(done, total int)) (int, error) {
	nodes := w.Nodes()
	total := len(nodes) * (len(nodes) - 1) / 2
	batch := max(w.workers, 1)

	var found atomic.Int64
	done := 0
	for i, src := range nodes {
		rest := nodes[i+1:]
		for lo := 0; lo < len(rest); lo += batch {
			group := rest[lo:min(lo+batch, len(rest))]
			g, gctx := errgroup.WithContext(ctx)
			for _, dst := range group {
				g.Go(func() error {
					route, err := w.FindPath(gctx, src, dst)
					if err != nil {
						return err
					}
					if route.Found {
						found.Add(1)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return int(found.Load()), err
			}
			done += len(group)
			if progress != nil {
				progress(done, total)
			}
		}
	}
	w.logger.Debug("routed all pairs", "pairs", total, "connected", found.Load())
	return int(found.Load()), nil
}
