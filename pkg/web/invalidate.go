package web

import (
	"context"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/observability"
)

// RemoveEdge deletes the link between a and b, together with the route slots
// of both directed ports. It reports whether a link was removed; removing a
// link that does not exist is a no-op.
//
// Route hints on other ports that relied on the link are not scrubbed. A
// spider that later inspects such a hint finds the broken link in its suffix
// and branches from that node instead.
func (w *Web) RemoveEdge(ctx context.Context, a, b ID) (bool, error) {
	w.mu.Lock()
	if !w.hasLocked(a) {
		w.mu.Unlock()
		return false, swerr.Wrap(swerr.ErrCodeUnknownNode, ErrUnknownNode, "node #%d", a)
	}
	if !w.hasLocked(b) {
		w.mu.Unlock()
		return false, swerr.Wrap(swerr.ErrCodeUnknownNode, ErrUnknownNode, "node #%d", b)
	}
	existed := w.linkedLocked(a, b)
	if existed {
		w.nodes[a].detach(b)
		w.nodes[b].detach(a)
		w.links--
	}
	w.mu.Unlock()

	aName, bName := w.Name(a), w.Name(b)
	if existed {
		w.logger.Debug("removed link", "a", aName, "b", bName)
	} else {
		w.logger.Debug("no such link", "a", aName, "b", bName)
	}
	observability.Web().OnEdgeRemoved(ctx, aName, bName, existed)
	return existed, nil
}

// RemoveEdgeByName deletes the link between two named nodes. Unknown names
// yield an UNKNOWN_NODE error and leave the web untouched.
func (w *Web) RemoveEdgeByName(ctx context.Context, a, b string) (bool, error) {
	ia, err := w.Resolve(a)
	if err != nil {
		return false, err
	}
	ib, err := w.Resolve(b)
	if err != nil {
		return false, err
	}
	return w.RemoveEdge(ctx, ia, ib)
}
