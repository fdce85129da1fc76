package web

import (
	"github.com/RoaringBitmap/roaring/v2"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
)

// Reachable returns the set of nodes reachable from id, including id itself.
func (w *Web) Reachable(id ID) (*roaring.Bitmap, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.hasLocked(id) {
		return nil, swerr.Wrap(swerr.ErrCodeUnknownNode, ErrUnknownNode, "node #%d", id)
	}
	return w.floodLocked(id, roaring.New()), nil
}

// CountReachable counts how many nodes are reachable from id, including id.
func (w *Web) CountReachable(id ID) (int, error) {
	seen, err := w.Reachable(id)
	if err != nil {
		return 0, err
	}
	return int(seen.GetCardinality()), nil
}

// Components partitions the web into connected components, ordered by their
// lowest identifier.
func (w *Web) Components() []*roaring.Bitmap {
	w.mu.RLock()
	defer w.mu.RUnlock()

	seen := roaring.New()
	var out []*roaring.Bitmap
	for id := range w.nodes {
		if seen.Contains(uint32(id)) {
			continue
		}
		comp := w.floodLocked(ID(id), roaring.New())
		seen.Or(comp)
		out = append(out, comp)
	}
	return out
}

// floodLocked visits every node reachable from start, adding it to seen.
func (w *Web) floodLocked(start ID, seen *roaring.Bitmap) *roaring.Bitmap {
	queue := []ID{start}
	seen.Add(uint32(start))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, m := range w.nodes[n].order {
			if seen.CheckedAdd(uint32(m)) {
				queue = append(queue, m)
			}
		}
	}
	return seen
}
