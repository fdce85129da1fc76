package web

import (
	"cmp"
	"slices"
)

// Link is an undirected link seen from its lower-numbered end.
type Link struct {
	One, Two ID

	// Up counts the followable routes cached on the port One -> Two,
	// Down those on Two -> One.
	Up, Down int
}

// Traffic is the total number of routes known to cross the link.
func (l Link) Traffic() int { return l.Up + l.Down }

// Links returns every undirected link exactly once, ordered by (One, Two).
func (w *Web) Links() []Link {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Link, 0, w.links)
	for u, p := range w.nodes {
		one := ID(u)
		for _, two := range p.order {
			if two < one {
				continue
			}
			out = append(out, Link{
				One:  one,
				Two:  two,
				Up:   p.slots[two].live(w.epoch),
				Down: w.nodes[two].slots[one].live(w.epoch),
			})
		}
	}
	return out
}

// BusiestLinks returns up to n links ordered by descending traffic. Ties keep
// the order of [Web.Links].
func (w *Web) BusiestLinks(n int) []Link {
	links := w.Links()
	slices.SortStableFunc(links, func(a, b Link) int {
		return cmp.Compare(b.Traffic(), a.Traffic())
	})
	if n >= 0 && n < len(links) {
		links = links[:n]
	}
	return links
}
