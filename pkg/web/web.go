// Package web implements an undirected graph of named nodes that answers
// shortest-hop route queries and memoizes partial routes on its edges.
//
// # Topology
//
// Every node name is interned through a [dict.Dictionary], so nodes are
// addressed by compact identifiers. Each undirected link is stored as two
// directed ports, and every directed port carries a route slot: a table
// mapping a destination to the remainder of a known shortest route.
//
// # Queries
//
// [Web.FindPath] floods the web with spiders in lockstep generations. A spider
// that sits on a node whose outbound port already knows the way to the
// destination commits to that single port instead of branching. The first
// spider to reach the destination holds a shortest route, which is then
// written back onto every port it crossed, in both directions.
//
// # Invalidation
//
// [Web.RemoveEdge] drops the two ports of a link together with their slots.
// Route hints elsewhere that relied on the link are left in place and are
// rejected the next time a spider inspects them.
//
// Web is safe for concurrent use. Queries share a read lock on the topology;
// route slots are guarded individually.
package web

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spiderweb/pkg/dict"
	swerr "github.com/matzehuels/spiderweb/pkg/errors"
)

var (
	// ErrUnknownNode is returned when a name or identifier is not part of the web.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDisconnected is returned by [Web.FindPathByName] when no route joins
	// the two nodes. [Web.FindPath] reports the same outcome as Route.Found == false.
	ErrDisconnected = errors.New("nodes are disconnected")

	// ErrSelfLink is returned by [Web.AddEdge] when both ends are the same node.
	ErrSelfLink = errors.New("node cannot link to itself")

	// ErrNoSuchEdge is returned by [Web.SetRouteHint] when the port does not exist.
	ErrNoSuchEdge = errors.New("no such edge")

	// ErrAsymmetricLink is returned by [Web.Validate] when a port has no
	// matching reverse port. This indicates corruption of the web.
	ErrAsymmetricLink = errors.New("asymmetric link")
)

// ID identifies a node in the web.
type ID = dict.ID

// ports holds the outbound links of one node. order is kept sorted so that
// neighbor iteration, and therefore tie-breaking, is deterministic.
type ports struct {
	order []ID
	slots map[ID]*routeSlot
}

func newPorts() *ports {
	return &ports{slots: make(map[ID]*routeSlot)}
}

// Web is a collection of interlinked nodes.
//
// The zero value is not usable - use New.
type Web struct {
	mu    sync.RWMutex
	names *dict.Dictionary
	nodes []*ports // indexed by ID
	links int

	// epoch advances whenever a link is added. Route hints written in an
	// older epoch may no longer be shortest and are not followed.
	epoch uint64

	logger  *log.Logger
	workers int
}

// Option configures a Web.
type Option func(*Web)

// WithLogger sets the logger used for debug output. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(w *Web) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithWorkers sets how many goroutines advance one generation of spiders.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(w *Web) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		w.workers = n
	}
}

// New creates an empty web.
func New(opts ...Option) *Web {
	w := &Web{
		names:   dict.New(),
		logger:  log.Default(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Logger returns the logger the web reports to.
func (w *Web) Logger() *log.Logger { return w.logger }

// Workers returns the configured spider parallelism.
func (w *Web) Workers() int { return w.workers }

// Insert places a node in the web and returns its identifier. Inserting a
// known name returns the existing identifier. A new node has no links.
func (w *Web) Insert(name string) ID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.insertLocked(name)
}

func (w *Web) insertLocked(name string) ID {
	id := w.names.Intern(name)
	for len(w.nodes) <= int(id) {
		w.nodes = append(w.nodes, newPorts())
	}
	return id
}

// AddEdge creates a bidirectional link between a and b. It reports whether
// the link is new; linking an already linked pair is a no-op that leaves its
// route slots untouched.
func (w *Web) AddEdge(a, b ID) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addEdgeLocked(a, b)
}

func (w *Web) addEdgeLocked(a, b ID) (bool, error) {
	if !w.hasLocked(a) {
		return false, swerr.Wrap(swerr.ErrCodeUnknownNode, ErrUnknownNode, "node #%d", a)
	}
	if !w.hasLocked(b) {
		return false, swerr.Wrap(swerr.ErrCodeUnknownNode, ErrUnknownNode, "node #%d", b)
	}
	if a == b {
		return false, swerr.Wrap(swerr.ErrCodeInvalidInput, ErrSelfLink, "link %s", w.Name(a))
	}
	if _, ok := w.nodes[a].slots[b]; ok {
		return false, nil
	}
	w.nodes[a].attach(b)
	w.nodes[b].attach(a)
	w.links++
	w.epoch++
	return true, nil
}

func (p *ports) attach(to ID) {
	i, _ := slices.BinarySearch(p.order, to)
	p.order = slices.Insert(p.order, i, to)
	p.slots[to] = newRouteSlot()
}

func (p *ports) detach(to ID) {
	if i, ok := slices.BinarySearch(p.order, to); ok {
		p.order = slices.Delete(p.order, i, i+1)
	}
	delete(p.slots, to)
}

// AddEdgeByName links two named nodes, inserting them if needed. Names are
// validated before anything is inserted.
func (w *Web) AddEdgeByName(a, b string) (bool, error) {
	if err := swerr.ValidateNodeName(a); err != nil {
		return false, err
	}
	if err := swerr.ValidateNodeName(b); err != nil {
		return false, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	ia := w.insertLocked(a)
	ib := w.insertLocked(b)
	return w.addEdgeLocked(ia, ib)
}

// Neighbors returns the nodes directly linked to id, in ascending order.
func (w *Web) Neighbors(id ID) ([]ID, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.hasLocked(id) {
		return nil, fmt.Errorf("%w: #%d", ErrUnknownNode, id)
	}
	return slices.Clone(w.nodes[id].order), nil
}

// HasEdge reports whether a and b are linked.
func (w *Web) HasEdge(a, b ID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.linkedLocked(a, b)
}

func (w *Web) linkedLocked(a, b ID) bool {
	if !w.hasLocked(a) {
		return false
	}
	_, ok := w.nodes[a].slots[b]
	return ok
}

// Lookup returns the identifier of a named node.
func (w *Web) Lookup(name string) (ID, bool) {
	return w.names.Lookup(name)
}

// Resolve returns the identifier of a named node, or an UNKNOWN_NODE error.
func (w *Web) Resolve(name string) (ID, error) {
	id, ok := w.names.Lookup(name)
	if !ok {
		return 0, swerr.Wrap(swerr.ErrCodeUnknownNode, ErrUnknownNode, "no node named %q", name)
	}
	return id, nil
}

// Name returns the name of id, or "#<id>" if id is unknown.
func (w *Web) Name(id ID) string {
	name, err := w.names.Resolve(id)
	if err != nil {
		return "#" + id.String()
	}
	return name
}

// Names maps a sequence of identifiers to their names.
func (w *Web) Names(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = w.Name(id)
	}
	return out
}

func (w *Web) hasLocked(id ID) bool { return int(id) < len(w.nodes) }

// NodeCount returns the number of nodes.
func (w *Web) NodeCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.nodes)
}

// EdgeCount returns the number of undirected links.
func (w *Web) EdgeCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.links
}

// Nodes returns every node identifier in ascending order.
func (w *Web) Nodes() []ID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]ID, len(w.nodes))
	for i := range out {
		out[i] = ID(i)
	}
	return out
}

// Validate checks that every port has a matching reverse port and that the
// link count agrees with the ports. It returns ErrAsymmetricLink on failure.
func (w *Web) Validate() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	ends := 0
	for u, p := range w.nodes {
		if len(p.order) != len(p.slots) {
			return fmt.Errorf("%w: %s has %d neighbors but %d slots",
				ErrAsymmetricLink, w.Name(ID(u)), len(p.order), len(p.slots))
		}
		for _, v := range p.order {
			if !w.linkedLocked(v, ID(u)) {
				return fmt.Errorf("%w: %s -> %s", ErrAsymmetricLink, w.Name(ID(u)), w.Name(v))
			}
		}
		ends += len(p.order)
	}
	if ends != 2*w.links {
		return fmt.Errorf("%w: %d ports for %d links", ErrAsymmetricLink, ends, w.links)
	}
	return nil
}
