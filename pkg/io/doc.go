// Package io reads and writes web topologies.
//
// # Adjacency Format
//
// The native input is a line-oriented adjacency list. Each line names a source
// node followed by its neighbors, separated by whitespace. A colon after the
// source name is optional:
//
//	jqt: rhn xhk nvd
//	rsh frs pzl lsr
//	xhk hfx
//
// Links are declared once and are bidirectional; declaring a link again from
// the other side is harmless. Blank lines and lines starting with '#' are
// ignored. A line holding only a source name inserts an isolated node.
//
// Use [ImportAdjacency] to read a file, or [ReadAdjacency] to read from any
// io.Reader. Errors carry the offending line number and an INVALID_FORMAT or
// INVALID_NODE_NAME code from [errors].
//
// [WriteAdjacency] writes the reverse: one line per node that has links to
// higher-numbered nodes, so every link appears exactly once. Isolated nodes
// get a line of their own. Reading the output back yields the same topology,
// although identifiers may be assigned in a different order.
//
// # JSON Format
//
// For tooling, [WriteJSON] exports the topology together with per-link
// traffic, the number of cached destinations in each direction:
//
//	{
//	  "nodes": [{"id": 0, "name": "jqt"}, {"id": 1, "name": "rhn"}],
//	  "links": [{"a": "jqt", "b": "rhn", "up": 3, "down": 1}]
//	}
//
// [ReadJSON] accepts the same document and ignores traffic, since route hints
// are never persisted.
//
// [errors]: github.com/matzehuels/spiderweb/pkg/errors
package io
