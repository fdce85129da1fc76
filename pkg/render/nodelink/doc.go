// Package nodelink renders a web as a node-link diagram.
//
// # Usage
//
// Convert a web to DOT, then render it with Graphviz:
//
//	dot := nodelink.ToDOT(w, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: label nodes "name/id" and links "up N dn M", where the
//     counts are the destinations cached on each direction of the link
//   - Route: highlight the links of one route
//
// # DOT Format
//
// [ToDOT] produces an undirected graph laid out with neato, since a web has
// no natural direction. The source can be rendered in process via
// [RenderSVG] and [RenderPNG], or saved for external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering,
// so no Graphviz installation is required.
package nodelink
