package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/spiderweb/pkg/web"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels nodes with "name/id" and links with their traffic
	// ("up N dn M"). When false, only node names are shown.
	Detailed bool

	// Route, if set, is drawn in bold on top of the web.
	Route []web.ID
}

// ToDOT converts a web to an undirected Graphviz graph.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Each link is emitted once. In detailed mode, "up" counts the routes cached
// on the port from the lower-numbered node and "dn" those on the reverse port.
func ToDOT(w *web.Web, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [fontsize=10, fontcolor=gray40];\n")
	buf.WriteString("\n")

	onRoute := routeLinks(opts.Route)
	for _, id := range w.Nodes() {
		fmt.Fprintf(&buf, "  %s [label=%s];\n", dotQuote(w.Name(id)), dotQuote(nodeLabel(w, id, opts.Detailed)))
	}

	buf.WriteString("\n")
	for _, l := range w.Links() {
		var attrs []string
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=\"up %d dn %d\"", l.Up, l.Down))
		}
		if onRoute[[2]web.ID{l.One, l.Two}] {
			attrs = append(attrs, "penwidth=3", "color=\"#c0392b\"")
		}
		fmt.Fprintf(&buf, "  %s -- %s", dotQuote(w.Name(l.One)), dotQuote(w.Name(l.Two)))
		if len(attrs) > 0 {
			buf.WriteString(" [")
			for i, a := range attrs {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(a)
			}
			buf.WriteString("]")
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotQuote renders s as a DOT double-quoted string. Only quotes and
// backslashes are escaped; everything else is passed through as UTF-8.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func nodeLabel(w *web.Web, id web.ID, detailed bool) string {
	if !detailed {
		return w.Name(id)
	}
	return w.Name(id) + "/" + id.String()
}

// routeLinks indexes the links of a route by (lower, higher) identifier.
func routeLinks(route []web.ID) map[[2]web.ID]bool {
	out := make(map[[2]web.ID]bool, len(route))
	for i := 0; i+1 < len(route); i++ {
		a, b := route[i], route[i+1]
		out[[2]web.ID{min(a, b), max(a, b)}] = true
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
