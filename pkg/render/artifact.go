package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/spiderweb/pkg/cache"
	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	webio "github.com/matzehuels/spiderweb/pkg/io"
	"github.com/matzehuels/spiderweb/pkg/render/nodelink"
	"github.com/matzehuels/spiderweb/pkg/web"
)

// Format is an output format for a web dump.
type Format string

const (
	FormatText Format = "text" // adjacency list
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatDOT, FormatSVG, FormatPNG}

// ArtifactTTL is how long rendered images stay cached.
const ArtifactTTL = 24 * time.Hour

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", swerr.New(swerr.ErrCodeUnsupported, "unsupported format %q (want text, json, dot, svg or png)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool { return f == FormatPNG }

// Options selects what to render.
type Options struct {
	Format   Format
	Detailed bool
	Route    []web.ID
}

// Artifact renders w in the requested format.
//
// Images are looked up in c before invoking Graphviz and stored afterwards.
// The key covers the topology and its traffic, so a web whose routes or
// links changed renders afresh. c may be nil.
func Artifact(ctx context.Context, w *web.Web, opts Options, c cache.Cache, k cache.Keyer) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.Format {
	case FormatText:
		if err := webio.WriteAdjacency(w, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		if err := webio.WriteJSON(w, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(w, nodelink.Options{Detailed: opts.Detailed, Route: opts.Route})), nil
	case FormatSVG, FormatPNG:
	default:
		return nil, swerr.New(swerr.ErrCodeUnsupported, "unsupported format %q", opts.Format)
	}

	dot := nodelink.ToDOT(w, nodelink.Options{Detailed: opts.Detailed, Route: opts.Route})
	if c == nil {
		return image(ctx, dot, opts.Format)
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}

	key := k.ArtifactKey(cache.Hash([]byte(dot)), cache.ArtifactKeyOpts{
		Format:   string(opts.Format),
		Detailed: opts.Detailed,
		Route:    w.Names(opts.Route),
	})
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	data, err := image(ctx, dot, opts.Format)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, data, ArtifactTTL); err != nil {
		w.Logger().Warn("artifact cache write failed", "key", key, "error", err)
	}
	return data, nil
}

func image(ctx context.Context, dot string, f Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if f == FormatPNG {
		data, err = nodelink.RenderPNG(ctx, dot)
	} else {
		data, err = nodelink.RenderSVG(ctx, dot)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}
	return data, nil
}
