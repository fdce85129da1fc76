// Package render turns a web into shareable artifacts.
//
// [Artifact] is the single entry point used by the CLI dump command and the
// HTTP server. It writes text and JSON through [webio] and draws DOT, SVG and
// PNG through the [nodelink] subpackage:
//
//	data, err := render.Artifact(ctx, w, render.Options{Format: render.FormatSVG}, c, nil)
//
// Images are expensive, so they are cached under a key derived from the DOT
// source and the render options.
//
// [nodelink]: github.com/matzehuels/spiderweb/pkg/render/nodelink
// [webio]: github.com/matzehuels/spiderweb/pkg/io
package render
