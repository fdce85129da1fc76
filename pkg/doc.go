// Package pkg provides the core libraries for Spiderweb route finding.
//
// # Overview
//
// Spiderweb keeps an undirected web of named nodes and answers shortest-route
// queries by flooding it with spiders, one generation per hop. Every answered
// query leaves its route on the links it crossed, so later queries that reach
// one of those links follow the stored route instead of flooding further.
// Links can be removed at any time; stale routes are detected when a spider
// reads them, never by rebuilding anything.
//
// The pkg directory is organized into these areas:
//
//  1. [web] - The web itself: nodes, links, route slots, the spider search
//  2. [dict] - Name to dense ID interning
//  3. [io] - Adjacency-list and JSON import/export
//  4. [render] - Text, JSON, DOT, SVG and PNG artifacts of a web
//  5. [cache] - Artifact caches (file, Redis, null)
//  6. [server] - HTTP access to a loaded web
//  7. [errors], [observability] - Coded errors and hooks
//
// # Architecture
//
// The typical data flow:
//
//	adjacency list / JSON
//	         ↓
//	    [io] package (parse, intern names)
//	         ↓
//	    [web] package (FindPath, RemoveEdge, AddEdge)
//	         ↓
//	    [render] package (artifacts, cached by [cache])
//
// # Quick Start
//
//	import (
//	    "context"
//	    "strings"
//
//	    webio "github.com/matzehuels/spiderweb/pkg/io"
//	)
//
//	w, _ := webio.ReadAdjacency(strings.NewReader("a: b\nb: c\n"))
//	path, _ := w.FindPathByName(context.Background(), "a", "c")
//	// path == []string{"a", "b", "c"}
//
// # Concurrency
//
// A [web.Web] is safe for concurrent use. Queries share a read lock and run
// the spiders of one generation on a bounded errgroup; link mutations take
// the write lock.
//
// [web]: github.com/matzehuels/spiderweb/pkg/web
// [dict]: github.com/matzehuels/spiderweb/pkg/dict
// [io]: github.com/matzehuels/spiderweb/pkg/io
// [render]: github.com/matzehuels/spiderweb/pkg/render
// [cache]: github.com/matzehuels/spiderweb/pkg/cache
// [server]: github.com/matzehuels/spiderweb/pkg/server
// [errors]: github.com/matzehuels/spiderweb/pkg/errors
// [observability]: github.com/matzehuels/spiderweb/pkg/observability
package pkg
