package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/spiderweb/pkg/web"
)

type topology struct {
	Nodes []node `json:"nodes"`
	Links []link `json:"links"`
}

type node struct {
	ID   web.ID `json:"id"`
	Name string `json:"name"`
}

type link struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Up   int    `json:"up,omitempty"`
	Down int    `json:"down,omitempty"`
}

// WriteAdjacency writes the web as an adjacency list. Each link is written
// once, on the line of its lower-numbered end; nodes with no such link are
// omitted unless they are isolated.
func WriteAdjacency(w *web.Web, out io.Writer) error {
	bw := bufio.NewWriter(out)
	for _, id := range w.Nodes() {
		next, err := w.Neighbors(id)
		if err != nil {
			return err
		}
		higher := next[:0:0]
		for _, m := range next {
			if m > id {
				higher = append(higher, m)
			}
		}
		if len(higher) == 0 && len(next) > 0 {
			continue
		}
		bw.WriteString(w.Name(id))
		bw.WriteByte(':')
		for _, m := range higher {
			bw.WriteByte(' ')
			bw.WriteString(w.Name(m))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write adjacency: %w", err)
	}
	return nil
}

// ExportAdjacency writes the web to an adjacency list file at path.
func ExportAdjacency(w *web.Web, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteAdjacency(w, f)
}

// WriteJSON encodes the web and its per-link traffic as JSON.
func WriteJSON(w *web.Web, out io.Writer) error {
	ids := w.Nodes()
	links := w.Links()
	doc := topology{
		Nodes: make([]node, len(ids)),
		Links: make([]link, len(links)),
	}
	for i, id := range ids {
		doc.Nodes[i] = node{ID: id, Name: w.Name(id)}
	}
	for i, l := range links {
		doc.Links[i] = link{A: w.Name(l.One), B: w.Name(l.Two), Up: l.Up, Down: l.Down}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the web to a JSON file at path.
func ExportJSON(w *web.Web, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(w, f)
}
