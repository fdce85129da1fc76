package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/web"
)

// maxLineSize bounds a single adjacency line.
const maxLineSize = 1 << 20

// ReadAdjacency builds a web from an adjacency list read from r.
//
// Nodes are numbered in order of first appearance. opts are passed to
// [web.New]. ReadAdjacency returns an error if a name is invalid, if a line
// links a node to itself, or if reading fails. ReadAdjacency does not close r.
func ReadAdjacency(r io.Reader, opts ...web.Option) (*web.Web, error) {
	w := web.New(opts...)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := readLine(w, text); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, swerr.Wrap(swerr.ErrCodeInvalidFormat, err, "read adjacency after line %d", line)
	}
	return w, nil
}

func readLine(w *web.Web, text string) error {
	fields := strings.Fields(text)
	src := strings.TrimSuffix(fields[0], ":")
	if err := swerr.ValidateNodeName(src); err != nil {
		return err
	}
	w.Insert(src)

	for _, dst := range fields[1:] {
		if dst == src {
			return swerr.New(swerr.ErrCodeInvalidFormat, "%s links to itself", src)
		}
		if _, err := w.AddEdgeByName(src, dst); err != nil {
			return err
		}
	}
	return nil
}

// ImportAdjacency reads an adjacency list file at path.
//
// A missing file yields a FILE_NOT_FOUND error; otherwise ImportAdjacency
// returns the same errors as [ReadAdjacency].
func ImportAdjacency(path string, opts ...web.Option) (*web.Web, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swerr.Wrap(swerr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w, err := ReadAdjacency(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// ReadJSON decodes a JSON topology from r into a new web.
//
// Nodes are inserted in document order, then links are added. A link that
// names a node missing from "nodes" is an error. Traffic counts are ignored.
// ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...web.Option) (*web.Web, error) {
	var data topology
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, swerr.Wrap(swerr.ErrCodeInvalidFormat, err, "decode")
	}

	w := web.New(opts...)
	for _, n := range data.Nodes {
		if err := swerr.ValidateNodeName(n.Name); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
		w.Insert(n.Name)
	}
	for _, l := range data.Links {
		a, err := w.Resolve(l.A)
		if err != nil {
			return nil, fmt.Errorf("link %s-%s: %w", l.A, l.B, err)
		}
		b, err := w.Resolve(l.B)
		if err != nil {
			return nil, fmt.Errorf("link %s-%s: %w", l.A, l.B, err)
		}
		if _, err := w.AddEdge(a, b); err != nil {
			return nil, fmt.Errorf("link %s-%s: %w", l.A, l.B, err)
		}
	}
	return w, nil
}

// ImportJSON reads a JSON topology file at path.
func ImportJSON(path string, opts ...web.Option) (*web.Web, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swerr.Wrap(swerr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}

// Import reads a topology file, choosing the format by extension: ".json"
// files are decoded with [ReadJSON], anything else as an adjacency list.
func Import(path string, opts ...web.Option) (*web.Web, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ImportJSON(path, opts...)
	}
	return ImportAdjacency(path, opts...)
}
