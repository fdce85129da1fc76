// Package cache stores rendered artifacts so repeated dumps of an unchanged
// web skip Graphviz.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI)
//   - [RedisCache]: a shared Redis instance (the HTTP server)
//   - [NullCache]: stores nothing
//
// Keys come from a [Keyer], which hashes the web's topology together with the
// render options. Route hints are never cached here; they live on the web's
// links and die with it.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact for a topology with
	// the given hash.
	ArtifactKey(topologyHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string   `json:"format"`
	Detailed bool     `json:"detailed,omitempty"`
	Route    []string `json:"route,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the topology hash and options.
func (DefaultKeyer) ArtifactKey(topologyHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", topologyHash, opts)
}
