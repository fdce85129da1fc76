// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about route queries, cache activity, and topology changes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetQueryHooks(&myQueryHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Query().OnQueryStart(ctx, src, dst)
//	// ... explore ...
//	observability.Query().OnQueryComplete(ctx, src, dst, QueryStats{...}, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Query Hooks
// =============================================================================

// QueryStats summarizes one finished route query.
type QueryStats struct {
	Hops     int           // Edges on the returned path (0 when not found)
	Rounds   int           // Exploration rounds executed
	Commits  int           // Hops taken on a cached route hint
	Found    bool          // Whether the destination was reached
	Duration time.Duration // Wall time of the query
}

// QueryHooks receives events from shortest-path queries.
type QueryHooks interface {
	OnQueryStart(ctx context.Context, src, dst string)
	OnQueryComplete(ctx context.Context, src, dst string, stats QueryStats, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations. keyType distinguishes the
// per-edge route cache ("route") from the rendered artifact cache ("artifact").
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Web Hooks
// =============================================================================

// WebHooks receives topology change events.
type WebHooks interface {
	// OnEdgeRemoved records an edge removal. existed is false for no-op removals.
	OnEdgeRemoved(ctx context.Context, a, b string, existed bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopQueryHooks is a no-op implementation of QueryHooks.
type NoopQueryHooks struct{}

func (NoopQueryHooks) OnQueryStart(context.Context, string, string)                       {}
func (NoopQueryHooks) OnQueryComplete(context.Context, string, string, QueryStats, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopWebHooks is a no-op implementation of WebHooks.
type NoopWebHooks struct{}

func (NoopWebHooks) OnEdgeRemoved(context.Context, string, string, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	queryHooks QueryHooks = NoopQueryHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	webHooks   WebHooks   = NoopWebHooks{}
	hooksMu    sync.RWMutex
)

// SetQueryHooks registers custom query hooks.
// This should be called once at application startup before any queries run.
func SetQueryHooks(h QueryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		queryHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetWebHooks registers custom topology hooks.
func SetWebHooks(h WebHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		webHooks = h
	}
}

// Query returns the registered query hooks.
func Query() QueryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return queryHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Web returns the registered topology hooks.
func Web() WebHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return webHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	queryHooks = NoopQueryHooks{}
	cacheHooks = NoopCacheHooks{}
	webHooks = NoopWebHooks{}
}
