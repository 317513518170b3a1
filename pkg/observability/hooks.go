// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without tying the core to a
// specific backend. Consumers register hooks at startup; libraries call them
// to emit events about graph walks, cache operations and HTTP calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [Prometheus] is the bundled implementation; it satisfies every hook
// interface and can be registered for all of them at once.
//
// # Usage
//
// Register hooks at application startup:
//
//	m := observability.NewPrometheus()
//	observability.SetWalkHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//
// Libraries call hooks to emit events:
//
//	observability.Walk().OnResolve(ctx, name, depth, len(deps), elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Walk Hooks
// =============================================================================

// WalkHooks receives events from the dependency graph builder.
type WalkHooks interface {
	// OnWalkStart is called once before the root package is visited.
	OnWalkStart(ctx context.Context, root string, maxDepth int)
	// OnResolve is called after every dependency source call.
	OnResolve(ctx context.Context, name string, depth, deps int, duration time.Duration, err error)
	// OnWalkComplete is called once when the walk ends, successfully or not.
	OnWalkComplete(ctx context.Context, root string, nodes, unresolved int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopWalkHooks is a no-op implementation of WalkHooks.
type NoopWalkHooks struct{}

func (NoopWalkHooks) OnWalkStart(context.Context, string, int) {}
func (NoopWalkHooks) OnResolve(context.Context, string, int, int, time.Duration, error) {
}
func (NoopWalkHooks) OnWalkComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	walkHooks  WalkHooks  = NoopWalkHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetWalkHooks registers custom walk hooks.
// This should be called once at application startup before any walk.
func SetWalkHooks(h WalkHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		walkHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Walk returns the registered walk hooks.
func Walk() WalkHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return walkHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	walkHooks = NoopWalkHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
