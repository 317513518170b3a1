// Package cache provides storage for HTTP responses fetched from package
// registries.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, the default for the CLI
//   - [RedisCache]: shared cache for several machines or CI runners
//   - [NullCache]: never stores anything (--no-cache)
//
// All backends implement [Cache]. Keys are built by a [Keyer]; wrap one in
// a [ScopedKeyer] to give a shared backend its own namespace.
//
// # Retries
//
// [Backoff.Do] retries operations whose error was wrapped with [Retryable];
// the registry client uses [DefaultBackoff] for network failures and 5xx
// responses.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional time to live.
type Cache interface {
	// Get returns the value for key. A miss is reported as ok=false with a
	// nil error; errors are reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for an HTTP response in namespace.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer builds plain, readable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}
