package cache

// ScopedKeyer wraps a Keyer with a prefix so several tools, or several
// registries, can share one backend without key collisions.
//
// Example usage:
//
//	// One namespace per depwalk installation on a shared Redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "depwalk:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}
