// Package cache stores rendered SVG documents keyed by their inputs.
//
// Rendering a choropleth is deterministic: the same grid file, id/color
// assignment and style options always produce the same document. The
// serve command exploits that by caching render output under a hash of
// the inputs, so repeated requests skip the draw entirely. Backends
// cover local CLI usage (files), server deployments (redis) and
// disabled caching (null).
package cache

import (
	"context"
	"time"
)

// Cache is the backend interface. Get reports a miss with ok=false and
// a nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Scoped wraps a Cache with a key prefix so callers sharing a backend
// do not collide, for example one namespace per grid file.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped returns a cache that prefixes every key.
func NewScoped(inner Cache, prefix string) *Scoped {
	return &Scoped{inner: inner, prefix: prefix}
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *Scoped) Close() error { return s.inner.Close() }

var _ Cache = (*Scoped)(nil)
