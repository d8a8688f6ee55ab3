// Package metadata resolves a raw release title to a cleaner display title
// through an ordered cascade of Providers, each wrapping one external
// metadata API behind a small resty client, tried in order until one
// answers.
package metadata

import (
	"context"
	"fmt"

	"github.com/coocood/freecache"
)

// Kind distinguishes a movie lookup from a series lookup; series search
// tries one extra, free, no-key provider that movies don't have.
type Kind int

const (
	Movie Kind = iota
	Series
)

func (k Kind) String() string {
	if k == Series {
		return "series"
	}
	return "movie"
}

// Provider is one metadata source. A missing API key collapses a provider
// into a permanent no-op (ok=false) rather than being omitted from the
// cascade, so callers never special-case "not configured".
type Provider interface {
	Name() string
	Search(ctx context.Context, title string, year int, kind Kind) (title2 string, ok bool)
}

const (
	metadataCacheSize = 2 * 1024 * 1024 // sized for roughly a few thousand titles
	negativeMarker    = "\x00"
)

// Resolver runs a fixed ordered cascade of Providers, caching every result
// (including negative ones) so a miss is never retried within the process
// lifetime.
type Resolver struct {
	providers []Provider
	cache     *freecache.Cache
}

// NewResolver builds a cascade in the given order. Movies skip any
// series-only provider automatically via Search's kind check.
func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		cache:     freecache.NewCache(metadataCacheSize),
	}
}

// Resolve returns the first non-empty title the cascade produces for
// (title, year, kind), or "", false if every provider came up empty.
func (r *Resolver) Resolve(ctx context.Context, title string, year int, kind Kind) (string, bool) {
	for _, p := range r.providers {
		key := fmt.Sprintf("%s:%s:%s:%d", p.Name(), kind, title, year)

		if cached, err := r.cache.Get([]byte(key)); err == nil {
			if string(cached) == negativeMarker {
				continue
			}
			return string(cached), true
		}

		result, ok := p.Search(ctx, title, year, kind)
		if ok && result != "" {
			_ = r.cache.Set([]byte(key), []byte(result), 0)
			return result, true
		}
		_ = r.cache.Set([]byte(key), []byte(negativeMarker), 0)
	}

	return "", false
}
