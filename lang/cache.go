package lang

import (
	"context"
	"log/slog"
	"slices"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/flowc/log"
)

// DefaultCacheSize is the number of parsed sources a [Cache] keeps when
// created with a non-positive size.
const DefaultCacheSize = 256

// Cache memoizes parses by source text.
//
// Trees returned from a Cache are shared between callers and must not be
// modified. A Cache is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[uint64, *cached]
	logger  log.Logger
	opts    []Option
}

type cached struct {
	decl   Declaration
	source string
	diags  Diagnostics
}

// NewCache returns a cache holding at most size parses. opts are applied to
// every parse performed through the cache.
func NewCache(size int, opts ...Option) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	entries, err := lru.New[uint64, *cached](size)
	if err != nil {
		return nil, ErrCache.Wrap(err).With(slog.Int("size", size))
	}

	return &Cache{
		entries: entries,
		logger:  makeOptions(opts...).logger,
		opts:    opts,
	}, nil
}

// Parse returns the parse of src, parsing it on first use.
func (c *Cache) Parse(ctx context.Context, src string) (Declaration, Diagnostics) {
	key := xxh3.HashString(src)

	if hit, ok := c.entries.Get(key); ok && hit.source == src {
		c.logger.TraceContext(ctx, "cache lookup",
			slog.String("source_hash", strconv.FormatUint(key, 16)),
			slog.Bool("cache_hit", true))

		return hit.decl, slices.Clone(hit.diags)
	}

	c.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(key, 16)),
		slog.Bool("cache_hit", false))

	d, diags := ParseString(ctx, src, c.opts...)
	c.entries.Add(key, &cached{decl: d, source: src, diags: diags})

	return d, slices.Clone(diags)
}

// Dependencies is [Dependencies] with parses served from c.
func (c *Cache) Dependencies(ctx context.Context, src string) ([]string, error) {
	return dependencies(src, func(s string) (Declaration, Diagnostics) {
		return c.Parse(ctx, s)
	})
}

// Len returns the number of cached parses.
func (c *Cache) Len() int { return c.entries.Len() }

// Purge removes every cached parse.
func (c *Cache) Purge() { c.entries.Purge() }
