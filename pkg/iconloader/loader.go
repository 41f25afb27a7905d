// Package iconloader decodes icon resources from an fs.FS and caches them.
//
// FSLoader is the production binding of icon.Loader. It understands SVG
// (rendered with oksvg), PNG, WebP and BMP resources, including "@2x"
// high-density variants, which are downscaled to their logical size.
//
// A single FSLoader caches by path, so share one loader per resource root.
package iconloader

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/codeGROOVE-dev/eduicons/pkg/icon"
)

const (
	// DefaultRasterSize is the edge length of rasterized icons (tool window size).
	DefaultRasterSize = 16
	// DefaultMaxEntries bounds the handle cache.
	DefaultMaxEntries = 1024
)

// Flags for LoadRasterized.
const (
	// FlagSkipCache decodes the resource without consulting or filling the cache.
	FlagSkipCache = 1 << iota
)

// Stats counts cache activity.
type Stats struct {
	Hits         int64
	Misses       int64
	Placeholders int64
}

// FSLoader implements icon.Loader. Safe for concurrent use.
type FSLoader struct {
	cache        *cache
	group        singleflight.Group
	hits         atomic.Int64
	misses       atomic.Int64
	placeholders atomic.Int64
	rasterSize   int
}

// New creates a loader. Zero values select DefaultRasterSize and DefaultMaxEntries.
func New(rasterSize, maxEntries int) *FSLoader {
	if rasterSize <= 0 {
		rasterSize = DefaultRasterSize
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &FSLoader{
		cache:      newCache(maxEntries),
		rasterSize: rasterSize,
	}
}

// RasterSize returns the edge length used for rasterized loads.
func (l *FSLoader) RasterSize() int { return l.rasterSize }

// Stats returns a snapshot of cache counters.
func (l *FSLoader) Stats() Stats {
	return Stats{
		Hits:         l.hits.Load(),
		Misses:       l.misses.Load(),
		Placeholders: l.placeholders.Load(),
	}
}

// Load resolves an absolute-style path ("/icons/dot.svg") against fsys.
// Resources that are missing or cannot be decoded are replaced by a placeholder.
func (l *FSLoader) Load(fsys fs.FS, path string) *icon.Handle {
	h, err := l.cached(cacheKey(icon.Vector, path, 0), func() (*icon.Handle, error) {
		img, err := l.decodeResource(fsys, strings.TrimPrefix(path, icon.Separator), 0)
		if err != nil {
			slog.Warn("[ICON] Resource unavailable, using placeholder", "path", path, "error", err)
			l.placeholders.Add(1)
			return icon.NewPlaceholder(path, icon.Vector, placeholder(l.rasterSize)), nil
		}
		return icon.NewHandle(path, icon.Vector, img), nil
	})
	if err != nil {
		// Unreachable: the load function above never fails.
		return icon.NewPlaceholder(path, icon.Vector, placeholder(l.rasterSize))
	}
	return h
}

// LoadRasterized resolves a root-relative path against fsys and renders it as a
// RasterSize×RasterSize bitmap. A zero custom cache key derives the key from
// path; flags is a combination of Flag values.
func (l *FSLoader) LoadRasterized(fsys fs.FS, path string, custom, flags int) (*icon.Handle, error) {
	load := func() (*icon.Handle, error) {
		img, err := l.decodeResource(fsys, path, l.rasterSize)
		if err != nil {
			return nil, fmt.Errorf("load rasterized icon: %w", err)
		}
		return icon.NewHandle(path, icon.Raster, img), nil
	}

	if flags&FlagSkipCache != 0 {
		return load()
	}
	return l.cached(cacheKey(icon.Raster, path, custom), load)
}

// cached returns the handle stored under key, calling load at most once per key
// across concurrent callers. Failed loads are not cached.
func (l *FSLoader) cached(key string, load func() (*icon.Handle, error)) (*icon.Handle, error) {
	if h, ok := l.cache.lookup(key); ok {
		l.hits.Add(1)
		return h, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		if h, ok := l.cache.lookup(key); ok {
			l.hits.Add(1)
			return h, nil
		}
		l.misses.Add(1)
		h, err := load()
		if err != nil {
			return nil, err
		}
		l.cache.put(key, h)
		slog.Debug("[ICON] Loaded", "key", key, "size", h.Bounds().Size())
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	h, ok := v.(*icon.Handle)
	if !ok {
		return nil, errors.New("unexpected cache value")
	}
	return h, nil
}

func (*FSLoader) decodeResource(fsys fs.FS, name string, size int) (image.Image, error) {
	data, err := readResource(fsys, name)
	if err != nil {
		return nil, err
	}
	return decode(name, data, size)
}
