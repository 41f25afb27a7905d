// Package icon resolves resource paths into immutable icon handles.
//
// Two strategies are supported:
//   - Load: the standard vector load. Paths are absolute-style ("/icons/dot.svg")
//     and resolved against the resource root. It never fails; the loader
//     substitutes a placeholder for missing resources.
//   - LoadRasterized: a bitmap rendering, used for tool window icons. Paths are
//     relative to the resource root and must not start with "/".
//
// The actual decoding and caching is done by an injected Loader.
package icon

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"strings"
)

// Separator is the resource path separator.
const Separator = "/"

// Parameters passed to Loader.LoadRasterized. Both are always zero: the
// rasterizing loader offers no way to opt out of caching, so the resolver
// passes the no-op values.
const (
	NoCacheKey = 0
	NoFlags    = 0
)

// ErrInvalidArgument is returned when a rasterized path starts with a separator.
var ErrInvalidArgument = errors.New("invalid argument")

// Kind describes how a handle was rendered.
type Kind int

const (
	Vector Kind = iota // Standard load, rendered at intrinsic size
	Raster             // Fixed-resolution bitmap
)

func (k Kind) String() string {
	switch k {
	case Vector:
		return "vector"
	case Raster:
		return "raster"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Handle is a decoded, ready-to-render icon. Handles are immutable and may be
// shared freely between goroutines.
type Handle struct {
	img         image.Image
	path        string
	kind        Kind
	placeholder bool
}

// NewHandle wraps a decoded image. It is intended for Loader implementations.
func NewHandle(path string, kind Kind, img image.Image) *Handle {
	return &Handle{path: path, kind: kind, img: img}
}

// NewPlaceholder wraps the image a loader substitutes for a missing resource.
func NewPlaceholder(path string, kind Kind, img image.Image) *Handle {
	return &Handle{path: path, kind: kind, img: img, placeholder: true}
}

// Path returns the resource path the handle was loaded from.
func (h *Handle) Path() string { return h.path }

// Kind returns the rendering strategy.
func (h *Handle) Kind() Kind { return h.kind }

// Image returns the decoded image. Callers must not modify it.
func (h *Handle) Image() image.Image { return h.img }

// Placeholder reports whether the loader could not find or decode the resource.
func (h *Handle) Placeholder() bool { return h.placeholder }

// Bounds returns the image bounds, or an empty rectangle for a nil handle.
func (h *Handle) Bounds() image.Rectangle {
	if h == nil || h.img == nil {
		return image.Rectangle{}
	}
	return h.img.Bounds()
}

// Loader is the capability that decodes and caches icons.
//
// Load resolves a standard, absolute-style path within fsys. It always returns
// a handle.
//
// LoadRasterized resolves a root-relative path within fsys as a bitmap.
// cacheKey and flags customize caching; zero means default behavior.
type Loader interface {
	Load(fsys fs.FS, path string) *Handle
	LoadRasterized(fsys fs.FS, path string, cacheKey, flags int) (*Handle, error)
}

// Resolver binds a Loader to a resource root.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	loader Loader
	root   fs.FS
}

// NewResolver creates a resolver that loads resources from root.
func NewResolver(loader Loader, root fs.FS) *Resolver {
	return &Resolver{loader: loader, root: root}
}

// Load returns the standard icon at path. The path is expected to start with
// "/" but is not validated.
func (r *Resolver) Load(path string) *Handle {
	return r.loader.Load(r.root, path)
}

// LoadRasterized returns a bitmap rendering of the icon at path.
// path must be relative to the resource root; a leading "/" is rejected with
// ErrInvalidArgument before the loader is called. Loader errors are returned
// as-is.
func (r *Resolver) LoadRasterized(path string) (*Handle, error) {
	if strings.HasPrefix(path, Separator) {
		return nil, fmt.Errorf("%w: path must be specified without a leading slash: %q", ErrInvalidArgument, path)
	}
	return r.loader.LoadRasterized(r.root, path, NoCacheKey, NoFlags)
}

// MustLoadRasterized is like LoadRasterized but panics on error.
// Use it for icons declared at program start, where a bad path is a bug.
func (r *Resolver) MustLoadRasterized(path string) *Handle {
	h, err := r.LoadRasterized(path)
	if err != nil {
		panic(fmt.Sprintf("icon: load rasterized %q: %v", path, err))
	}
	return h
}
