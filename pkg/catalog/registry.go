package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/codeGROOVE-dev/eduicons/pkg/icon"
	"github.com/codeGROOVE-dev/eduicons/pkg/iconloader"
)

// Registry resolves every catalog entry exactly once and then serves
// read-only handles. Safe for concurrent use.
type Registry struct {
	catalog  *Catalog
	resolver *icon.Resolver
	handles  map[string]*icon.Handle
	err      error
	once     sync.Once
}

// NewRegistry creates a registry. Nothing is loaded until the first call to
// Resolve, Get or MustGet.
func NewRegistry(c *Catalog, r *icon.Resolver) *Registry {
	return &Registry{catalog: c, resolver: r}
}

// Open parses the embedded manifest and binds it to loader and the embedded
// resources.
func Open(loader icon.Loader) (*Registry, error) {
	c, err := Parse(manifest)
	if err != nil {
		return nil, err
	}
	return NewRegistry(c, icon.NewResolver(loader, Resources())), nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := Open(iconloader.New(0, 0))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded manifest: %v", err))
	}
	return r
})

// Default returns the process-wide registry backed by the embedded manifest,
// the embedded resources and a default iconloader.FSLoader.
func Default() *Registry { return defaultRegistry() }

// Catalog returns the catalog the registry serves.
func (r *Registry) Catalog() *Catalog { return r.catalog }

// Resolve loads every entry. It runs once; later calls return the first result.
// Rasterized entries that fail to load are reported in the joined error and
// are absent from the registry. Standard entries always resolve.
func (r *Registry) Resolve() error {
	r.once.Do(func() {
		handles := make(map[string]*icon.Handle, r.catalog.Len())
		var errs []error
		for _, e := range r.catalog.entries {
			name := e.FullName()
			if !e.Rasterized {
				handles[name] = r.resolver.Load(e.Path)
				continue
			}
			h, err := r.resolver.LoadRasterized(e.Path)
			if err != nil {
				errs = append(errs, fmt.Errorf("icon %q: %w", name, err))
				continue
			}
			handles[name] = h
		}
		r.handles = handles
		r.err = errors.Join(errs...)
		slog.Debug("[CATALOG] Resolved icons", "count", len(handles), "failed", len(errs))
	})
	return r.err
}

// Get returns the handle for a full name such as "CourseView.Lesson".
func (r *Registry) Get(name string) (*icon.Handle, bool) {
	_ = r.Resolve() //nolint:errcheck // Failed entries are simply absent
	h, ok := r.handles[name]
	return h, ok
}

// MustGet is like Get but panics if the name is unknown or failed to load.
func (r *Registry) MustGet(name string) *icon.Handle {
	h, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("catalog: icon %q not available", name))
	}
	return h
}
