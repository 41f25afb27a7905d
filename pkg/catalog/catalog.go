// Package catalog declares the plugin's icons and resolves them once per process.
//
// Icons are listed in an embedded YAML manifest that maps a symbolic name such
// as "CheckPanel.ResultCorrect" to a resource path. Standard icons use
// absolute-style paths; rasterized icons use root-relative paths.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codeGROOVE-dev/eduicons/pkg/icon"
)

//go:embed catalog.yaml
var manifest []byte

//go:embed resources
var resources embed.FS

// Manifest returns the embedded catalog manifest.
func Manifest() []byte { return manifest }

// Resources returns the embedded resource root. Paths in the manifest resolve
// against it.
func Resources() fs.FS {
	sub, err := fs.Sub(resources, "resources")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded resources: %v", err))
	}
	return sub
}

// Entry is a single declared icon.
type Entry struct {
	Group      string `yaml:"-"`
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
	Rasterized bool   `yaml:"rasterized"`
	Size       int    `yaml:"size"`
}

// FullName returns the dotted name, e.g. "TaskToolWindow.Clock".
func (e Entry) FullName() string {
	if e.Group == "" {
		return e.Name
	}
	return e.Group + "." + e.Name
}

type document struct {
	Groups []struct {
		Name  string  `yaml:"name"`
		Icons []Entry `yaml:"icons"`
	} `yaml:"groups"`
}

// Catalog is a validated, read-only set of entries.
type Catalog struct {
	byName  map[string]int
	entries []Entry
}

// Parse decodes and validates a YAML manifest.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byName: make(map[string]int)}
	var errs []error
	for _, g := range doc.Groups {
		for _, e := range g.Icons {
			e.Group = g.Name
			if err := validate(e); err != nil {
				errs = append(errs, err)
				continue
			}
			name := e.FullName()
			if _, dup := c.byName[name]; dup {
				errs = append(errs, fmt.Errorf("duplicate icon %q", name))
				continue
			}
			c.byName[name] = len(c.entries)
			c.entries = append(c.entries, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

func validate(e Entry) error {
	name := e.FullName()
	switch {
	case e.Name == "":
		return fmt.Errorf("icon in group %q has no name", e.Group)
	case strings.Contains(e.Name, "."):
		return fmt.Errorf("icon %q: name must not contain '.'", name)
	case e.Path == "":
		return fmt.Errorf("icon %q has no path", name)
	case e.Size < 0:
		return fmt.Errorf("icon %q: negative size %d", name, e.Size)
	case e.Rasterized && strings.HasPrefix(e.Path, icon.Separator):
		return fmt.Errorf("icon %q: %w: rasterized path %q must not start with a slash", name, icon.ErrInvalidArgument, e.Path)
	case !e.Rasterized && !strings.HasPrefix(e.Path, icon.Separator):
		return fmt.Errorf("icon %q: standard path %q must start with a slash", name, e.Path)
	}
	return nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns a copy of all entries in manifest order.
func (c *Catalog) Entries() []Entry { return slices.Clone(c.entries) }

// Lookup finds an entry by its full name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Names returns all full names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.FullName())
	}
	slices.Sort(names)
	return names
}
