package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"golang.org/x/image/draw"

	"github.com/codeGROOVE-dev/eduicons/pkg/catalog"
	"github.com/codeGROOVE-dev/eduicons/pkg/iconloader"
)

// listIcons prints one line per catalog entry.
func listIcons(w io.Writer, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSIZE\tPATH") //nolint:errcheck // Flush reports errors
	for _, name := range c.Names() {
		e, _ := c.Lookup(name)
		kind := "standard"
		if e.Rasterized {
			kind = "rasterized"
		}
		size := "-"
		if e.Size > 0 {
			size = strconv.Itoa(e.Size)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, kind, size, e.Path) //nolint:errcheck // Flush reports errors
	}
	return tw.Flush()
}

// checkIcons resolves the catalog and reports placeholders and size mismatches.
// It fails if any rasterized icon could not be loaded.
func checkIcons(w io.Writer, reg *catalog.Registry, loader *iconloader.FSLoader) error {
	resolveErr := reg.Resolve()

	var missing, mismatched int
	for _, e := range reg.Catalog().Entries() {
		h, ok := reg.Get(e.FullName())
		switch {
		case !ok:
			missing++
			fmt.Fprintf(w, "FAIL  %s  %s\n", e.FullName(), e.Path) //nolint:errcheck // Best effort
		case h.Placeholder():
			missing++
			fmt.Fprintf(w, "MISS  %s  %s\n", e.FullName(), e.Path) //nolint:errcheck // Best effort
		case e.Size > 0 && !e.Rasterized && h.Bounds().Dx() != e.Size:
			mismatched++
			fmt.Fprintf(w, "SIZE  %s  got %dpx, declared %dpx\n", e.FullName(), h.Bounds().Dx(), e.Size) //nolint:errcheck // Best effort
		}
	}

	st := loader.Stats()
	fmt.Fprintf(w, "%d icons, %d missing, %d size mismatches\n", reg.Catalog().Len(), missing, mismatched) //nolint:errcheck // Best effort
	slog.Info("[CHECK] Catalog resolved",
		"icons", reg.Catalog().Len(),
		"missing", missing,
		"mismatched", mismatched,
		"cache_misses", st.Misses,
		"placeholders", st.Placeholders)

	if resolveErr != nil {
		return fmt.Errorf("resolve catalog: %w", resolveErr)
	}
	return nil
}

// renderIcon writes the named icon as a PNG file, optionally scaled.
func renderIcon(reg *catalog.Registry, name, outPath string, size int) error {
	h, ok := reg.Get(name)
	if !ok {
		if _, known := reg.Catalog().Lookup(name); known {
			return fmt.Errorf("icon %q failed to load", name)
		}
		return fmt.Errorf("unknown icon %q", name)
	}
	if h.Placeholder() {
		slog.Warn("Rendering placeholder for missing resource", "icon", name, "path", h.Path())
	}

	img := h.Image()
	if size > 0 {
		img = scale(img, size)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	if outPath == "" {
		outPath = name + ".png"
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	slog.Info("Rendered icon", "icon", name, "out", outPath, "bounds", img.Bounds().Size())
	return nil
}

// scale resizes an icon to size×size.
func scale(src image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
