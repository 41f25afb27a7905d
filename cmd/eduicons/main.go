// Package main implements eduicons, a command-line tool for inspecting and
// exporting the course plugin's icon catalog.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/codeGROOVE-dev/eduicons/pkg/appsettings"
	"github.com/codeGROOVE-dev/eduicons/pkg/catalog"
	"github.com/codeGROOVE-dev/eduicons/pkg/icon"
	"github.com/codeGROOVE-dev/eduicons/pkg/iconloader"
	"github.com/codeGROOVE-dev/eduicons/pkg/logging"
)

// Version information - set during build with -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

const appName = "eduicons"

// options holds parsed command-line flags.
type options struct {
	assetDir   string
	logFile    string
	logLevel   string
	outPath    string
	renderName string
	rasterSize int
	size       int
	check      bool
	list       bool
	version    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, appsettings.NewManager(appName)))
}

// run executes the tool and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, settings *appsettings.Manager) int {
	s, err := settings.Load()
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v; using defaults\n", err) //nolint:errcheck // Best effort
		s = appsettings.Defaults()
	}

	opts, err := parseFlags(args, stderr, s)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "%s %s (%s)\n", appName, version, commit) //nolint:errcheck // Best effort
		return 0
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err) //nolint:errcheck // Best effort
		return 2
	}
	logger, closeLog, err := logging.Setup(stderr, level, opts.logFile)
	if err != nil {
		fmt.Fprintln(stderr, err) //nolint:errcheck // Best effort
		return 1
	}
	defer closeLog() //nolint:errcheck // Nothing to do on close failure
	slog.SetDefault(logger)

	slog.Debug("Starting", "version", version, "commit", commit, "raster_size", opts.rasterSize, "asset_dir", opts.assetDir)

	reg, loader, err := openRegistry(opts)
	if err != nil {
		slog.Error("Failed to open icon catalog", "error", err)
		return 1
	}

	switch {
	case opts.list:
		err = listIcons(stdout, reg.Catalog())
	case opts.check:
		err = checkIcons(stdout, reg, loader)
	case opts.renderName != "":
		err = renderIcon(reg, opts.renderName, opts.outPath, opts.size)
	default:
		fmt.Fprintln(stderr, "one of -list, -check or -render is required") //nolint:errcheck // Best effort
		return 2
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer, s appsettings.Settings) (options, error) {
	var opts options
	fset := flag.NewFlagSet(appName, flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.BoolVar(&opts.list, "list", false, "List all icons in the catalog")
	fset.BoolVar(&opts.check, "check", false, "Resolve every icon and report missing resources")
	fset.StringVar(&opts.renderName, "render", "", "Render the named icon (e.g. CheckPanel.ResultCorrect) as PNG")
	fset.StringVar(&opts.outPath, "out", "", "Output file for -render (defaults to NAME.png)")
	fset.IntVar(&opts.size, "size", 0, "Scale rendered icon to SIZE×SIZE pixels (0 keeps the loaded size)")
	fset.IntVar(&opts.rasterSize, "raster-size", s.RasterSize, "Edge length of rasterized icons")
	fset.StringVar(&opts.assetDir, "assets", s.AssetDir, "Load resources from this directory instead of the embedded set")
	fset.StringVar(&opts.logLevel, "log-level", s.LogLevel, "Log level: debug, info, warn, error")
	fset.StringVar(&opts.logFile, "log-file", "", "Also write JSON logs to this file")
	fset.BoolVar(&opts.version, "version", false, "Print version and exit")
	if err := fset.Parse(args); err != nil {
		return opts, err
	}
	if opts.size < 0 || opts.rasterSize < 0 {
		err := errors.New("sizes must not be negative")
		fmt.Fprintln(stderr, err) //nolint:errcheck // Best effort
		return opts, err
	}
	return opts, nil
}

// openRegistry builds the catalog registry for the configured resource root.
func openRegistry(opts options) (*catalog.Registry, *iconloader.FSLoader, error) {
	c, err := catalog.Parse(catalog.Manifest())
	if err != nil {
		return nil, nil, err
	}

	var root fs.FS = catalog.Resources()
	if opts.assetDir != "" {
		info, err := os.Stat(opts.assetDir)
		if err != nil {
			return nil, nil, fmt.Errorf("asset dir: %w", err)
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("asset dir %q is not a directory", opts.assetDir)
		}
		root = os.DirFS(opts.assetDir)
	}

	loader := iconloader.New(opts.rasterSize, 0)
	return catalog.NewRegistry(c, icon.NewResolver(loader, root)), loader, nil
}
