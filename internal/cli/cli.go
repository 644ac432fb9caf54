// Package cli implements the chorogrid command-line interface.
//
// This package provides commands for binning data columns into color
// bins, drawing choropleth charts (square, hex, multihex and map) as
// SVG, browsing the built-in palettes, interactively tuning bin
// settings, and serving renders over HTTP. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - draw: Render a grid file and a data column to an SVG choropleth
//   - bins: Inspect how a data column distributes across color bins
//   - palettes: List and preview the built-in ColorBrewer palettes
//   - tune: Interactively adjust palette and bin count against a column
//   - serve: Expose rendering over HTTP with response caching
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bugu00/chorogrid/pkg/buildinfo"
	"github.com/bugu00/chorogrid/pkg/cache"
)

const (
	// appName is the application name used for directories and display.
	appName = "chorogrid"

	// defaultBins is the bin count when --bins is not given.
	defaultBins = 5

	// defaultPalette is the palette when --palette is not given.
	defaultPalette = "YlGnBu"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "chorogrid",
		Short:        "Chorogrid draws square, hex and map choropleths as SVG",
		Long:         `Chorogrid turns a grid definition and a column of numbers into a colored choropleth: quantities are split into palette bins and each cell is filled with its bin's color.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.drawCommand())
	root.AddCommand(c.binsCommand())
	root.AddCommand(c.palettesCommand())
	root.AddCommand(c.tuneCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache builds the render cache backend for CLI use.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/chorogrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
