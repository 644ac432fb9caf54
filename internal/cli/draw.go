package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bugu00/chorogrid/pkg/cache"
	"github.com/bugu00/chorogrid/pkg/colorbin"
	"github.com/bugu00/chorogrid/pkg/grid"
	"github.com/bugu00/chorogrid/pkg/render/choropleth"
)

const (
	chartSquares  = "squares"
	chartHex      = "hex"
	chartMultihex = "multihex"
	chartMap      = "map"
)

// complementCutoff is the luminance threshold below which cell labels
// switch to white, on the [0, 1) scale Luminance reports (158 on the
// 8-bit scale).
const complementCutoff = 158.0 / 256

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	binFlags
	chart       string // chart type: squares, hex, multihex, map
	dataFile    string // CSV with the values, defaults to the grid file
	idColumn    string // id column shared by grid and data
	valueColumn string // data column to bin
	title       string // chart title
	legend      bool   // attach a legend
	legendTitle string // legend heading
	complements bool   // contrast-aware label colors
	themeFile   string // TOML style overrides
	output      string // output path, defaults next to the grid file
	noCache     bool   // disable the render cache
}

// drawCommand creates the draw command for rendering choropleths.
func (c *CLI) drawCommand() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw [grid.csv]",
		Short: "Render a grid file and a data column to an SVG choropleth",
		Long: `Render a grid file and a data column to an SVG choropleth.

The grid file describes the cells: one row per unit with an id column
plus the coordinates (or SVG path data) for the chart type. The values
come from the --data file, or from the grid file itself when the two
share columns. Values are split into --bins color bins from --palette
and each cell is filled with its bin's color.

Repeated identical renders are served from the local cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.valueColumn == "" {
				return fmt.Errorf("--value-column is required")
			}
			if err := validateChart(opts.chart); err != nil {
				return err
			}
			return c.runDraw(cmd.Context(), args[0], &opts)
		},
	}

	opts.binFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.chart, "chart", "c", chartSquares, "chart type: squares (default), hex, multihex, map")
	cmd.Flags().StringVarP(&opts.dataFile, "data", "d", "", "CSV with the values (defaults to the grid file)")
	cmd.Flags().StringVar(&opts.idColumn, "id-column", "abbrev", "id column shared by grid and data")
	cmd.Flags().StringVar(&opts.valueColumn, "value-column", "", "data column to bin (required)")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "chart title")
	cmd.Flags().BoolVar(&opts.legend, "legend", true, "draw a legend")
	cmd.Flags().StringVar(&opts.legendTitle, "legend-title", "", "legend heading")
	cmd.Flags().BoolVar(&opts.complements, "complements", false, "switch label colors on dark fills")
	cmd.Flags().StringVar(&opts.themeFile, "theme", "", "TOML file with style overrides")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults next to the grid file)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// validateChart checks the --chart flag value.
func validateChart(chart string) error {
	switch chart {
	case chartSquares, chartHex, chartMultihex, chartMap:
		return nil
	}
	return fmt.Errorf("unknown chart type %q (want squares, hex, multihex or map)", chart)
}

// runDraw loads the inputs, bins the values and writes the SVG.
func (c *CLI) runDraw(ctx context.Context, gridFile string, opts *drawOpts) error {
	prog := newProgress(c.Logger)

	table, err := grid.ReadFile(gridFile)
	if err != nil {
		return fmt.Errorf("load grid %s: %w", gridFile, err)
	}
	c.Logger.Debug("loaded grid", "file", gridFile, "rows", table.Len())

	dataFile := opts.dataFile
	if dataFile == "" {
		dataFile = gridFile
	}
	data := table
	if dataFile != gridFile {
		if data, err = grid.ReadFile(dataFile); err != nil {
			return fmt.Errorf("load data %s: %w", dataFile, err)
		}
	}

	ids, bin, err := opts.binColumn(data, opts.idColumn, opts.valueColumn)
	if err != nil {
		return fmt.Errorf("bin %s: %w", opts.valueColumn, err)
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	gridRaw, err := os.ReadFile(gridFile)
	if err != nil {
		return err
	}
	var themeRaw []byte
	if opts.themeFile != "" {
		if themeRaw, err = os.ReadFile(opts.themeFile); err != nil {
			return fmt.Errorf("read theme %s: %w", opts.themeFile, err)
		}
	}
	key := renderCacheKey(opts, gridRaw, ids, bin, themeRaw)

	doc, hit, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Debug("cache read failed", "err", err)
	}
	if !hit {
		spin := newSpinner(ctx, fmt.Sprintf("Drawing %s...", opts.chart))
		spin.start()
		doc, err = c.render(table, ids, bin, opts)
		if err != nil {
			spin.stopWithError("Render failed")
			return err
		}
		spin.stop()
		if err := store.Set(ctx, key, doc, 0); err != nil {
			c.Logger.Debug("cache write failed", "err", err)
		}
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(gridFile, ".csv") + ".svg"
	}
	if err := os.WriteFile(output, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Rendered %s", opts.chart))
	printSuccess("Wrote %s choropleth", opts.chart)
	printFile(output)
	missing := warnUnmatched(table, opts.idColumn, ids)
	printRenderStats(table.Len(), missing, hit)
	return nil
}

// renderCacheKey derives the cache key for a draw invocation. It covers
// everything that shapes the output document: the grid and theme file
// contents, the colored ids and the legend labels. Keying on the labels
// rather than just the colors keeps renders that differ only in label
// rounding from colliding.
func renderCacheKey(opts *drawOpts, gridRaw []byte, ids []string, bin *colorbin.Colorbin, themeRaw []byte) string {
	return cache.RenderKey(opts.chart, cache.Hash(gridRaw), ids, bin.ColorsOut,
		bin.FencepostLabels, opts.title, opts.legend, opts.legendTitle,
		opts.complements, cache.Hash(themeRaw))
}

// render builds the renderer and draws the requested chart type.
func (c *CLI) render(table *grid.Table, ids []string, bin *colorbin.Colorbin, opts *drawOpts) ([]byte, error) {
	ropts := []choropleth.Option{}
	if opts.title != "" {
		ropts = append(ropts, choropleth.WithTitle(opts.title))
	}
	if opts.legend {
		legend := choropleth.NewLegend(bin.Palette, bin.FencepostLabels)
		legend.Title = opts.legendTitle
		ropts = append(ropts, choropleth.WithLegend(legend))
	}
	if opts.complements {
		if err := bin.CalcComplements(complementCutoff, "#ffffff", "#000000"); err != nil {
			return nil, err
		}
		ropts = append(ropts, choropleth.WithFontColors(bin.Complements))
	}

	renderer, err := choropleth.New(table, opts.idColumn, ids, bin.ColorsOut, ropts...)
	if err != nil {
		return nil, err
	}

	var theme *choropleth.Theme
	if opts.themeFile != "" {
		if theme, err = choropleth.LoadTheme(opts.themeFile); err != nil {
			return nil, err
		}
	}

	switch opts.chart {
	case chartHex:
		cfg := choropleth.DefaultHexConfig()
		theme.ApplyHex(&cfg)
		return renderer.DrawHex(cfg)
	case chartMultihex:
		cfg := choropleth.DefaultMultihexConfig()
		theme.ApplyMultihex(&cfg)
		return renderer.DrawMultihex(cfg)
	case chartMap:
		cfg := choropleth.DefaultMapConfig()
		theme.ApplyMap(&cfg)
		return renderer.DrawMap(cfg)
	default:
		cfg := choropleth.DefaultSquareConfig()
		theme.ApplySquares(&cfg)
		return renderer.DrawSquares(cfg)
	}
}

// warnUnmatched reports ids that did not line up between data and grid
// and returns the number of uncolored cells.
func warnUnmatched(table *grid.Table, idColumn string, ids []string) int {
	invalid, missing, err := table.Match(idColumn, ids)
	if err != nil {
		return 0
	}
	if len(invalid) > 0 {
		printWarning("%d ids not in the grid: %s", len(invalid), strings.Join(invalid, ", "))
	}
	if len(missing) > 0 {
		printDetail("uncolored cells: %s", strings.Join(missing, ", "))
	}
	return len(missing)
}
