package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/bugu00/chorogrid/pkg/colorbin"
	"github.com/bugu00/chorogrid/pkg/grid"
	"github.com/bugu00/chorogrid/pkg/palette"
)

// binFlags holds the flags shared by every command that bins a data
// column: draw, bins and tune.
type binFlags struct {
	paletteName string
	paletteFile string
	bins        int
	quantile    bool
	decimals    int
}

// register adds the shared flags to cmd.
func (f *binFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.paletteName, "palette", "p", defaultPalette, "palette name (see 'chorogrid palettes')")
	cmd.Flags().StringVar(&f.paletteFile, "palette-file", "", "YAML file with custom palettes")
	cmd.Flags().IntVarP(&f.bins, "bins", "b", defaultBins, "number of color bins")
	cmd.Flags().BoolVarP(&f.quantile, "quantile", "q", false, "equal-population bins instead of equal-width")
	cmd.Flags().IntVar(&f.decimals, "decimals", colorbin.NoRounding, "round bin boundaries to this many decimals")
}

// colors resolves the palette flags to a color list of the requested
// bin count. A palette file takes priority over the built-ins.
func (f *binFlags) colors() ([]string, error) {
	if f.paletteFile != "" {
		custom, err := palette.LoadFile(f.paletteFile)
		if err != nil {
			return nil, err
		}
		if colors, ok := custom[f.paletteName]; ok {
			return palette.Resample(colors, f.bins)
		}
	}
	return palette.Get(f.paletteName, f.bins)
}

// binColumn reads the id and value columns from table, drops rows whose
// value is empty, and bins the survivors. The returned ids run parallel
// to the colorbin's quantities and colors.
func (f *binFlags) binColumn(table *grid.Table, idColumn, valueColumn string) ([]string, *colorbin.Colorbin, error) {
	ids, err := table.Strings(idColumn)
	if err != nil {
		return nil, nil, err
	}
	values, err := table.Floats(valueColumn)
	if err != nil {
		return nil, nil, err
	}

	// Colorbin drops NaN quantities internally; drop the matching ids
	// here so the two stay aligned.
	keptIDs := make([]string, 0, len(ids))
	keptValues := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		keptIDs = append(keptIDs, ids[i])
		keptValues = append(keptValues, v)
	}

	colors, err := f.colors()
	if err != nil {
		return nil, nil, err
	}

	opts := []colorbin.Option{colorbin.WithDecimals(f.decimals)}
	if f.quantile {
		opts = append(opts, colorbin.WithQuantile())
	}
	bin, err := colorbin.New(keptValues, colors, opts...)
	if err != nil {
		return nil, nil, err
	}
	return keptIDs, bin, nil
}
