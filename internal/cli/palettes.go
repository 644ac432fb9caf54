package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bugu00/chorogrid/pkg/palette"
)

// palettesCommand creates the palettes command for browsing the
// built-in ColorBrewer palettes.
func (c *CLI) palettesCommand() *cobra.Command {
	var (
		bins        int
		paletteFile string
	)

	cmd := &cobra.Command{
		Use:   "palettes [name]",
		Short: "List and preview the built-in ColorBrewer palettes",
		Long: `List and preview the built-in ColorBrewer palettes.

Without arguments, lists every palette with a color swatch. With a
palette name, prints the hex codes at the requested bin count, ready
to paste into a palette file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showPalette(args[0], paletteFile, bins)
			}
			return listPalettes(bins)
		},
	}

	cmd.Flags().IntVarP(&bins, "bins", "b", defaultBins, "number of colors to sample")
	cmd.Flags().StringVar(&paletteFile, "palette-file", "", "YAML file with custom palettes")

	return cmd
}

// listPalettes prints every built-in palette with a swatch.
func listPalettes(bins int) error {
	fmt.Println(StyleTitle.Render("Built-in palettes"))
	fmt.Println()
	for _, name := range palette.Names() {
		colors, err := palette.Get(name, bins)
		if err != nil {
			return err
		}
		fmt.Printf("  %-10s %s\n", name, swatch(colors))
	}
	fmt.Println()
	printDetail("chorogrid palettes <name> prints the hex codes")
	return nil
}

// showPalette prints one palette's hex codes.
func showPalette(name, paletteFile string, bins int) error {
	var (
		colors []string
		err    error
	)
	if paletteFile != "" {
		custom, loadErr := palette.LoadFile(paletteFile)
		if loadErr != nil {
			return loadErr
		}
		if base, ok := custom[name]; ok {
			colors, err = palette.Resample(base, bins)
		} else {
			colors, err = palette.Get(name, bins)
		}
	} else {
		colors, err = palette.Get(name, bins)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", StyleTitle.Render(name), swatch(colors))
	fmt.Println(StyleValue.Render(strings.Join(colors, " ")))
	return nil
}
