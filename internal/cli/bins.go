package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/bugu00/chorogrid/pkg/colorbin"
	"github.com/bugu00/chorogrid/pkg/grid"
)

// binsOpts holds the command-line flags for the bins command.
type binsOpts struct {
	binFlags
	valueColumn string
	format      string // table or json
}

// binsReport is the JSON shape of the bins command output.
type binsReport struct {
	Column     string    `json:"column"`
	Count      int       `json:"count"`
	Mean       float64   `json:"mean"`
	StdDev     float64   `json:"std_dev"`
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
	Median     float64   `json:"median"`
	Fenceposts []float64 `json:"fenceposts"`
	Bins       []binRow  `json:"bins"`
}

// binRow describes one bin in the report.
type binRow struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// binsCommand creates the bins command for inspecting a binning without
// drawing anything.
func (c *CLI) binsCommand() *cobra.Command {
	var opts binsOpts

	cmd := &cobra.Command{
		Use:   "bins [data.csv]",
		Short: "Inspect how a data column distributes across color bins",
		Long: `Inspect how a data column distributes across color bins.

Shows the bin boundaries, the population of each bin and summary
statistics for the column, without drawing anything. Useful for
choosing between equal-width and quantile binning and for picking a
bin count before running draw.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.valueColumn == "" {
				return fmt.Errorf("--value-column is required")
			}
			return c.runBins(args[0], &opts)
		},
	}

	opts.binFlags.register(cmd)
	cmd.Flags().StringVar(&opts.valueColumn, "value-column", "", "data column to bin (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format: table (default), json")

	return cmd
}

// runBins bins the column and prints the report.
func (c *CLI) runBins(dataFile string, opts *binsOpts) error {
	data, err := grid.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("load data %s: %w", dataFile, err)
	}

	values, err := data.Floats(opts.valueColumn)
	if err != nil {
		return err
	}
	colors, err := opts.colors()
	if err != nil {
		return err
	}

	binOpts := []colorbin.Option{colorbin.WithDecimals(opts.decimals)}
	if opts.quantile {
		binOpts = append(binOpts, colorbin.WithQuantile())
	}
	bin, err := colorbin.New(values, colors, binOpts...)
	if err != nil {
		return err
	}

	report := buildBinsReport(opts.valueColumn, bin)

	if opts.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printBinsReport(report)
	return nil
}

// buildBinsReport assembles the report from a computed colorbin.
func buildBinsReport(column string, bin *colorbin.Colorbin) binsReport {
	sorted := append([]float64(nil), bin.Quantities...)
	sort.Float64s(sorted)

	rows := make([]binRow, len(bin.Palette))
	for i := range bin.Palette {
		rows[i] = binRow{
			Label: bin.Labels[i],
			Color: bin.Palette[i],
			Count: bin.BinCounts[i],
		}
	}

	return binsReport{
		Column:     column,
		Count:      len(bin.Quantities),
		Mean:       stat.Mean(bin.Quantities, nil),
		StdDev:     stat.StdDev(bin.Quantities, nil),
		Min:        bin.BinMin,
		Max:        bin.BinMax,
		Median:     stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Fenceposts: bin.Fenceposts,
		Bins:       rows,
	}
}

// printBinsReport renders the report as a styled terminal table.
func printBinsReport(report binsReport) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Binning of %q", report.Column)))
	printDetail("n=%d mean=%s stddev=%s median=%s",
		report.Count,
		colorbin.FormatQuantity(report.Mean),
		colorbin.FormatQuantity(report.StdDev),
		colorbin.FormatQuantity(report.Median))
	fmt.Println()

	rows := make([][]string, len(report.Bins))
	for i, b := range report.Bins {
		rows[i] = []string{swatch([]string{b.Color}), b.Color, b.Label, fmt.Sprintf("%d", b.Count), bar(b.Count, maxCount(report.Bins))}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Color", "Range", "Count", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	fmt.Println(t.Render())
}

// bar renders a proportional histogram bar.
func bar(count, max int) string {
	if max == 0 {
		return ""
	}
	const width = 20
	n := count * width / max
	out := ""
	for i := 0; i < n; i++ {
		out += "█"
	}
	return StyleDim.Render(out)
}

// maxCount returns the largest bin population.
func maxCount(bins []binRow) int {
	max := 0
	for _, b := range bins {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}
