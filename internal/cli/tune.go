package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bugu00/chorogrid/pkg/colorbin"
	"github.com/bugu00/chorogrid/pkg/grid"
	"github.com/bugu00/chorogrid/pkg/palette"
)

const (
	tuneMinBins = 2
	tuneMaxBins = 12
)

// tuneCommand creates the tune command for interactively picking a
// palette and bin count.
func (c *CLI) tuneCommand() *cobra.Command {
	var valueColumn string

	cmd := &cobra.Command{
		Use:   "tune [data.csv]",
		Short: "Interactively adjust palette and bin count against a column",
		Long: `Interactively adjust palette and bin count against a column.

Cycles through the built-in palettes and bin counts while showing the
live bin populations, so distribution problems (empty bins, one bin
swallowing everything) are visible before drawing. Quitting prints the
matching draw flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if valueColumn == "" {
				return fmt.Errorf("--value-column is required")
			}
			return c.runTune(args[0], valueColumn)
		},
	}

	cmd.Flags().StringVar(&valueColumn, "value-column", "", "data column to bin (required)")

	return cmd
}

// runTune loads the column and starts the interactive session.
func (c *CLI) runTune(dataFile, valueColumn string) error {
	data, err := grid.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("load data %s: %w", dataFile, err)
	}
	values, err := data.Floats(valueColumn)
	if err != nil {
		return err
	}

	model, err := newTuneModel(valueColumn, values)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	m, ok := final.(tuneModel)
	if !ok {
		return nil
	}
	printSuccess("Settings for %q", valueColumn)
	flags := fmt.Sprintf("--palette %s --bins %d", m.paletteName(), m.bins)
	if m.quantile {
		flags += " --quantile"
	}
	if m.decimals > colorbin.NoRounding {
		flags += fmt.Sprintf(" --decimals %d", m.decimals)
	}
	printDetail("chorogrid draw <grid.csv> --value-column %s %s", valueColumn, flags)
	return nil
}

// tuneModel is the bubbletea model for the tune session.
type tuneModel struct {
	column   string
	values   []float64
	palettes []string

	paletteIdx int
	bins       int
	quantile   bool
	decimals   int

	bin *colorbin.Colorbin
	err error
}

// newTuneModel builds the model and computes the initial binning.
func newTuneModel(column string, values []float64) (tuneModel, error) {
	m := tuneModel{
		column:   column,
		values:   values,
		palettes: palette.Names(),
		bins:     defaultBins,
		decimals: colorbin.NoRounding,
	}
	for i, name := range m.palettes {
		if name == defaultPalette {
			m.paletteIdx = i
		}
	}
	if err := m.rebin(); err != nil {
		return m, err
	}
	return m, nil
}

func (m tuneModel) paletteName() string {
	return m.palettes[m.paletteIdx]
}

// rebin recomputes the colorbin for the current settings.
func (m *tuneModel) rebin() error {
	colors, err := palette.Get(m.paletteName(), m.bins)
	if err != nil {
		return err
	}
	opts := []colorbin.Option{colorbin.WithDecimals(m.decimals)}
	if m.quantile {
		opts = append(opts, colorbin.WithQuantile())
	}
	m.bin, err = colorbin.New(m.values, colors, opts...)
	return err
}

func (m tuneModel) Init() tea.Cmd {
	return nil
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc", "enter":
		return m, tea.Quit
	case "left", "h":
		if m.bins > tuneMinBins {
			m.bins--
		}
	case "right", "l":
		if m.bins < tuneMaxBins {
			m.bins++
		}
	case "up", "k":
		m.paletteIdx = (m.paletteIdx + len(m.palettes) - 1) % len(m.palettes)
	case "down", "j":
		m.paletteIdx = (m.paletteIdx + 1) % len(m.palettes)
	case "m":
		m.quantile = !m.quantile
	case "-":
		if m.decimals > colorbin.NoRounding {
			m.decimals--
		}
	case "+", "=":
		if m.decimals < 6 {
			m.decimals++
		}
	default:
		return m, nil
	}

	m.err = m.rebin()
	return m, nil
}

func (m tuneModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Tuning %q", m.column)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ palette  ←/→ bins  m mode  +/- decimals  ⏎ accept  q quit"))
	b.WriteString("\n\n")

	mode := "proportional"
	if m.quantile {
		mode = "quantile"
	}
	rounding := "no rounding"
	if m.decimals > colorbin.NoRounding {
		rounding = fmt.Sprintf("%d decimals", m.decimals)
	}
	b.WriteString(fmt.Sprintf("  %s  %d bins  %s  %s\n\n",
		StyleValue.Render(m.paletteName()), m.bins, StyleDim.Render(mode), StyleDim.Render(rounding)))

	if m.err != nil {
		b.WriteString("  " + StyleWarning.Render(m.err.Error()) + "\n")
		return b.String()
	}

	max := 0
	for _, n := range m.bin.BinCounts {
		if n > max {
			max = n
		}
	}
	for i, color := range m.bin.Palette {
		b.WriteString(fmt.Sprintf("  %s %-14s %3d %s\n",
			swatch([]string{color}), m.bin.Labels[i], m.bin.BinCounts[i], bar(m.bin.BinCounts[i], max)))
	}
	return b.String()
}
