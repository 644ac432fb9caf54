package cli

import (
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/bugu00/chorogrid/pkg/colorbin"
	"github.com/bugu00/chorogrid/pkg/grid"
)

const drawGridCSV = "abbrev,square_x,square_y\nAA,0,0\nBB,1,0\n"

// svgLine returns the output line containing marker.
func svgLine(t *testing.T, svg, marker string) string {
	t.Helper()
	for _, line := range strings.Split(svg, "\n") {
		if strings.Contains(line, marker) {
			return line
		}
	}
	t.Fatalf("no line with %q in output", marker)
	return ""
}

func TestRenderComplements(t *testing.T) {
	table, err := grid.Read(strings.NewReader(drawGridCSV))
	if err != nil {
		t.Fatal(err)
	}
	bin, err := colorbin.New([]float64{1, 10}, []string{"#f0f0f0", "#101010"})
	if err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	opts := &drawOpts{chart: chartSquares, idColumn: "abbrev", complements: true}
	doc, err := c.render(table, []string{"AA", "BB"}, bin, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// AA sits on the light fill and needs a dark label; BB the reverse.
	svg := string(doc)
	if line := svgLine(t, svg, `id="textAA"`); !strings.Contains(line, ";fill:#000000") {
		t.Errorf("light-fill label = %s, want black", line)
	}
	if line := svgLine(t, svg, `id="textBB"`); !strings.Contains(line, ";fill:#ffffff") {
		t.Errorf("dark-fill label = %s, want white", line)
	}
}

func TestRenderCacheKeyCoversLabels(t *testing.T) {
	values := []float64{1, 10}
	palette := []string{"#f0f0f0", "#101010"}
	plain, err := colorbin.New(values, palette)
	if err != nil {
		t.Fatal(err)
	}
	rounded, err := colorbin.New(values, palette, colorbin.WithDecimals(0))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(plain.ColorsOut, rounded.ColorsOut) {
		t.Fatalf("expected identical colors, got %v vs %v", plain.ColorsOut, rounded.ColorsOut)
	}
	if slices.Equal(plain.FencepostLabels, rounded.FencepostLabels) {
		t.Fatalf("expected rounding to change labels, got %v", plain.FencepostLabels)
	}

	opts := &drawOpts{chart: chartSquares, legend: true}
	ids := []string{"AA", "BB"}
	gridRaw := []byte(drawGridCSV)
	k1 := renderCacheKey(opts, gridRaw, ids, plain, nil)
	k2 := renderCacheKey(opts, gridRaw, ids, rounded, nil)
	if k1 == k2 {
		t.Error("renders with different legend labels share a cache key")
	}
}

func TestRenderCacheKeyCoversThemeContents(t *testing.T) {
	bin, err := colorbin.New([]float64{1, 10}, []string{"#f0f0f0", "#101010"})
	if err != nil {
		t.Fatal(err)
	}
	opts := &drawOpts{chart: chartSquares, themeFile: "theme.toml"}
	ids := []string{"AA", "BB"}
	gridRaw := []byte(drawGridCSV)

	k1 := renderCacheKey(opts, gridRaw, ids, bin, []byte("[font]\nsize = 11\n"))
	k2 := renderCacheKey(opts, gridRaw, ids, bin, []byte("[font]\nsize = 14\n"))
	if k1 == k2 {
		t.Error("editing the theme file should change the cache key")
	}
	if k1 != renderCacheKey(opts, gridRaw, ids, bin, []byte("[font]\nsize = 11\n")) {
		t.Error("identical inputs should produce identical keys")
	}
}
