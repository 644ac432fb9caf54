package choropleth

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bugu00/chorogrid/pkg/errors"
)

func writeTheme(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadThemeAppliesOverrides(t *testing.T) {
	path := writeTheme(t, `
[font]
family = "Lato"
size = 14.0

[squares]
cell_width = 50.0
roundedness = 0.0
stroke_color = "#eeeeee"

[map]
stroke_width = 1.0
`)
	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}

	cfg := DefaultSquareConfig()
	theme.ApplySquares(&cfg)
	if cfg.Font.Family != "Lato" || cfg.Font.Size != 14 {
		t.Errorf("font override not applied: %+v", cfg.Font)
	}
	if cfg.CellWidth != 50 {
		t.Errorf("CellWidth = %g, want 50", cfg.CellWidth)
	}
	if cfg.Roundedness != 0 {
		t.Errorf("Roundedness = %g, want 0", cfg.Roundedness)
	}
	if cfg.StrokeColor != "#eeeeee" {
		t.Errorf("StrokeColor = %q, want #eeeeee", cfg.StrokeColor)
	}
	// Untouched fields keep their defaults.
	if cfg.Gutter != 1 || cfg.MarginTop != 60 {
		t.Errorf("unrelated fields changed: gutter %g margin %g", cfg.Gutter, cfg.MarginTop)
	}

	// The squares section does not leak into the hex config.
	hexCfg := DefaultHexConfig()
	theme.ApplyHex(&hexCfg)
	if hexCfg.CellWidth != 40 {
		t.Errorf("hex CellWidth = %g, want default 40", hexCfg.CellWidth)
	}
	if hexCfg.Font.Family != "Lato" {
		t.Error("shared font override should apply to hex too")
	}

	mapCfg := DefaultMapConfig()
	theme.ApplyMap(&mapCfg)
	if mapCfg.StrokeWidth != 1 {
		t.Errorf("map StrokeWidth = %g, want 1", mapCfg.StrokeWidth)
	}
	if mapCfg.MapWidth != 959 {
		t.Errorf("map MapWidth = %g, want default 959", mapCfg.MapWidth)
	}
}

func TestLoadThemeBadFile(t *testing.T) {
	path := writeTheme(t, "[font\nbroken")
	if _, err := LoadTheme(path); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Fatalf("err = %v, want INVALID_THEME", err)
	}
}

func TestApplyNilTheme(t *testing.T) {
	var theme *Theme
	cfg := DefaultSquareConfig()
	theme.ApplySquares(&cfg)
	if cfg.CellWidth != 40 {
		t.Errorf("nil theme changed config: %+v", cfg)
	}
}

func TestLegendValidate(t *testing.T) {
	tests := []struct {
		name   string
		colors int
		labels int
		ok     bool
	}{
		{"one per color", 4, 4, true},
		{"fenceposts", 4, 5, true},
		{"gradient endpoints", 6, 2, true},
		{"no colors", 0, 2, false},
		{"mismatch", 4, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colors := make([]string, tt.colors)
			for i := range colors {
				colors[i] = "#000000"
			}
			labels := make([]string, tt.labels)
			for i := range labels {
				labels[i] = "x"
			}
			err := NewLegend(colors, labels).validate()
			if tt.ok && err != nil {
				t.Errorf("validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidLegend) {
				t.Errorf("validate() = %v, want INVALID_LEGEND", err)
			}
		})
	}
}

func TestLegendGradientPadding(t *testing.T) {
	l := NewLegend(
		[]string{"#111111", "#222222", "#333333", "#444444"},
		[]string{"0", "100"},
	)
	var buf bytes.Buffer
	if err := l.render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	// Only the endpoint labels render; the first sits at index 0 (top,
	// highest bin) and the second at the last fencepost.
	for _, want := range []string{`legendlabel0`, `>100<`, `legendlabel4`, `>0<`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	for _, id := range []string{"legendlabel1", "legendlabel2", "legendlabel3"} {
		if strings.Contains(out, id) {
			t.Errorf("interior label %s should be blank", id)
		}
	}
}

func TestMultihexStepRoundTrip(t *testing.T) {
	// Opposite moves cancel out.
	pairs := [][2]byte{{'a', 'd'}, {'b', 'e'}, {'c', 'f'}}
	for _, p := range pairs {
		x, y, err := multihexStep(10, 10, 30, p[0])
		if err != nil {
			t.Fatal(err)
		}
		x, y, err = multihexStep(x, y, 30, p[1])
		if err != nil {
			t.Fatal(err)
		}
		if x != 10 || y != 10 {
			t.Errorf("%c then %c moved (10,10) to (%g,%g)", p[0], p[1], x, y)
		}
	}
}
