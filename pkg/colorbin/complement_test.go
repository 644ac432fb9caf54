package colorbin

import (
	"math"
	"slices"
	"testing"

	"github.com/bugu00/chorogrid/pkg/errors"
)

func TestLuminance(t *testing.T) {
	tests := []struct {
		color string
		want  float64
	}{
		{"#000000", 0},
		{"#ffffff", 255.0 / 256.0},
		{"#ff0000", 0.299 * 255 / 256},
		{"#00ff00", 0.587 * 255 / 256},
		{"#0000ff", 0.114 * 255 / 256},
	}
	for _, tt := range tests {
		got, err := Luminance(tt.color)
		if err != nil {
			t.Errorf("Luminance(%q): %v", tt.color, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Luminance(%q) = %v, want %v", tt.color, got, tt.want)
		}
	}
}

func TestLuminanceMalformed(t *testing.T) {
	for _, color := range []string{"", "#fff", "ffffff", "#gggggg", "#ffffff0", "red"} {
		if _, err := Luminance(color); !errors.Is(err, errors.ErrCodeMalformedColor) {
			t.Errorf("Luminance(%q) err = %v, want MALFORMED_COLOR", color, err)
		}
	}
}

func TestCalcComplements(t *testing.T) {
	b, err := New([]float64{1, 10}, []string{"#000000", "#ffffff"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// 1 maps to black (luminance 0), 10 to white (luminance ~1).
	if err := b.CalcComplements(0.5, "#ffffff", "#000000"); err != nil {
		t.Fatalf("CalcComplements: %v", err)
	}
	want := []string{"#ffffff", "#000000"}
	if !slices.Equal(b.Complements, want) {
		t.Errorf("Complements = %v, want %v", b.Complements, want)
	}
	if len(b.Complements) != len(b.ColorsOut) {
		t.Errorf("len(Complements) = %d, want %d", len(b.Complements), len(b.ColorsOut))
	}
}

func TestCalcComplementsMalformed(t *testing.T) {
	b, err := New([]float64{1, 2}, []string{"black"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = b.CalcComplements(0.5, "#ffffff", "#000000")
	if !errors.Is(err, errors.ErrCodeMalformedColor) {
		t.Fatalf("err = %v, want MALFORMED_COLOR", err)
	}
	if b.Complements != nil {
		t.Errorf("Complements = %v, want nil after failure", b.Complements)
	}
}
