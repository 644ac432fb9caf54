package palette

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bugu00/chorogrid/pkg/errors"
)

func TestValidate(t *testing.T) {
	valid := []string{"#000000", "#ffffff", "#A1b2C3"}
	for _, c := range valid {
		if err := Validate(c); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", c, err)
		}
	}

	invalid := []string{"", "#fff", "ffffff", "#gggggg", "#ffffff0", "red"}
	for _, c := range invalid {
		if err := Validate(c); !errors.Is(err, errors.ErrCodeMalformedColor) {
			t.Errorf("Validate(%q) = %v, want MALFORMED_COLOR", c, err)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("no built-in palettes")
	}
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	if !slices.Contains(names, "Blues") || !slices.Contains(names, "RdBu") {
		t.Errorf("expected Blues and RdBu in %v", names)
	}
}

func TestGetExactSize(t *testing.T) {
	colors, err := Get("Greys", 9)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(colors) != 9 {
		t.Fatalf("len = %d, want 9", len(colors))
	}
	// Light first: low quantities get light fills.
	if colors[0] != "#ffffff" {
		t.Errorf("colors[0] = %q, want #ffffff", colors[0])
	}
	if colors[8] != "#000000" {
		t.Errorf("colors[8] = %q, want #000000", colors[8])
	}
}

func TestGetResampled(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		colors, err := Get("Blues", n)
		if err != nil {
			t.Fatalf("Get(Blues, %d): %v", n, err)
		}
		if len(colors) != n {
			t.Errorf("Get(Blues, %d) returned %d colors", n, len(colors))
		}
		for _, c := range colors {
			if err := Validate(c); err != nil {
				t.Errorf("Get(Blues, %d) produced invalid color %q", n, c)
			}
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("NoSuchScheme", 5); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestGetBadSize(t *testing.T) {
	if _, err := Get("Blues", 0); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("err = %v, want INVALID_PALETTE", err)
	}
}

func TestResampleKeepsEndpoints(t *testing.T) {
	colors, err := Resample([]string{"#000000", "#ffffff"}, 5)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if colors[0] != "#000000" || colors[4] != "#ffffff" {
		t.Errorf("endpoints = %q, %q; want #000000, #ffffff", colors[0], colors[4])
	}
}

func TestResampleEmptyInput(t *testing.T) {
	if _, err := Resample(nil, 3); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("err = %v, want INVALID_PALETTE", err)
	}
}

func TestResampleMalformed(t *testing.T) {
	if _, err := Resample([]string{"#000000", "oops"}, 3); !errors.Is(err, errors.ErrCodeMalformedColor) {
		t.Errorf("err = %v, want MALFORMED_COLOR", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palettes.yaml")
	content := "heat: [\"#ffffcc\", \"#fd8d3c\", \"#800026\"]\nparties: [\"#2166ac\", \"#b2182b\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	palettes, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !slices.Equal(palettes["heat"], []string{"#ffffcc", "#fd8d3c", "#800026"}) {
		t.Errorf("heat = %v", palettes["heat"])
	}
	if len(palettes["parties"]) != 2 {
		t.Errorf("parties = %v", palettes["parties"])
	}
}

func TestLoadFileBadColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palettes.yaml")
	if err := os.WriteFile(path, []byte("bad: [\"#xyzxyz\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("err = %v, want INVALID_PALETTE", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
