// Package palette provides ordered color sequences for choropleth binning.
//
// Palettes are ordered lists of lowercase #rrggbb strings, lowest quantity
// first. The package ships the ColorBrewer sequential and diverging
// schemes, resamples them to any bin count by gradient interpolation, and
// loads user-defined palettes from YAML files.
package palette

import (
	"slices"
	"strconv"

	"github.com/bugu00/chorogrid/pkg/errors"
)

// Validate checks that color is a 7-character #rrggbb hex string.
func Validate(color string) error {
	if len(color) != 7 || color[0] != '#' {
		return errors.New(errors.ErrCodeMalformedColor, "not a #rrggbb color: %q", color)
	}
	for i := 0; i < 3; i++ {
		if _, err := strconv.ParseUint(color[1+2*i:3+2*i], 16, 8); err != nil {
			return errors.New(errors.ErrCodeMalformedColor, "not a #rrggbb color: %q", color)
		}
	}
	return nil
}

// ValidateAll checks every color of a palette and requires at least one.
func ValidateAll(colors []string) error {
	if len(colors) == 0 {
		return errors.New(errors.ErrCodeInvalidPalette, "palette must contain at least one color")
	}
	for _, c := range colors {
		if err := Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// Names lists the built-in palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the named built-in palette resampled to n colors, ordered
// light to dark so that low quantities get light fills. It fails with
// ErrCodeNotFound for unknown names and ErrCodeInvalidPalette for n < 1.
func Get(name string, n int) ([]string, error) {
	stops, ok := builtins[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown palette %q", name)
	}
	// Built-in tables run dark to light; flip so index 0 is lightest.
	reversed := make([]string, len(stops))
	for i, c := range stops {
		reversed[len(stops)-1-i] = c
	}
	return Resample(reversed, n)
}
