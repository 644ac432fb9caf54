package choropleth

import (
	"github.com/BurntSushi/toml"

	"github.com/bugu00/chorogrid/pkg/errors"
)

// Theme holds partial styling overrides loaded from a TOML file. Only
// the fields present in the file are applied; everything else keeps the
// Default* values. A theme file looks like:
//
//	[font]
//	family = "Lato"
//	size = 14
//
//	[squares]
//	cell_width = 50
//	gutter = 2
//	stroke_color = "#eeeeee"
//
//	[hex]
//	cell_width = 36
type Theme struct {
	Font     *FontOverrides    `toml:"font"`
	Squares  *SpacingOverrides `toml:"squares"`
	Hex      *SpacingOverrides `toml:"hex"`
	Multihex *SpacingOverrides `toml:"multihex"`
	Map      *MapOverrides     `toml:"map"`
}

// FontOverrides overrides cell label font fields.
type FontOverrides struct {
	Family *string  `toml:"family"`
	Size   *float64 `toml:"size"`
	Weight *string  `toml:"weight"`
}

// SpacingOverrides overrides grid spacing fields.
type SpacingOverrides struct {
	CellWidth    *float64 `toml:"cell_width"`
	Gutter       *float64 `toml:"gutter"`
	MarginLeft   *float64 `toml:"margin_left"`
	MarginTop    *float64 `toml:"margin_top"`
	MarginRight  *float64 `toml:"margin_right"`
	MarginBottom *float64 `toml:"margin_bottom"`
	Roundedness  *float64 `toml:"roundedness"`
	StrokeColor  *string  `toml:"stroke_color"`
	StrokeWidth  *float64 `toml:"stroke_width"`
	MissingColor *string  `toml:"missing_color"`
}

// MapOverrides overrides map rendering fields.
type MapOverrides struct {
	MapWidth     *float64 `toml:"map_width"`
	MapHeight    *float64 `toml:"map_height"`
	StrokeColor  *string  `toml:"stroke_color"`
	StrokeWidth  *float64 `toml:"stroke_width"`
	MissingColor *string  `toml:"missing_color"`
}

// LoadTheme parses a TOML theme file.
func LoadTheme(path string) (*Theme, error) {
	var theme Theme
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "loading theme %s", path)
	}
	return &theme, nil
}

// ApplySquares merges the theme into a square grid config.
func (t *Theme) ApplySquares(cfg *SquareConfig) {
	if t == nil {
		return
	}
	applyFont(t.Font, &cfg.Font)
	applySpacing(t.Squares, &cfg.Spacing)
	if t.Squares != nil && t.Squares.Roundedness != nil {
		cfg.Roundedness = *t.Squares.Roundedness
	}
}

// ApplyHex merges the theme into a hex grid config.
func (t *Theme) ApplyHex(cfg *HexConfig) {
	if t == nil {
		return
	}
	applyFont(t.Font, &cfg.Font)
	applySpacing(t.Hex, &cfg.Spacing)
}

// ApplyMultihex merges the theme into a multihex config.
func (t *Theme) ApplyMultihex(cfg *MultihexConfig) {
	if t == nil {
		return
	}
	applyFont(t.Font, &cfg.Font)
	applySpacing(t.Multihex, &cfg.Spacing)
}

// ApplyMap merges the theme into a map config.
func (t *Theme) ApplyMap(cfg *MapConfig) {
	if t == nil || t.Map == nil {
		return
	}
	m := t.Map
	if m.MapWidth != nil {
		cfg.MapWidth = *m.MapWidth
	}
	if m.MapHeight != nil {
		cfg.MapHeight = *m.MapHeight
	}
	if m.StrokeColor != nil {
		cfg.StrokeColor = *m.StrokeColor
	}
	if m.StrokeWidth != nil {
		cfg.StrokeWidth = *m.StrokeWidth
	}
	if m.MissingColor != nil {
		cfg.MissingColor = *m.MissingColor
	}
}

func applyFont(o *FontOverrides, f *Font) {
	if o == nil {
		return
	}
	if o.Family != nil {
		f.Family = *o.Family
	}
	if o.Size != nil {
		f.Size = *o.Size
	}
	if o.Weight != nil {
		f.Weight = *o.Weight
	}
}

func applySpacing(o *SpacingOverrides, s *Spacing) {
	if o == nil {
		return
	}
	if o.CellWidth != nil {
		s.CellWidth = *o.CellWidth
	}
	if o.Gutter != nil {
		s.Gutter = *o.Gutter
	}
	if o.MarginLeft != nil {
		s.MarginLeft = *o.MarginLeft
	}
	if o.MarginTop != nil {
		s.MarginTop = *o.MarginTop
	}
	if o.MarginRight != nil {
		s.MarginRight = *o.MarginRight
	}
	if o.MarginBottom != nil {
		s.MarginBottom = *o.MarginBottom
	}
	if o.StrokeColor != nil {
		s.StrokeColor = *o.StrokeColor
	}
	if o.StrokeWidth != nil {
		s.StrokeWidth = *o.StrokeWidth
	}
	if o.MissingColor != nil {
		s.MissingColor = *o.MissingColor
	}
}
