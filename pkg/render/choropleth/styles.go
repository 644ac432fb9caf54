package choropleth

import "fmt"

// Font describes the text styling applied to cell labels, the legend and
// the title. The zero value is not useful; start from one of the
// Default*Font constructors and override fields as needed.
type Font struct {
	Family string  // font-family
	Size   float64 // font-size in px
	Style  string  // font-style (normal, italic)
	Weight string  // font-weight (normal, bold)
	Anchor string  // text-anchor (start, middle, end)
}

// css renders the font as an SVG style attribute fragment, without fill.
func (f Font) css() string {
	return fmt.Sprintf(
		"font-style:%s;font-weight:%s;font-size:%gpx;line-height:125%%;text-anchor:%s;font-family:%s;fill-opacity:1;stroke:none",
		f.Style, f.Weight, f.Size, f.Anchor, f.Family)
}

// DefaultCellFont is the font for per-cell id labels.
func DefaultCellFont() Font {
	return Font{Family: "sans-serif", Size: 12, Style: "normal", Weight: "normal", Anchor: "middle"}
}

// DefaultTitleFont is the font for the chart title.
func DefaultTitleFont() Font {
	return Font{Family: "sans-serif", Size: 21, Style: "normal", Weight: "normal", Anchor: "middle"}
}

// DefaultLegendFont is the font for legend labels.
func DefaultLegendFont() Font {
	return Font{Family: "sans-serif", Size: 12, Style: "normal", Weight: "normal", Anchor: "start"}
}

// Spacing carries the margin and cell geometry shared by the grid draw
// methods.
type Spacing struct {
	MarginLeft   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	CellWidth    float64 // square side or hexagon width
	Gutter       float64 // gap between cells
	TitleYOffset float64 // baseline of the title below the top edge
	NameYOffset  float64 // label baseline below the cell top

	StrokeColor      string  // cell outline color
	StrokeWidth      float64 // cell outline width
	MissingColor     string  // fill for table cells without a supplied id
	MissingFontColor string  // label color for those cells

	LegendOffsetX float64 // legend nudge from the default anchor
	LegendOffsetY float64
}

// SquareConfig configures DrawSquares.
type SquareConfig struct {
	XColumn string // column with the cell's grid column index
	YColumn string // column with the cell's grid row index
	Spacing
	Roundedness float64 // corner radius of each square
	Font        Font
}

// DefaultSquareConfig returns the square grid defaults.
func DefaultSquareConfig() SquareConfig {
	return SquareConfig{
		XColumn: "square_x",
		YColumn: "square_y",
		Spacing: Spacing{
			MarginLeft: 30, MarginTop: 60, MarginRight: 80, MarginBottom: 20,
			CellWidth: 40, Gutter: 1,
			TitleYOffset: 30, NameYOffset: 15,
			StrokeColor: "#ffffff", StrokeWidth: 0,
			MissingColor: "#a0a0a0", MissingFontColor: "#000000",
			LegendOffsetX: 0, LegendOffsetY: -10,
		},
		Roundedness: 3,
		Font:        DefaultCellFont(),
	}
}

// HexConfig configures DrawHex.
type HexConfig struct {
	XColumn string
	YColumn string
	Spacing
	Font Font
}

// DefaultHexConfig returns the hex grid defaults.
func DefaultHexConfig() HexConfig {
	return HexConfig{
		XColumn: "hex_x",
		YColumn: "hex_y",
		Spacing: Spacing{
			MarginLeft: 30, MarginTop: 60, MarginRight: 80, MarginBottom: 20,
			CellWidth: 40, Gutter: 1,
			TitleYOffset: 30, NameYOffset: 15,
			StrokeColor: "#ffffff", StrokeWidth: 0,
			MissingColor: "#a0a0a0", MissingFontColor: "#000000",
			LegendOffsetX: 0, LegendOffsetY: -10,
		},
		Font: DefaultCellFont(),
	}
}

// MultihexConfig configures DrawMultihex. Each cell is a contour of
// hexagon moves (letters a through f) rather than a single hexagon, so
// there is no gutter.
type MultihexConfig struct {
	XColumn            string
	YColumn            string
	ContourColumn      string // per-cell walk over directions a-f
	LabelXOffsetColumn string // label shift in cell widths
	LabelYOffsetColumn string // label shift in hex heights
	Spacing
	Font Font
}

// DefaultMultihexConfig returns the multihex defaults.
func DefaultMultihexConfig() MultihexConfig {
	return MultihexConfig{
		XColumn:            "fourhex_x",
		YColumn:            "fourhex_y",
		ContourColumn:      "fourhex_contour",
		LabelXOffsetColumn: "fourhex_label_offset_x",
		LabelYOffsetColumn: "fourhex_label_offset_y",
		Spacing: Spacing{
			MarginLeft: 30, MarginTop: 60, MarginRight: 80, MarginBottom: 20,
			CellWidth: 30,
			TitleYOffset: 30, NameYOffset: 15,
			StrokeColor: "#ffffff", StrokeWidth: 1,
			MissingColor: "#a0a0a0", MissingFontColor: "#000000",
			LegendOffsetX: 0, LegendOffsetY: -10,
		},
		Font: DefaultCellFont(),
	}
}

// MapConfig configures DrawMap. Maps carry no cell labels, so there is
// no font; path data comes straight from the grid file.
type MapConfig struct {
	PathColumn string  // column with per-cell SVG path data
	MapWidth   float64 // intrinsic width of the path coordinate space
	MapHeight  float64 // intrinsic height of the path coordinate space

	MarginLeft   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	TitleYOffset float64

	StrokeColor  string
	StrokeWidth  float64
	MissingColor string

	LegendOffsetX float64
	LegendOffsetY float64
}

// DefaultMapConfig returns defaults sized for the bundled USA map paths.
func DefaultMapConfig() MapConfig {
	return MapConfig{
		PathColumn: "map_path",
		MapWidth:   959,
		MapHeight:  593,
		MarginLeft: 10, MarginTop: 20, MarginRight: 80, MarginBottom: 20,
		TitleYOffset: 45,
		StrokeColor:  "#ffffff",
		StrokeWidth:  0.5,
		MissingColor: "#a0a0a0",
	}
}
