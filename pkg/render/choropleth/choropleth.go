// Package choropleth renders colored grids and maps as SVG documents.
//
// A Renderer joins three inputs: a grid table describing the cells (ids
// plus coordinates or path data), a parallel ids/colors assignment
// (typically a colorbin's output), and presentation options (title,
// legend, fonts, theme overrides). The four draw methods emit complete
// SVG documents:
//
//   - DrawSquares: square grid cartogram
//   - DrawHex:     hexagonal grid cartogram
//   - DrawMultihex: contoured multi-hexagon cartogram
//   - DrawMap:     geographic choropleth from per-cell path data
//
// Cells present in the table but without a supplied id are filled with
// the configured missing color; ids supplied but absent from the table
// are reported by InvalidIDs for the caller to log.
package choropleth

import (
	"github.com/bugu00/chorogrid/pkg/errors"
	"github.com/bugu00/chorogrid/pkg/grid"
)

// Renderer draws one grid table with one ids-to-colors assignment.
type Renderer struct {
	table    *grid.Table
	idColumn string

	ids        []string
	colorByID  map[string]string
	fontByID   map[string]string
	titleText  string
	titleFont  Font
	legend     *Legend
	extraSVG   []fragment
	invalidIDs []string
	missingIDs []string
}

// fragment is raw SVG injected into the document inside a translate
// group, after the main content.
type fragment struct {
	svg    string
	dx, dy float64
}

// Option configures a Renderer during construction.
type Option func(*Renderer)

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(r *Renderer) { r.titleText = title }
}

// WithTitleFont overrides the title font.
func WithTitleFont(f Font) Option {
	return func(r *Renderer) { r.titleFont = f }
}

// WithLegend attaches a legend, drawn into the right margin.
func WithLegend(l *Legend) Option {
	return func(r *Renderer) { r.legend = l }
}

// WithFontColors sets per-cell label colors, parallel to the ids passed
// to New. Useful with colorbin complements so labels contrast with their
// fill.
func WithFontColors(colors []string) Option {
	return func(r *Renderer) {
		for i, id := range r.ids {
			if i < len(colors) {
				r.fontByID[id] = colors[i]
			}
		}
	}
}

// WithExtraSVG appends raw SVG markup, wrapped in a translate(dx dy)
// group, after the cells. Can be given more than once.
func WithExtraSVG(svg string, dx, dy float64) Option {
	return func(r *Renderer) {
		r.extraSVG = append(r.extraSVG, fragment{svg: svg, dx: dx, dy: dy})
	}
}

// New builds a Renderer for the table. ids and colors run parallel; the
// id column must exist in the table. Ids that do not match the table are
// recorded, not rejected.
func New(table *grid.Table, idColumn string, ids, colors []string, opts ...Option) (*Renderer, error) {
	if len(ids) != len(colors) {
		return nil, errors.New(errors.ErrCodeInvalidGrid,
			"ids and colors must be the same length, got %d and %d", len(ids), len(colors))
	}
	if !table.HasColumn(idColumn) {
		return nil, errors.New(errors.ErrCodeMissingColumn, "no id column %q", idColumn)
	}

	invalid, missing, err := table.Match(idColumn, ids)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		table:      table,
		idColumn:   idColumn,
		ids:        ids,
		colorByID:  make(map[string]string, len(ids)),
		fontByID:   make(map[string]string),
		titleFont:  DefaultTitleFont(),
		invalidIDs: invalid,
		missingIDs: missing,
	}
	for i, id := range ids {
		r.colorByID[id] = colors[i]
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// SetColors replaces the color assignment, keeping the ids. The next
// draw call picks up the new colors.
func (r *Renderer) SetColors(colors []string) error {
	if len(colors) != len(r.ids) {
		return errors.New(errors.ErrCodeInvalidGrid,
			"ids and colors must be the same length, got %d and %d", len(r.ids), len(colors))
	}
	for i, id := range r.ids {
		r.colorByID[id] = colors[i]
	}
	return nil
}

// InvalidIDs returns supplied ids that the grid table does not contain.
func (r *Renderer) InvalidIDs() []string { return r.invalidIDs }

// MissingIDs returns table ids that got no color; their cells render in
// the missing color.
func (r *Renderer) MissingIDs() []string { return r.missingIDs }

// cellColor resolves the fill and label color for a cell id.
func (r *Renderer) cellColor(id, missingFill, missingFont string) (fill, font string) {
	if c, ok := r.colorByID[id]; ok {
		font = "#000000"
		if fc, ok := r.fontByID[id]; ok {
			font = fc
		}
		return c, font
	}
	return missingFill, missingFont
}
