package choropleth

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// DrawSquares renders the grid as a square cartogram, one rounded
// rectangle per table row, labeled with the cell id.
func (r *Renderer) DrawSquares(cfg SquareConfig) ([]byte, error) {
	ids, err := r.table.Strings(r.idColumn)
	if err != nil {
		return nil, err
	}
	xs, err := r.table.Floats(cfg.XColumn)
	if err != nil {
		return nil, err
	}
	ys, err := r.table.Floats(cfg.YColumn)
	if err != nil {
		return nil, err
	}

	maxX, maxY := floats.Max(xs), floats.Max(ys)
	totalW := cfg.MarginLeft + (maxX+1)*cfg.CellWidth + maxX*cfg.Gutter + cfg.MarginRight
	totalH := cfg.MarginTop + (maxY+1)*cfg.CellWidth + maxY*cfg.Gutter + cfg.MarginBottom

	var buf bytes.Buffer
	svgOpen(&buf, totalW, totalH)

	for i, id := range ids {
		fill, fontColor := r.cellColor(id, cfg.MissingColor, cfg.MissingFontColor)
		x := cfg.MarginLeft + xs[i]*(cfg.CellWidth+cfg.Gutter)
		y := cfg.MarginTop + ys[i]*(cfg.CellWidth+cfg.Gutter)

		fmt.Fprintf(&buf,
			`  <rect id="rect%s" x="%s" y="%s" ry="%s" width="%s" height="%s" style="%s"/>`+"\n",
			xmlEscape(id), ftoa(x), ftoa(y), ftoa(cfg.Roundedness),
			ftoa(cfg.CellWidth), ftoa(cfg.CellWidth), cellStyle(cfg.StrokeColor, cfg.StrokeWidth, fill))
		fmt.Fprintf(&buf,
			`  <text id="text%s" x="%s" y="%s" style="%s;fill:%s">%s</text>`+"\n",
			xmlEscape(id), ftoa(x+cfg.CellWidth/2), ftoa(y+cfg.NameYOffset),
			cfg.Font.css(), fontColor, xmlEscape(id))
	}

	if err := r.writeLegend(&buf, totalW-cfg.MarginRight+cfg.LegendOffsetX, totalH, cfg.LegendOffsetY); err != nil {
		return nil, err
	}
	r.writeTitle(&buf, (totalW-cfg.MarginLeft-cfg.MarginRight)/2+cfg.MarginLeft, cfg.TitleYOffset)
	r.writeExtra(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// DrawHex renders the grid as a hexagonal cartogram. Odd rows shift
// right by half a cell so the hexagons interlock.
func (r *Renderer) DrawHex(cfg HexConfig) ([]byte, error) {
	ids, err := r.table.Strings(r.idColumn)
	if err != nil {
		return nil, err
	}
	xs, err := r.table.Floats(cfg.XColumn)
	if err != nil {
		return nil, err
	}
	ys, err := r.table.Floats(cfg.YColumn)
	if err != nil {
		return nil, err
	}

	w := cfg.CellWidth
	maxX, maxY := floats.Max(xs), floats.Max(ys)
	totalW := cfg.MarginLeft + (maxX+1.5)*w + (maxX-1)*cfg.Gutter + cfg.MarginRight
	totalH := cfg.MarginTop + (maxY+1.711)*w + (maxY-1)*cfg.Gutter + cfg.MarginBottom

	var buf bytes.Buffer
	svgOpen(&buf, totalW, totalH)

	for i, id := range ids {
		fill, fontColor := r.cellColor(id, cfg.MissingColor, cfg.MissingFontColor)
		xOffset := 0.0
		if int(ys[i])%2 == 1 {
			xOffset = w / 2
		}
		x := cfg.MarginLeft + xOffset + xs[i]*(w+cfg.Gutter)
		y := cfg.MarginTop + ys[i]*(1.5*w/sqrt3+cfg.Gutter)

		fmt.Fprintf(&buf,
			`  <polygon id="hex%s" points="%s" style="%s"/>`+"\n",
			xmlEscape(id), hexPoints(x, y, w), cellStyle(cfg.StrokeColor, cfg.StrokeWidth, fill))
		fmt.Fprintf(&buf,
			`  <text id="text%s" x="%s" y="%s" style="%s;fill:%s">%s</text>`+"\n",
			xmlEscape(id), ftoa(x+w/2), ftoa(y+cfg.NameYOffset),
			cfg.Font.css(), fontColor, xmlEscape(id))
	}

	if err := r.writeLegend(&buf, totalW-cfg.MarginRight+cfg.LegendOffsetX, totalH, cfg.LegendOffsetY); err != nil {
		return nil, err
	}
	r.writeTitle(&buf, (totalW-cfg.MarginLeft-cfg.MarginRight)/2+cfg.MarginLeft, cfg.TitleYOffset)
	r.writeExtra(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// DrawMultihex renders cells built from several hexagons each, walking
// the per-cell contour column to trace the outline.
func (r *Renderer) DrawMultihex(cfg MultihexConfig) ([]byte, error) {
	ids, err := r.table.Strings(r.idColumn)
	if err != nil {
		return nil, err
	}
	xs, err := r.table.Floats(cfg.XColumn)
	if err != nil {
		return nil, err
	}
	ys, err := r.table.Floats(cfg.YColumn)
	if err != nil {
		return nil, err
	}
	contours, err := r.table.Strings(cfg.ContourColumn)
	if err != nil {
		return nil, err
	}
	labelXOff, err := r.table.Floats(cfg.LabelXOffsetColumn)
	if err != nil {
		return nil, err
	}
	labelYOff, err := r.table.Floats(cfg.LabelYOffsetColumn)
	if err != nil {
		return nil, err
	}

	w := cfg.CellWidth
	h := w / sqrt3
	maxX, maxY := floats.Max(xs), floats.Max(ys)
	totalW := cfg.MarginLeft + (maxX+1.5)*w + cfg.MarginRight
	totalH := cfg.MarginTop + (maxY+1.711)*w + cfg.MarginBottom

	var buf bytes.Buffer
	svgOpen(&buf, totalW, totalH)

	for i, id := range ids {
		fill, fontColor := r.cellColor(id, cfg.MissingColor, cfg.MissingFontColor)
		xOffset := 0.0
		if int(ys[i])%2 == 1 {
			xOffset = w / 2
		}
		x := cfg.MarginLeft + xOffset + xs[i]*w
		y := cfg.MarginTop + ys[i]*(1.5*w/sqrt3)

		points, err := multihexPoints(x, y, w, contours[i])
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf,
			`  <polygon id="hex%s" points="%s" style="%s"/>`+"\n",
			xmlEscape(id), points, cellStyle(cfg.StrokeColor, cfg.StrokeWidth, fill))
		fmt.Fprintf(&buf,
			`  <text id="text%s" x="%s" y="%s" style="%s;fill:%s">%s</text>`+"\n",
			xmlEscape(id), ftoa(x+w/2+w*labelXOff[i]), ftoa(y+cfg.NameYOffset+h*labelYOff[i]),
			cfg.Font.css(), fontColor, xmlEscape(id))
	}

	if err := r.writeLegend(&buf, totalW-cfg.MarginRight+cfg.LegendOffsetX, totalH, cfg.LegendOffsetY); err != nil {
		return nil, err
	}
	r.writeTitle(&buf, (totalW-cfg.MarginLeft-cfg.MarginRight)/2+cfg.MarginLeft, cfg.TitleYOffset)
	r.writeExtra(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// DrawMap renders a geographic choropleth from per-cell SVG path data.
// Maps carry no cell labels.
func (r *Renderer) DrawMap(cfg MapConfig) ([]byte, error) {
	ids, err := r.table.Strings(r.idColumn)
	if err != nil {
		return nil, err
	}
	paths, err := r.table.Strings(cfg.PathColumn)
	if err != nil {
		return nil, err
	}

	totalW := cfg.MapWidth + cfg.MarginLeft + cfg.MarginRight
	totalH := cfg.MapHeight + cfg.MarginTop + cfg.MarginBottom

	var buf bytes.Buffer
	svgOpen(&buf, totalW, totalH)
	fmt.Fprintf(&buf, `  <g transform="translate(%s %s)">`+"\n", ftoa(cfg.MarginLeft), ftoa(cfg.MarginTop))

	for i, id := range ids {
		fill := cfg.MissingColor
		if c, ok := r.colorByID[id]; ok {
			fill = c
		}
		fmt.Fprintf(&buf,
			`    <path id="%s" d="%s" style="%s"/>`+"\n",
			xmlEscape(id), xmlEscape(paths[i]), cellStyle(cfg.StrokeColor, cfg.StrokeWidth, fill))
	}
	buf.WriteString("  </g>\n")

	if err := r.writeLegend(&buf, totalW-cfg.MarginRight+cfg.LegendOffsetX, totalH, cfg.LegendOffsetY); err != nil {
		return nil, err
	}
	r.writeTitle(&buf, (totalW-cfg.MarginLeft-cfg.MarginRight)/2+cfg.MarginLeft, cfg.TitleYOffset)
	r.writeExtra(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// svgOpen writes the document element.
func svgOpen(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%s" height="%s">`+"\n",
		ftoa(width), ftoa(height))
}

// cellStyle builds the style attribute shared by all cell shapes.
func cellStyle(strokeColor string, strokeWidth float64, fill string) string {
	return fmt.Sprintf("stroke:%s;stroke-width:%s;stroke-miterlimit:4;stroke-opacity:1;stroke-dasharray:none;fill:%s",
		strokeColor, ftoa(strokeWidth), fill)
}

// writeTitle centers the title text at (x, y) when a title is set.
func (r *Renderer) writeTitle(buf *bytes.Buffer, x, y float64) {
	if r.titleText == "" {
		return
	}
	fmt.Fprintf(buf, `  <text id="title" x="%s" y="%s" style="%s;fill:#000000">%s</text>`+"\n",
		ftoa(x), ftoa(y), r.titleFont.css(), xmlEscape(r.titleText))
}

// writeLegend anchors the legend in the bottom-right margin.
func (r *Renderer) writeLegend(buf *bytes.Buffer, x, totalH, offsetY float64) error {
	if r.legend == nil {
		return nil
	}
	fmt.Fprintf(buf, `  <g transform="translate(%s %s)">`+"\n", ftoa(x), ftoa(totalH-r.legend.Height+offsetY))
	if err := r.legend.render(buf); err != nil {
		return err
	}
	buf.WriteString("  </g>\n")
	return nil
}

// writeExtra appends the raw SVG fragments, each in its own translate
// group.
func (r *Renderer) writeExtra(buf *bytes.Buffer) {
	for _, f := range r.extraSVG {
		fmt.Fprintf(buf, `  <g transform="translate(%s %s)">%s</g>`+"\n", ftoa(f.dx), ftoa(f.dy), f.svg)
	}
}

// ftoa formats a coordinate with the shortest round-tripping
// representation.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// xmlEscape escapes text for use in SVG attributes and content.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
