package choropleth

import (
	"bytes"
	"fmt"

	"github.com/bugu00/chorogrid/pkg/errors"
)

// Legend describes the color key drawn into the right margin. Colors and
// labels are supplied lowest bin first, matching colorbin output; the
// legend itself renders top-down from the highest bin.
//
// The labels may be:
//   - one per color: labels sit beside the boxes
//   - one more than colors: labels sit at the fenceposts between boxes
//   - exactly two (with more than two colors): treated as the endpoints
//     of a gradient, all interior labels left blank
type Legend struct {
	Colors []string
	Labels []string
	Title  string

	Width        float64 // box width; 0 means square boxes
	Height       float64 // total height excluding the title
	Gutter       float64 // gap between boxes
	StrokeWidth  float64
	StrokeColor  string
	LabelXOffset float64
	LabelYOffset float64
	Font         Font
}

// NewLegend builds a legend with the package defaults.
func NewLegend(colors, labels []string) *Legend {
	return &Legend{
		Colors:       colors,
		Labels:       labels,
		Height:       100,
		Gutter:       2,
		StrokeWidth:  0.5,
		StrokeColor:  "#303030",
		LabelXOffset: 2,
		LabelYOffset: 3,
		Font:         DefaultLegendFont(),
	}
}

// validate checks the color/label count contract.
func (l *Legend) validate() error {
	if len(l.Colors) == 0 {
		return errors.New(errors.ErrCodeInvalidLegend, "legend needs at least one color")
	}
	switch len(l.Labels) {
	case len(l.Colors), len(l.Colors) + 1, 2:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidLegend,
		"legend needs len(colors), len(colors)+1 or exactly 2 labels, got %d labels for %d colors",
		len(l.Labels), len(l.Colors))
}

// render writes the legend contents; the caller wraps it in a translate
// group anchored at the legend's top-left corner.
func (l *Legend) render(buf *bytes.Buffer) error {
	if err := l.validate(); err != nil {
		return err
	}

	// Highest bin on top.
	colors := reverse(l.Colors)
	labels := reverse(l.Labels)

	// Two labels over a taller color run mark gradient endpoints; pad
	// the interior with blanks so they land at the outer fenceposts.
	if len(labels) == 2 && len(colors) > 2 {
		padded := make([]string, 0, len(colors)+1)
		padded = append(padded, labels[0])
		for i := 0; i < len(colors)-1; i++ {
			padded = append(padded, "")
		}
		padded = append(padded, labels[1])
		labels = padded
	}

	heightN := len(labels)
	if l.Title != "" {
		heightN++
	}
	boxHeight := (l.Height-l.Gutter)/float64(heightN) - l.Gutter
	width := l.Width
	if width == 0 {
		width = boxHeight
	}

	yOffset := 0.0
	if l.Title != "" {
		yOffset = l.Font.Size + l.Gutter*0.75
	}

	for i, color := range colors {
		fmt.Fprintf(buf,
			`  <rect id="legendbox%d" x="0" y="%s" height="%s" width="%s" style="fill:%s;stroke-width:%spx;stroke:%s;fill-rule:evenodd;stroke-linecap:butt;stroke-linejoin:miter;stroke-opacity:1"/>`+"\n",
			i, ftoa(yOffset+float64(i)*(boxHeight+l.Gutter)), ftoa(boxHeight), ftoa(width),
			color, ftoa(l.StrokeWidth), l.StrokeColor)
	}
	for i, label := range labels {
		if label == "" {
			continue
		}
		fmt.Fprintf(buf,
			`  <text id="legendlabel%d" x="%s" y="%s" style="%s;alignment-baseline:middle">%s</text>`+"\n",
			i, ftoa(l.LabelXOffset+width+l.Gutter),
			ftoa(l.LabelYOffset+yOffset+float64(i)*(boxHeight+l.Gutter)+boxHeight/2),
			l.Font.css(), xmlEscape(label))
	}
	if l.Title != "" {
		fmt.Fprintf(buf, `  <text id="legendtitle" x="0" y="0" style="%s">%s</text>`+"\n",
			l.Font.css(), xmlEscape(l.Title))
	}
	return nil
}

// reverse returns a reversed copy.
func reverse(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
