package palette

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bugu00/chorogrid/pkg/errors"
)

// keypoint anchors a color at a position in [0, 1] along a gradient.
type keypoint struct {
	col colorful.Color
	pos float64
}

// gradient is an ordered sequence of keypoints spanning [0, 1].
type gradient []keypoint

// at returns the gradient color at t, blending adjacent keypoints in Lab
// space. Values outside the keypoint range clamp to the nearest end.
func (g gradient) at(t float64) colorful.Color {
	for i := 0; i < len(g)-1; i++ {
		c1, c2 := g[i], g[i+1]
		if c1.pos <= t && t <= c2.pos {
			frac := (t - c1.pos) / (c2.pos - c1.pos)
			return c1.col.BlendLab(c2.col, frac).Clamped()
		}
	}
	return g[len(g)-1].col
}

// newGradient spaces the given colors uniformly over [0, 1].
func newGradient(colors []string) (gradient, error) {
	g := make(gradient, len(colors))
	for i, s := range colors {
		col, err := colorful.Hex(s)
		if err != nil {
			return nil, errors.New(errors.ErrCodeMalformedColor, "not a #rrggbb color: %q", s)
		}
		pos := 0.0
		if len(colors) > 1 {
			pos = float64(i) / float64(len(colors)-1)
		}
		g[i] = keypoint{col: col, pos: pos}
	}
	return g, nil
}

// Resample interpolates a palette to exactly n colors. The input colors
// act as uniformly spaced gradient stops; the output keeps their order.
// When n equals the input length the palette is returned unchanged apart
// from hex normalization.
func Resample(colors []string, n int) ([]string, error) {
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidPalette, "palette size must be at least 1, got %d", n)
	}
	if len(colors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPalette, "palette has no colors")
	}
	g, err := newGradient(colors)
	if err != nil {
		return nil, err
	}

	out := make([]string, n)
	for i := range out {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = g.at(t).Hex()
	}
	return out, nil
}
