// Package colorbin assigns colors to numeric quantities by binning.
//
// A Colorbin partitions the range (or the sorted list) of a quantity
// sequence into as many bins as the palette has colors, then maps every
// quantity to the color of its bin. Alongside the colors it derives the
// bin boundaries ("fenceposts"), per-bin labels, per-fencepost labels and
// per-bin population counts, which the rendering layer consumes for
// legends and diagnostics.
//
// # Binning modes
//
// Proportional mode (the default) spaces fenceposts evenly from BinMin to
// BinMid and from BinMid to BinMax, so all bins cover the same numeric
// width when the midpoint sits halfway. Quantile mode (WithQuantile)
// instead splits the sorted quantities into bins of roughly equal
// population; repeated quantities can skew the counts.
//
// # Recalculation contract
//
// The binning parameters (Proportional, BinMin, BinMid, BinMax, Decimals)
// are exported and mutable. Mutating any of them leaves the derived
// outputs stale until Recalc is called; nothing recomputes automatically.
// SetDecimals records the staleness, which Stale reports and Recalc
// clears.
package colorbin

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/bugu00/chorogrid/pkg/errors"
)

// NoRounding disables fencepost rounding when assigned to Decimals.
const NoRounding = -1

// Colorbin bins quantities into palette colors.
//
// The parameter fields may be mutated after construction; call Recalc
// afterwards to refresh the derived fields.
type Colorbin struct {
	// Parameters.
	Quantities   []float64 // input quantities, NaN already dropped
	Palette      []string  // bin colors, lowest quantity first
	Proportional bool      // equal-width bins when true, equal-count when false
	Decimals     int       // fencepost rounding precision, NoRounding to disable
	BinMin       float64   // lower bound of the first bin
	BinMid       float64   // midpoint the proportional spacing pivots on
	BinMax       float64   // upper bound of the last bin

	// Derived on construction and by Recalc.
	Fenceposts      []float64 // len(Palette)+1 bin boundaries, non-decreasing
	Labels          []string  // one "lo-hi" label per bin
	FencepostLabels []string  // one label per fencepost
	ColorsOut       []string  // one palette color per quantity, input order
	BinCounts       []int     // population of each bin

	// Derived by CalcComplements, nil until then.
	Complements []string

	stale bool
}

// Option configures a Colorbin during construction.
type Option func(*Colorbin)

// WithQuantile switches to quantile (equal-population) binning.
func WithQuantile() Option {
	return func(b *Colorbin) { b.Proportional = false }
}

// WithDecimals rounds every fencepost to n decimal places. Rounding can
// collapse distinct fenceposts to the same value; the ≥ assignment rule
// then drains the bins between them.
func WithDecimals(n int) Option {
	return func(b *Colorbin) { b.Decimals = n }
}

// New builds a Colorbin from quantities and a palette and computes all
// derived fields eagerly.
//
// NaN quantities are dropped silently and never receive a bin. New fails
// with ErrCodeEmptyInput when no quantity survives the NaN filter, and
// with ErrCodeInvalidPalette when the palette is empty.
func New(quantities []float64, palette []string, opts ...Option) (*Colorbin, error) {
	kept := make([]float64, 0, len(quantities))
	for _, q := range quantities {
		if !math.IsNaN(q) {
			kept = append(kept, q)
		}
	}
	if len(kept) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no valid quantities after dropping NaN")
	}
	if len(palette) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPalette, "palette must contain at least one color")
	}

	b := &Colorbin{
		Quantities:   kept,
		Palette:      slices.Clone(palette),
		Proportional: true,
		Decimals:     NoRounding,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.BinMin = floats.Min(kept)
	b.BinMax = floats.Max(kept)
	b.BinMid = (b.BinMin + b.BinMax) / 2
	b.Recalc(true)
	return b, nil
}

// Recalc rebuilds labels and colors, and the fenceposts first when
// fenceposts is true. Call it after mutating any parameter field.
func (b *Colorbin) Recalc(fenceposts bool) {
	if fenceposts {
		b.calcFenceposts()
	}
	b.calcLabels()
	b.calcColors()
	b.stale = false
}

// SetDecimals sets the fencepost rounding precision. It does not trigger
// recomputation; the receiver reports Stale until Recalc runs.
func (b *Colorbin) SetDecimals(n int) {
	b.Decimals = n
	b.stale = true
}

// Stale reports whether SetDecimals ran since the last Recalc. Mutations
// of the exported parameter fields are not tracked.
func (b *Colorbin) Stale() bool { return b.stale }

// calcFenceposts computes len(Palette)+1 bin boundaries.
//
// Proportional mode advances from BinMin toward BinMid below the middle
// index and backward from BinMax above it, pinning the middle fencepost
// to BinMid exactly. For odd palette sizes the middle index is not an
// integer, so no fencepost lands on BinMid and the spacing is slightly
// asymmetric around the midpoint.
func (b *Colorbin) calcFenceposts() {
	p := len(b.Palette)
	posts := make([]float64, 0, p+1)

	if b.Proportional {
		step1 := (b.BinMid - b.BinMin) / float64(p) * 2
		step2 := (b.BinMax - b.BinMid) / float64(p) * 2
		for i := 0; i <= p; i++ {
			switch {
			case float64(i) < float64(p)/2:
				posts = append(posts, b.BinMin+float64(i)*step1)
			case float64(i) == float64(p)/2:
				posts = append(posts, b.BinMid)
			default:
				posts = append(posts, b.BinMax-float64(p-i)*step2)
			}
		}
	} else {
		sorted := slices.Clone(b.Quantities)
		sort.Float64s(sorted)
		step := float64(len(sorted)) / float64(p)
		for i := 0; i < p; i++ {
			posts = append(posts, sorted[int(float64(i)*step)])
		}
		posts = append(posts, sorted[len(sorted)-1])
	}

	if b.Decimals != NoRounding {
		for i, x := range posts {
			posts[i] = roundTo(x, b.Decimals)
		}
	}
	b.Fenceposts = posts
}

// calcLabels derives one "lo-hi" label per bin and one label per
// fencepost from the current fenceposts.
func (b *Colorbin) calcLabels() {
	b.Labels = b.Labels[:0]
	b.FencepostLabels = b.FencepostLabels[:0]
	for i := 0; i+1 < len(b.Fenceposts); i++ {
		lo, hi := b.Fenceposts[i], b.Fenceposts[i+1]
		b.Labels = append(b.Labels, FormatQuantity(lo)+"-"+FormatQuantity(hi))
		b.FencepostLabels = append(b.FencepostLabels, FormatQuantity(lo))
	}
	b.FencepostLabels = append(b.FencepostLabels, FormatQuantity(b.Fenceposts[len(b.Fenceposts)-1]))
}

// calcColors assigns each quantity its bin color, in input order, and
// tallies the bin populations.
func (b *Colorbin) calcColors() {
	b.ColorsOut = make([]string, 0, len(b.Quantities))
	b.BinCounts = make([]int, len(b.Palette))
	for _, q := range b.Quantities {
		bin := b.BinIndex(q)
		b.ColorsOut = append(b.ColorsOut, b.Palette[bin])
		b.BinCounts[bin]++
	}
}

// BinIndex returns the bin a quantity falls into: the largest i with
// q >= Fenceposts[i], capped at the last bin. A quantity exactly on a
// fencepost therefore belongs to the upper bin; bin 0 captures
// everything below Fenceposts[1].
func (b *Colorbin) BinIndex(q float64) int {
	bin := 0
	for i := 1; i < len(b.Palette); i++ {
		if q >= b.Fenceposts[i] {
			bin = i
		}
	}
	return bin
}

// CountBins renders a human-readable report of bin labels and their
// populations. It is a diagnostic view, nothing parses it.
func (b *Colorbin) CountBins() string {
	var sb strings.Builder
	sb.WriteString("count  label\n")
	sb.WriteString("=====  =====\n")
	for i, label := range b.Labels {
		fmt.Fprintf(&sb, "%5d  %s\n", b.BinCounts[i], label)
	}
	return sb.String()
}

// FormatQuantity renders a quantity the way labels display it, using the
// shortest representation that round-trips.
func FormatQuantity(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// roundTo rounds x to n decimal places, half away from zero.
func roundTo(x float64, n int) float64 {
	scale := math.Pow10(n)
	return math.Round(x*scale) / scale
}
