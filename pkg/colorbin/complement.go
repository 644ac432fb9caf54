package colorbin

import (
	"strconv"

	"github.com/bugu00/chorogrid/pkg/errors"
)

// Luminance returns the perceptual greyscale value of a #rrggbb color in
// [0, 1), using the Rec. 601 channel weights over integer channels:
//
//	(0.299*R + 0.587*G + 0.114*B) / 256
//
// It fails with ErrCodeMalformedColor unless the color is a 7-character
// #rrggbb hex string.
func Luminance(color string) (float64, error) {
	r, g, b, err := parseHex(color)
	if err != nil {
		return 0, err
	}
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 256, nil
}

// CalcComplements assigns each output color a contrast color: colorBelow
// when the color's luminance is below cutoff (darker fills get the light
// complement), colorAbove otherwise. The result is stored in Complements,
// parallel to ColorsOut.
//
// Cutoff is expected in [0, 1]. The method fails with
// ErrCodeMalformedColor on the first output color that is not a
// 7-character #rrggbb string; Complements is left nil in that case.
func (b *Colorbin) CalcComplements(cutoff float64, colorBelow, colorAbove string) error {
	complements := make([]string, 0, len(b.ColorsOut))
	for _, color := range b.ColorsOut {
		grey, err := Luminance(color)
		if err != nil {
			return err
		}
		if grey < cutoff {
			complements = append(complements, colorBelow)
		} else {
			complements = append(complements, colorAbove)
		}
	}
	b.Complements = complements
	return nil
}

// parseHex decodes a #rrggbb string into its channels.
func parseHex(color string) (r, g, b uint8, err error) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0, errors.New(errors.ErrCodeMalformedColor, "not a #rrggbb color: %q", color)
	}
	var chans [3]uint8
	for i := 0; i < 3; i++ {
		v, perr := strconv.ParseUint(color[1+2*i:3+2*i], 16, 8)
		if perr != nil {
			return 0, 0, 0, errors.New(errors.ErrCodeMalformedColor, "not a #rrggbb color: %q", color)
		}
		chans[i] = uint8(v)
	}
	return chans[0], chans[1], chans[2], nil
}
