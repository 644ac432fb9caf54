package choropleth

import (
	"math"
	"strings"

	"github.com/bugu00/chorogrid/pkg/errors"
)

var sqrt3 = math.Sqrt(3)

// hexPoints returns the points attribute of a flat-bottomed hexagon of
// width w whose left vertex sits at (x, y).
func hexPoints(x, y, w float64) string {
	h := w / sqrt3
	pts := [6][2]float64{
		{x, y},
		{x + w/2, y - h/2},
		{x + w, y},
		{x + w, y + h},
		{x + w/2, y + 1.5*h},
		{x, y + h},
	}
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = ftoa(p[0]) + "," + ftoa(p[1])
	}
	return strings.Join(parts, " ")
}

// multihexStep moves one hexagon from (x, y) in the given direction:
//
//	a: up-right    b: down-right    c: down
//	d: down-left   e: up-left       f: up
func multihexStep(x, y, w float64, dir byte) (float64, float64, error) {
	h := w / sqrt3
	switch dir {
	case 'a':
		return x + w/2, y - h/2, nil
	case 'b':
		return x + w/2, y + h/2, nil
	case 'c':
		return x, y + h, nil
	case 'd':
		return x - w/2, y + h/2, nil
	case 'e':
		return x - w/2, y - h/2, nil
	case 'f':
		return x, y - h, nil
	default:
		return 0, 0, errors.New(errors.ErrCodeInvalidGrid, "invalid contour direction %q", string(dir))
	}
}

// multihexPoints walks a contour string from (x, y) and returns the
// resulting polygon points attribute.
func multihexPoints(x, y, w float64, contour string) (string, error) {
	parts := make([]string, 0, len(contour)+1)
	parts = append(parts, ftoa(x)+","+ftoa(y))
	for i := 0; i < len(contour); i++ {
		var err error
		x, y, err = multihexStep(x, y, w, contour[i])
		if err != nil {
			return "", err
		}
		parts = append(parts, ftoa(x)+","+ftoa(y))
	}
	return strings.Join(parts, " "), nil
}
