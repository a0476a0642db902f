// SPDX-License-Identifier: MIT

package pd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Point is a (birth, death) pair of a persistence diagram.
type Point struct {
	Birth float64
	Death float64
}

// P is shorthand for Point{Birth: birth, Death: death}.
func P(birth, death float64) Point {
	return Point{Birth: birth, Death: death}
}

// OnDiagonal reports whether birth equals death.
func (p Point) OnDiagonal() bool {
	return p.Birth == p.Death
}

// HasNaN reports whether either coordinate is NaN.
func (p Point) HasNaN() bool {
	return math.IsNaN(p.Birth) || math.IsNaN(p.Death)
}

// String renders the point as "<birth> <death>".
func (p Point) String() string {
	return FormatReal(p.Birth) + " " + FormatReal(p.Death)
}

// ParsePoint parses exactly two whitespace-separated reals.
func ParsePoint(s string) (Point, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("%w: %q: want 2 coordinates, got %d", ErrBadPoint, s, len(fields))
	}

	return PointFromFields(fields[0], fields[1])
}

// PointFromFields builds a point from already-tokenized coordinates.
// Infinite coordinates are accepted, NaN is not.
func PointFromFields(birth, death string) (Point, error) {
	b, err := cast.ToFloat64E(birth)
	if err != nil {
		return Point{}, fmt.Errorf("%w: birth %q: %v", ErrBadPoint, birth, err)
	}
	d, err := cast.ToFloat64E(death)
	if err != nil {
		return Point{}, fmt.Errorf("%w: death %q: %v", ErrBadPoint, death, err)
	}
	p := Point{Birth: b, Death: d}
	if p.HasNaN() {
		return Point{}, fmt.Errorf("%w: %q %q: NaN coordinate", ErrBadPoint, birth, death)
	}

	return p, nil
}

// Less orders points with Diagonal first, then by birth, then by death.
// NaN coordinates sort after every number.
func (p Point) Less(q Point) bool {
	if p == Diagonal || q == Diagonal {
		return p == Diagonal && q != Diagonal
	}
	if c := compareReal(p.Birth, q.Birth); c != 0 {
		return c < 0
	}

	return compareReal(p.Death, q.Death) < 0
}

func compareReal(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

// FormatReal writes v with the shortest digits that round-trip, using
// positional notation for 1e-4 ≤ |v| < 1e16 (with a trailing ".0" on
// integral values) and exponent notation outside that range.
func FormatReal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}
