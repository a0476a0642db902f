// SPDX-License-Identifier: MIT

package pd

import (
	"fmt"
	"math"
)

// Points is an in-memory Diagram backed by a slice. Duplicates are allowed;
// the slice is a multiset.
type Points []Point

// Len implements Diagram.
func (ps Points) Len() int { return len(ps) }

// At implements Diagram.
func (ps Points) At(i int) Point { return ps[i] }

// IsDiagonal implements Diagram.
func (ps Points) IsDiagonal(p Point) bool { return p.OnDiagonal() }

// OffDiagonal counts the points with birth != death.
func (ps Points) OffDiagonal() int {
	n := 0
	for _, p := range ps {
		if !p.OnDiagonal() {
			n++
		}
	}

	return n
}

// Validate rejects NaN coordinates and pairs that die before they are born.
func (ps Points) Validate() error {
	for i, p := range ps {
		if math.IsNaN(p.Birth) || math.IsNaN(p.Death) {
			return fmt.Errorf("%w: index %d: NaN coordinate", ErrBadPoint, i)
		}
		if p.Death < p.Birth {
			return fmt.Errorf("%w: index %d: death %s before birth %s",
				ErrBadPoint, i, FormatReal(p.Death), FormatReal(p.Birth))
		}
	}

	return nil
}
