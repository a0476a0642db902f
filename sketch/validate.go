// SPDX-License-Identifier: MIT

package sketch

import (
	"fmt"

	"github.com/katalvlaran/pdsketch/pd"
)

// Validate checks the record sequence against the sketch invariants:
//
//   - record 0 is (pd.Diagonal, NoParent) and its plan is {Diagonal: |D|};
//   - records 1..n hold pairwise-distinct points off the diagonal;
//   - every parent of record i is NoParent or an index in [0, i);
//   - the cumulative plan at every index sums to |D|.
//
// Totals are checked with a running sum of delta totals; the cursor is not
// moved.
// Complexity: O(n + E) with E the total number of plan entries.
func (s *Sketch) Validate() error {
	if !s.loaded {
		return ErrNotLoaded
	}

	// 1. Baseline
	r0 := s.records[0]
	if r0.Point != pd.Diagonal || r0.Parent != NoParent {
		return fmt.Errorf("sketch: record 0 is (%s, %d), want diagonal root: %w", r0.Point, r0.Parent, ErrInvariant)
	}
	if !r0.Delta.Equal(pd.Plan{pd.Diagonal: s.total}) {
		return fmt.Errorf("sketch: record 0 plan %s is not {diagonal: %d}: %w", r0.Delta, s.total, ErrInvariant)
	}

	// 2. Representatives and parents
	seen := make(map[pd.Point]int, len(s.records))
	for i, r := range s.records[1:] {
		i++
		if r.Point == pd.Diagonal || r.Point.OnDiagonal() {
			return fmt.Errorf("sketch: record %d holds diagonal point %s: %w", i, r.Point, ErrInvariant)
		}
		if j, dup := seen[r.Point]; dup {
			return fmt.Errorf("sketch: records %d and %d share point %s: %w", j, i, r.Point, ErrInvariant)
		}
		seen[r.Point] = i
		if r.Parent != NoParent && (r.Parent < 0 || r.Parent >= i) {
			return fmt.Errorf("sketch: record %d parent %d not in [0, %d): %w", i, r.Parent, i, ErrInvariant)
		}
	}

	// 3. Mass conservation
	running := 0
	for i, r := range s.records {
		running += r.Delta.Total()
		if running != s.total {
			return fmt.Errorf("sketch: cumulative mass at %d is %d, want %d: %w", i, running, s.total, ErrInvariant)
		}
	}

	return nil
}

// Recompute returns Σ Delta(0..i) summed from scratch, independent of the
// cursor. It is the reference the cursor must agree with.
func (s *Sketch) Recompute(i int) (pd.Plan, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	mass := pd.NewPlan(i + 1)
	for _, r := range s.records[:i+1] {
		mass.Merge(r.Delta, 1)
	}

	return mass, nil
}
