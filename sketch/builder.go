// SPDX-License-Identifier: MIT

package sketch

import (
	"errors"
	"fmt"

	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/pdsketch/greedy"
	"github.com/katalvlaran/pdsketch/pd"
)

// Build drives one greedy generator run over d and returns the n+1 records
// of the sketch sequence. It publishes nothing on failure.
//
// Algorithm:
//  1. Start the generator at d.At(d.Len()-1) with tree and transport-plan
//     output enabled.
//  2. Seed the diagonal accumulator with Correction(|D|).
//  3. For every pulled step, route each plan entry: diagonal points add to
//     the diagonal accumulator, other points to the pending plan.
//  4. Accept the step when it is the first one or its point is off the
//     diagonal. The accepted record carries the pending plan plus the
//     diagonal accumulator (when it was touched since the last record),
//     and both are cleared. A later diagonal pick is not recorded; what it
//     contributed rolls into the next accepted record.
//  5. Stop at n+1 records. Exhaustion before that is ErrInsufficientData.
//
// Complexity: O(S + E) where S is the number of pulled steps and E the
// total number of plan entries they carry.
func Build(d pd.Diagram, factory greedy.Factory, opts ...Option) ([]Record, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	return build(d, factory, o)
}

func build(d pd.Diagram, factory greedy.Factory, o Options) ([]Record, error) {
	// 1. Validate collaborators
	if d == nil {
		return nil, ErrNilDiagram
	}
	if factory == nil {
		return nil, ErrNilFactory
	}
	total := d.Len()
	if total == 0 {
		return nil, ErrEmptyDiagram
	}

	n := o.Count
	if n == DefaultCount {
		n = total / 2
	}

	logger := o.Logger.WithFields(l.StringField(l.ClsKey, "sketchBuilder"))

	// 2. Start the generator
	gopts := greedy.DefaultOptions()
	gopts.Seed = d.At(total - 1)
	gopts.NeighborConstant = o.NeighborConstant
	gen, err := factory(d, gopts)
	if err != nil {
		return nil, fmt.Errorf("sketch: start generator: %w", err)
	}

	// 3. Accumulate and accept
	var (
		records     = make([]Record, 0, n+1)
		pending     = pd.NewPlan(0)
		diagonal    = o.Correction(total)
		diagTouched = true
		p           pd.Point
		m           int
	)
	for pulled := 0; len(records) <= n; pulled++ {
		step, err := gen.Next()
		if errors.Is(err, greedy.ErrExhausted) {
			logger.WithFields(l.IntField("accepted", len(records)), l.IntField("want", n+1)).
				Error("generator exhausted")

			return nil, fmt.Errorf("sketch: generator exhausted after %d of %d records: %w",
				len(records), n+1, ErrInsufficientData)
		}
		if err != nil {
			return nil, fmt.Errorf("sketch: step %d: %w", pulled, err)
		}
		if err = checkStep(step); err != nil {
			return nil, fmt.Errorf("sketch: step %d: %w", pulled, err)
		}

		for p, m = range step.Plan {
			if d.IsDiagonal(p) {
				diagonal += m
				diagTouched = true
			} else {
				pending.Add(p, m)
			}
		}

		if len(records) > 0 && d.IsDiagonal(step.Point) {
			logger.WithFields(l.IntField("step", pulled), l.StringField("point", step.Point.String())).
				Debug("diagonal pick deferred")

			continue
		}

		rec := Record{Point: step.Point, Parent: step.Parent, Delta: pending}
		if len(records) == 0 {
			rec.Point, rec.Parent = pd.Diagonal, NoParent
		}
		if diagTouched {
			rec.Delta.Add(pd.Diagonal, diagonal)
		}
		records = append(records, rec)

		logger.WithFields(l.IntField("index", len(records)-1), l.IntField("step", pulled),
			l.StringField("point", rec.Point.String())).Debug("record accepted")

		pending = pd.NewPlan(len(rec.Delta))
		diagonal = 0
		diagTouched = false
	}

	return records, nil
}

// checkStep rejects NaN coordinates in the picked point and plan keys.
func checkStep(step greedy.Step) error {
	if step.Point.HasNaN() {
		return fmt.Errorf("%w: picked point %s", pd.ErrBadPoint, step.Point)
	}
	for p := range step.Plan {
		if p.HasNaN() {
			return fmt.Errorf("%w: plan key %s", pd.ErrBadPoint, p)
		}
	}

	return nil
}
