// SPDX-License-Identifier: MIT

package sketch_test

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/pdsketch/greedy"
	"github.com/katalvlaran/pdsketch/pd"
	"github.com/katalvlaran/pdsketch/sketch"
)

var (
	p1 = pd.P(1, 4)
	p2 = pd.P(2, 3)
)

// scenarioRecords is the three-record sequence over |D| = 10:
//
//	R0 = (diagonal, None, {diagonal: 10})
//	R1 = (P1, 0, {P1: 3, diagonal: -3})
//	R2 = (P2, 1, {P2: 2, P1: -1})
func scenarioRecords() []sketch.Record {
	return []sketch.Record{
		{Point: pd.Diagonal, Parent: sketch.NoParent, Delta: pd.Plan{pd.Diagonal: 10}},
		{Point: p1, Parent: 0, Delta: pd.Plan{p1: 3, pd.Diagonal: -3}},
		{Point: p2, Parent: 1, Delta: pd.Plan{p2: 2, p1: -1}},
	}
}

// scenarioMass is the expected cumulative plan per index of scenarioRecords.
// R2 adds one unit, so index 2 carries 11 units and the sequence does not
// pass Validate.
func scenarioMass() []pd.Plan {
	return []pd.Plan{
		{pd.Diagonal: 10},
		{pd.Diagonal: 7, p1: 3},
		{pd.Diagonal: 7, p1: 2, p2: 2},
	}
}

// conservedRecords is scenarioRecords with R2 = (P2, 1, {P2: 2, P1: -2}),
// so every delta after the baseline sums to zero.
func conservedRecords() []sketch.Record {
	return []sketch.Record{
		{Point: pd.Diagonal, Parent: sketch.NoParent, Delta: pd.Plan{pd.Diagonal: 10}},
		{Point: p1, Parent: 0, Delta: pd.Plan{p1: 3, pd.Diagonal: -3}},
		{Point: p2, Parent: 1, Delta: pd.Plan{p2: 2, p1: -2}},
	}
}

// conservedMass is the expected cumulative plan per index of conservedRecords.
func conservedMass() []pd.Plan {
	return []pd.Plan{
		{pd.Diagonal: 10},
		{pd.Diagonal: 7, p1: 3},
		{pd.Diagonal: 7, p1: 1, p2: 2},
	}
}

// buildDiagram is the 4-point diagram driven by buildSteps. Its last point
// is diagonal, so it is the seed.
func buildDiagram() pd.Points {
	return pd.Points{p1, p2, pd.P(3, 3), pd.P(5, 5)}
}

// buildSteps is a hand-made generator run over buildDiagram. With the
// default correction of -2 it yields:
//
//	R0 = (diagonal, None, {diagonal: 4})
//	R1 = (P1, 0, {P1: 2, diagonal: -2})
//	(3,3) picked: deferred, contributes {diagonal: -1, P1: +1}
//	R2 = (P2, 1, {P1: 0, P2: 1, diagonal: -1})
//	(extra step never pulled for n = 2)
func buildSteps() []greedy.Step {
	return []greedy.Step{
		{Point: pd.P(5, 5), Parent: greedy.NoParent, Plan: pd.Plan{pd.P(5, 5): 4, pd.P(1, 1): 1, pd.P(2, 2): 1}},
		{Point: p1, Parent: 0, Plan: pd.Plan{p1: 2, pd.P(1, 1): -1, pd.P(5, 5): -1}},
		{Point: pd.P(3, 3), Parent: 0, Plan: pd.Plan{pd.P(3, 3): 1, pd.P(5, 5): -2, p1: 1}},
		{Point: p2, Parent: 1, Plan: pd.Plan{p2: 1, p1: -1}},
		{Point: pd.P(0, 9), Parent: 1, Plan: pd.Plan{pd.P(0, 9): 1, p2: -1}},
	}
}

// randomRecords produces a valid mass-conserving sequence of n+1 records
// over total units: every step moves a random amount of mass from a random
// existing holder onto a fresh off-diagonal point, and sometimes shuffles
// mass between two older holders.
func randomRecords(rng *rand.Rand, total, n int) []sketch.Record {
	holders := []pd.Point{pd.Diagonal}
	mass := pd.Plan{pd.Diagonal: total}
	records := []sketch.Record{{Point: pd.Diagonal, Parent: sketch.NoParent, Delta: pd.Plan{pd.Diagonal: total}}}

	for i := 1; i <= n; i++ {
		p := pd.P(float64(i), float64(i)+1+rng.Float64())
		delta := pd.NewPlan(3)
		from := holders[rng.Intn(len(holders))]
		if k := mass[from]; k > 0 {
			moved := rng.Intn(k + 1)
			delta.Add(from, -moved)
			delta.Add(p, moved)
		} else {
			delta.Add(p, 0)
		}
		if len(holders) > 1 && rng.Intn(2) == 0 {
			a, b := holders[rng.Intn(len(holders))], holders[rng.Intn(len(holders))]
			if a != b && mass[a]+delta[a] > 0 {
				delta.Add(a, -1)
				delta.Add(b, 1)
			}
		}
		mass.Merge(delta, 1)
		records = append(records, sketch.Record{Point: p, Parent: rng.Intn(i), Delta: delta})
		holders = append(holders, p)
	}

	return records
}

func inf() float64 { return math.Inf(1) }
