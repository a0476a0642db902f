// SPDX-License-Identifier: MIT

package greedy

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pdsketch/pd"
)

// Func adapts a closure to Generator.
type Func func() (Step, error)

// Next implements Generator.
func (f Func) Next() (Step, error) { return f() }

// Replay emits a recorded sequence of steps and then ErrExhausted.
// Plans are cloned on the way out so consumers cannot alter the recording.
type Replay struct {
	steps []Step
	at    int
}

// NewReplay returns a generator over steps.
func NewReplay(steps []Step) *Replay {
	return &Replay{steps: steps}
}

// Next implements Generator.
func (r *Replay) Next() (Step, error) {
	if r.at >= len(r.steps) {
		return Step{}, ErrExhausted
	}
	s := r.steps[r.at]
	r.at++
	s.Plan = s.Plan.Clone()

	return s, nil
}

// Remaining reports how many steps have not been pulled yet.
func (r *Replay) Remaining() int { return len(r.steps) - r.at }

// ReplayFactory returns a Factory that ignores its arguments and replays
// steps. Every invocation starts from the first step.
func ReplayFactory(steps []Step) Factory {
	return func(_ pd.Diagram, opts Options) (Generator, error) {
		if err := opts.Validate(); err != nil {
			return nil, err
		}

		return NewReplay(steps), nil
	}
}

// Collect pulls up to limit steps from g (all of them when limit < 0).
// Running out early is not an error.
func Collect(g Generator, limit int) ([]Step, error) {
	var out []Step
	for limit < 0 || len(out) < limit {
		s, err := g.Next()
		if errors.Is(err, ErrExhausted) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("greedy: step %d: %w", len(out), err)
		}
		out = append(out, s)
	}

	return out, nil
}
