// SPDX-License-Identifier: MIT

package greedy

import (
	"errors"

	"github.com/katalvlaran/pdsketch/pd"
)

// NoParent marks a step whose point has no already-selected neighbor.
const NoParent = -1

var (
	// ErrExhausted is returned by Generator.Next once the stream has ended.
	ErrExhausted = errors.New("greedy: generator exhausted")

	// ErrBadNeighborConstant indicates a non-positive neighbor constant.
	ErrBadNeighborConstant = errors.New("greedy: neighbor constant must be positive")
)

// Step is one selection of the greedy permutation.
type Step struct {
	Point  pd.Point // newly selected point
	Parent int      // index of its nearest selected predecessor, or NoParent
	Plan   pd.Plan  // partial transport plan contributed by this step
}

// Generator is a pull-based step source.
type Generator interface {
	// Next returns the next step, or ErrExhausted when none remain.
	Next() (Step, error)
}

// Factory starts a generator over d.
type Factory func(d pd.Diagram, opts Options) (Generator, error)

// Options configures a generator run.
//
// Seed             – first point of the permutation.
// NeighborConstant – approximation constant for neighbor bookkeeping (> 0).
// Tree             – emit parent indices.
// TransportPlan    – emit per-step plan fragments.
type Options struct {
	Seed             pd.Point
	NeighborConstant float64
	Tree             bool
	TransportPlan    bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the configuration a sketch builder uses:
// NeighborConstant 2, tree and transport-plan output enabled.
func DefaultOptions() Options {
	return Options{
		NeighborConstant: 2,
		Tree:             true,
		TransportPlan:    true,
	}
}

// WithSeed sets the seed point.
func WithSeed(p pd.Point) Option {
	return func(o *Options) {
		o.Seed = p
	}
}

// WithNeighborConstant sets the approximation constant.
func WithNeighborConstant(c float64) Option {
	return func(o *Options) {
		o.NeighborConstant = c
	}
}

// WithTree toggles parent-index output.
func WithTree(on bool) Option {
	return func(o *Options) {
		o.Tree = on
	}
}

// WithTransportPlan toggles plan-fragment output.
func WithTransportPlan(on bool) Option {
	return func(o *Options) {
		o.TransportPlan = on
	}
}

// NewOptions applies opts over DefaultOptions and validates the result.
func NewOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o, o.Validate()
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if !(o.NeighborConstant > 0) {
		return ErrBadNeighborConstant
	}

	return nil
}
