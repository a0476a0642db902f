// SPDX-License-Identifier: MIT

package sketch

import (
	"errors"

	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/pdsketch/greedy"
	"github.com/katalvlaran/pdsketch/pd"
)

// NoParent marks a record without a parent (record 0 and any other root).
const NoParent = greedy.NoParent

// DefaultCount asks the builder for |D|/2 off-diagonal sketches.
const DefaultCount = -1

// Sentinel errors returned by the sketch package.
var (
	// ErrNilDiagram indicates a nil diagram was passed to the builder.
	ErrNilDiagram = errors.New("sketch: diagram is nil")

	// ErrEmptyDiagram indicates a diagram with no points, which has no seed.
	ErrEmptyDiagram = errors.New("sketch: diagram is empty")

	// ErrNilFactory indicates a nil generator factory.
	ErrNilFactory = errors.New("sketch: generator factory is nil")

	// ErrBadCount indicates a negative sketch count other than DefaultCount.
	ErrBadCount = errors.New("sketch: sketch count must be non-negative")

	// ErrBadBackwardMode indicates an unknown BackwardMode.
	ErrBadBackwardMode = errors.New("sketch: unknown backward mode")

	// ErrBadFormatKind indicates an unknown Format.
	ErrBadFormatKind = errors.New("sketch: unknown file format")

	// ErrInsufficientData indicates the generator ran out before n+1
	// records were accepted, or a record list was empty.
	ErrInsufficientData = errors.New("sketch: insufficient data")

	// ErrIndexOutOfRange indicates an index outside [0, n].
	ErrIndexOutOfRange = errors.New("sketch: index out of range")

	// ErrUnboundedSlice indicates a slice request without an explicit start
	// or stop.
	ErrUnboundedSlice = errors.New("sketch: slice needs explicit start and stop")

	// ErrBadStep indicates a slice step of zero.
	ErrBadStep = errors.New("sketch: slice step must be non-zero")

	// ErrFormat indicates a malformed persisted sketch.
	ErrFormat = errors.New("sketch: malformed sketch data")

	// ErrNotLoaded is returned by accessors after a failed load, until the
	// next successful load.
	ErrNotLoaded = errors.New("sketch: no sketch loaded")

	// ErrInvariant indicates a record sequence that breaks a structural or
	// mass-conservation invariant.
	ErrInvariant = errors.New("sketch: invariant violated")
)

// Record is one entry of the sketch sequence.
//
// Record 0 is the diagonal baseline: Point is pd.Diagonal, Parent is
// NoParent, and Delta places all |D| units of mass on pd.Diagonal.
// Records 1..n each retain one new off-diagonal point.
type Record struct {
	Point  pd.Point // representative retained at this step
	Parent int      // nearest previously retained record, or NoParent
	Delta  pd.Plan  // mass moved at this step (see Sketch.Mass)
}

// Equal compares records by value, treating absent plan keys as zero.
func (r Record) Equal(o Record) bool {
	return r.Point == o.Point && r.Parent == o.Parent && r.Delta.Equal(o.Delta)
}

// BackwardMode selects how the cursor retreats one index.
type BackwardMode int

const (
	// BackwardInverse undoes the forward step: moving from i to i-1
	// subtracts Delta(i). Any navigation path then yields the same mass as
	// summing deltas 0..i from scratch.
	BackwardInverse BackwardMode = iota

	// BackwardLegacy reproduces the legacy implementation: moving from i to
	// i-1 subtracts Delta(i-1). Forward-then-backward does not restore the
	// starting mass in general; kept only for byte-for-byte comparisons
	// with results produced by that implementation.
	BackwardLegacy
)

func (m BackwardMode) String() string {
	switch m {
	case BackwardInverse:
		return "inverse"
	case BackwardLegacy:
		return "legacy"
	}

	return "unknown"
}

// Format selects the persisted representation.
type Format int

const (
	// FormatText is the line-oriented "point; parent; plan" format.
	FormatText Format = iota

	// FormatYAML stores the same three fields per record as YAML.
	FormatYAML
)

// Extension returns the file extension appended to a sketch name.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatYAML:
		return ".yaml"
	}

	return ""
}

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	}

	return "unknown"
}

// DefaultCorrection is the diagonal pre-charge -⌊|D|/2⌋.
//
// The greedy generator emits every diagonal projection of an off-diagonal
// point as a distinct diagonal point; once those are coalesced onto
// pd.Diagonal they double-count. The pre-charge offsets that count. It is
// tied to the generator's projection convention: a generator with a
// different convention needs a different correction (WithDiagonalCorrection).
func DefaultCorrection(total int) int {
	return -(total / 2)
}

// Options configures building, navigation and persistence of a Sketch.
//
// Count            – off-diagonal sketches to build; DefaultCount means |D|/2.
// Correction       – initial diagonal mass as a function of |D|.
// NeighborConstant – forwarded to the generator factory.
// Backward         – cursor retreat rule (BackwardInverse by default).
// Format           – representation used by Save and Load.
// Logger           – structured logger; a no-op logger by default.
type Options struct {
	Count            int
	Correction       func(total int) int
	NeighborConstant float64
	Backward         BackwardMode
	Format           Format
	Logger           l.Wrapper
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the defaults listed on Options.
func DefaultOptions() Options {
	return Options{
		Count:            DefaultCount,
		Correction:       DefaultCorrection,
		NeighborConstant: greedy.DefaultOptions().NeighborConstant,
		Backward:         BackwardInverse,
		Format:           FormatText,
		Logger:           l.NewNopLoggerWrapper(),
	}
}

// WithCount sets the number of off-diagonal sketches.
func WithCount(n int) Option {
	return func(o *Options) {
		o.Count = n
	}
}

// WithDiagonalCorrection replaces DefaultCorrection. A nil fn restores it.
func WithDiagonalCorrection(fn func(total int) int) Option {
	return func(o *Options) {
		if fn == nil {
			fn = DefaultCorrection
		}
		o.Correction = fn
	}
}

// WithNeighborConstant sets the generator's approximation constant.
func WithNeighborConstant(c float64) Option {
	return func(o *Options) {
		o.NeighborConstant = c
	}
}

// WithBackwardMode selects the cursor retreat rule.
func WithBackwardMode(m BackwardMode) Option {
	return func(o *Options) {
		o.Backward = m
	}
}

// WithFormat selects the persisted representation.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.Format = f
	}
}

// WithLogger installs a logger. A nil logger is ignored.
func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func newOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	switch {
	case o.Count < DefaultCount:
		return o, ErrBadCount
	case o.Backward != BackwardInverse && o.Backward != BackwardLegacy:
		return o, ErrBadBackwardMode
	case o.Format.Extension() == "":
		return o, ErrBadFormatKind
	case !(o.NeighborConstant > 0):
		return o, greedy.ErrBadNeighborConstant
	}

	return o, nil
}
