// SPDX-License-Identifier: MIT

package sketch

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/pdsketch/greedy"
	"github.com/katalvlaran/pdsketch/pd"
)

// Sketch owns an immutable record sequence and the cursor navigating it.
// Values are created by New, FromRecords or Load.
//
// A Sketch is not safe for concurrent use: reading a mass moves the
// cursor. Callers sharing one across goroutines must synchronize.
type Sketch struct {
	records []Record
	total   int
	cur     cursor
	loaded  bool

	opts   Options
	logger l.Wrapper
}

func newSketch(o Options) *Sketch {
	return &Sketch{
		opts:   o,
		logger: o.Logger.WithFields(l.StringField(l.ClsKey, "sketch")),
	}
}

// New builds the sketch sequence of d (see Build) and positions the cursor
// at record 0.
func New(d pd.Diagram, factory greedy.Factory, opts ...Option) (*Sketch, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	records, err := build(d, factory, o)
	if err != nil {
		return nil, err
	}

	s := newSketch(o)
	s.install(records)

	return s, nil
}

// FromRecords wraps an existing record sequence. Records are deep-copied.
// |D| is taken from record 0's plan.
func FromRecords(records []Record, opts ...Option) (*Sketch, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sketch: no records: %w", ErrInsufficientData)
	}

	cp := make([]Record, len(records))
	for i, r := range records {
		cp[i] = Record{Point: r.Point, Parent: r.Parent, Delta: r.Delta.Clone()}
	}

	s := newSketch(o)
	s.install(cp)

	return s, nil
}

// install publishes records and resets the cursor.
func (s *Sketch) install(records []Record) {
	s.records = records
	s.total = records[0].Delta.Total()
	s.cur.reset(records)
	s.loaded = true
}

// clear drops the sequence, leaving the sketch in the unloaded state.
func (s *Sketch) clear() {
	s.records = nil
	s.total = 0
	s.cur.reset(nil)
	s.loaded = false
}

// Loaded reports whether the sketch holds a sequence.
func (s *Sketch) Loaded() bool { return s.loaded }

// Len is the number of records, n+1. Zero when unloaded.
func (s *Sketch) Len() int { return len(s.records) }

// Count is the number of off-diagonal sketches, n. Zero when unloaded.
func (s *Sketch) Count() int {
	if len(s.records) == 0 {
		return 0
	}

	return len(s.records) - 1
}

// Total is |D|, the mass carried by every cumulative plan.
func (s *Sketch) Total() int { return s.total }

// Index is the current cursor position.
func (s *Sketch) Index() int { return s.cur.index }

func (s *Sketch) checkIndex(i int) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("sketch: index %d not in [0, %d]: %w", i, len(s.records)-1, ErrIndexOutOfRange)
	}

	return nil
}

// Mass returns a copy of the cumulative transport plan of sketch i, moving
// the cursor to i.
func (s *Sketch) Mass(i int) (pd.Plan, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	s.cur.moveTo(s.records, i, s.opts.Backward)

	return s.cur.mass.Clone(), nil
}

// MassOf returns the cumulative mass of p in sketch i without copying the
// plan, moving the cursor to i.
func (s *Sketch) MassOf(i int, p pd.Point) (int, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}
	s.cur.moveTo(s.records, i, s.opts.Backward)

	return s.cur.mass.Get(p), nil
}

// Record returns record i. Its Delta is shared with the sketch and must not
// be modified.
func (s *Sketch) Record(i int) (Record, error) {
	if err := s.checkIndex(i); err != nil {
		return Record{}, err
	}

	return s.records[i], nil
}

// Records iterates over every raw record in order. Nothing is yielded when
// the sketch is unloaded. Deltas are shared and must not be modified.
func (s *Sketch) Records() iter.Seq2[int, Record] {
	records := s.records

	return func(yield func(int, Record) bool) {
		for i, r := range records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Points returns the representatives of sketch i: pd.Diagonal followed by
// the points of records 1..i in selection order.
func (s *Sketch) Points(i int) ([]pd.Point, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	out := make([]pd.Point, 0, i+1)
	out = append(out, pd.Diagonal)
	for _, r := range s.records[1 : i+1] {
		out = append(out, r.Point)
	}

	return out, nil
}

// SliceOption bounds a Slice request.
type SliceOption func(*sliceBounds)

type sliceBounds struct {
	start, stop, step int
	hasStart, hasStop bool
}

// From sets the first index of a slice.
func From(i int) SliceOption {
	return func(s *sliceBounds) {
		s.start, s.hasStart = i, true
	}
}

// To sets the exclusive end of a slice.
func To(i int) SliceOption {
	return func(s *sliceBounds) {
		s.stop, s.hasStop = i, true
	}
}

// By sets the stride of a slice (default 1, may be negative).
func By(step int) SliceOption {
	return func(s *sliceBounds) {
		s.step = step
	}
}

// Slice returns a lazy, restartable sequence over raw records
// start, start+step, ... up to but excluding stop. The cursor is not used.
//
// Both From and To are required. The stride must be non-zero; stop must lie
// in [-1, Len()] and start must be a valid index unless the range is empty.
func (s *Sketch) Slice(opts ...SliceOption) (iter.Seq2[int, Record], error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	bounds := sliceBounds{step: 1}
	for _, fn := range opts {
		fn(&bounds)
	}

	switch {
	case !bounds.hasStart || !bounds.hasStop:
		return nil, ErrUnboundedSlice
	case bounds.step == 0:
		return nil, ErrBadStep
	case bounds.stop < -1 || bounds.stop > len(s.records):
		return nil, fmt.Errorf("sketch: slice stop %d not in [-1, %d]: %w", bounds.stop, len(s.records), ErrIndexOutOfRange)
	}

	nonEmpty := (bounds.step > 0 && bounds.start < bounds.stop) || (bounds.step < 0 && bounds.start > bounds.stop)
	if nonEmpty && (bounds.start < 0 || bounds.start >= len(s.records)) {
		return nil, fmt.Errorf("sketch: slice start %d not in [0, %d]: %w", bounds.start, len(s.records)-1, ErrIndexOutOfRange)
	}

	records := s.records

	return func(yield func(int, Record) bool) {
		for i := bounds.start; (bounds.step > 0 && i < bounds.stop) || (bounds.step < 0 && i > bounds.stop); i += bounds.step {
			if !yield(i, records[i]) {
				return
			}
		}
	}, nil
}

// Equal reports whether both sketches hold the same record sequence.
// Cursor positions and options are ignored.
func (s *Sketch) Equal(other *Sketch) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.records) != len(other.records) {
		return false
	}
	for i := range s.records {
		if !s.records[i].Equal(other.records[i]) {
			return false
		}
	}

	return true
}

// Hash is a structural hash over the record sequence, consistent with
// Equal: zero-mass plan entries do not contribute.
func (s *Sketch) Hash() uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putPoint := func(p pd.Point) {
		put(realBits(p.Birth))
		put(realBits(p.Death))
	}

	put(uint64(len(s.records)))
	for _, r := range s.records {
		putPoint(r.Point)
		put(uint64(int64(r.Parent)))
		for _, p := range r.Delta.Keys() {
			if m := r.Delta[p]; m != 0 {
				putPoint(p)
				put(uint64(int64(m)))
			}
		}
		put(math.MaxUint64)
	}

	return h.Sum64()
}

// realBits folds -0 onto +0 so equal points hash equally.
func realBits(v float64) uint64 {
	if v == 0 {
		return 0
	}

	return math.Float64bits(v)
}
