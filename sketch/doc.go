// SPDX-License-Identifier: MIT

// Package sketch builds and navigates the sequence of coresets ("sketches")
// of a persistence diagram.
//
// Overview:
//
//   - A sketch of size i keeps i off-diagonal representatives plus one
//     coalesced diagonal representative, together with a transport plan
//     saying how the |D| units of diagram mass spread over them.
//   - The sequence is stored as n+1 Records. Record 0 is the diagonal-only
//     baseline; record i (1 ≤ i ≤ n) adds the i-th greedily selected point
//     and the delta plan of that step. A prefix of length i+1 is the sketch
//     of size i.
//   - The cumulative plan of sketch i is Σ Delta(0..i). A Sketch keeps a
//     cursor (index plus cumulative plan) and moves it one index at a time,
//     so scanning sketches in increasing size is O(|Delta|) per step
//     instead of a full recomputation.
//
// Building:
//
//	records := Build(D, factory, opts...)
//
// pulls steps from a greedy.Generator, coalesces every diagonal
// contribution onto pd.Diagonal and turns only off-diagonal picks (plus the
// first step) into records. The initial diagonal mass is DefaultCorrection,
// -⌊|D|/2⌋, which compensates for the generator counting each diagonal
// projection separately. That constant belongs to the generator's
// convention; override it with WithDiagonalCorrection when the generator
// changes.
//
// Navigation:
//
//   - Mass(i) / MassOf(i, p): cumulative plan of sketch i via the cursor.
//   - Record(i), Records(), Slice(From(a), To(b), By(k)): raw records,
//     without touching the cursor.
//   - Points(i): the representatives of sketch i.
//   - Tree(): the greedy parent forest over record indices.
//   - Validate(), Recompute(i): invariant checks and a from-scratch sum.
//
// The backward step is configurable. BackwardInverse (default) subtracts
// the delta of the record being left, which makes every navigation path
// agree with Recompute. BackwardLegacy subtracts the delta of the record
// being entered, matching the legacy tool; after back-and-forth navigation
// its cumulative plan no longer matches Recompute.
//
// Persistence:
//
//   - Save(name) writes name+".txt" (FormatText) or name+".yaml"
//     (FormatYAML); the cursor is reset to 0 first.
//   - Load(name) replaces the sequence. A failed load leaves the sketch
//     unloaded and every accessor returns ErrNotLoaded.
//
// Concurrency:
//
//	A Sketch is single-goroutine state: Mass moves the cursor. Records,
//	Slice and Record only read the immutable sequence.
//
// Errors (sentinel):
//
//   - ErrNilDiagram, ErrEmptyDiagram, ErrNilFactory  invalid builder inputs.
//   - ErrBadCount, ErrBadBackwardMode, ErrBadFormatKind  invalid options.
//   - ErrInsufficientData  generator exhausted before n+1 records.
//   - ErrIndexOutOfRange   index outside [0, n].
//   - ErrUnboundedSlice, ErrBadStep  incomplete or zero-stride slice.
//   - ErrFormat            malformed persisted data.
//   - ErrNotLoaded         no sequence after a failed load.
//   - ErrInvariant         Validate or Tree found a broken invariant.
package sketch
