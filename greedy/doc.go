// SPDX-License-Identifier: MIT

// Package greedy defines the contract between a sketch builder and a
// greedy-permutation (farthest-point) generator.
//
// The generator itself lives outside this module. What is fixed here is how
// a builder talks to one:
//
//   - A Factory is invoked once per build with the diagram and an Options
//     value (seed point, neighbor constant, tree and transport-plan flags).
//   - The returned Generator is pulled synchronously, one Step at a time.
//     Each Step names the newly selected point, the index of its nearest
//     already-selected point (NoParent for a root), and the partial
//     transport plan attributable to that selection.
//   - ErrExhausted from Next signals that no more points exist. Any other
//     error aborts the consumer.
//
// Contract every generator must honor:
//
//   - The ordering is monotone: no point is selected twice.
//   - Plan fragments are mass-conserving when summed over the full run.
//   - Diagonal projections are emitted as distinct diagonal points. A
//     consumer coalescing them must correct for the double count; see the
//     sketch package for the correction it applies.
//
// Func adapts a closure into a Generator; Replay re-emits a recorded run,
// which makes any consumer fully deterministic under test.
//
// Errors (sentinel):
//
//   - ErrExhausted            end of stream.
//   - ErrBadNeighborConstant  Options.NeighborConstant is not positive.
package greedy
