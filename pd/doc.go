// SPDX-License-Identifier: MIT

// Package pd provides the value types shared by every sketching component:
// persistence-diagram points, signed transport plans over those points, and
// the Diagram contract a sketch builder consumes.
//
// Overview:
//
//   - Point is an ordered (birth, death) pair compared and hashed by value,
//     so it can key a Go map directly.
//   - Diagonal is the sentinel (0, 0). Inside a Plan it stands for the
//     combined mass of every diagonal point, whatever its true coordinates.
//   - Plan maps a Point to a signed integer mass. Absent keys read as zero,
//     and accumulation goes through Add/Merge rather than implicit defaults.
//   - Diagram is the collaborator interface: a cardinality, ordered access
//     to pick a deterministic seed, and a diagonal-membership predicate.
//     Points is a ready-made in-memory implementation.
//
// Textual forms:
//
//	Point: "<birth> <death>"             e.g. "0.5 2.0", "1.0 inf"
//	Plan:  "{<point>: <mass>, ...}"      e.g. "{0.0 0.0: 7, 1.0 3.0: 3}"
//
// Reals are written the way the legacy sketch files were written (shortest
// round-trip digits, an explicit ".0" on integral values, inf/nan spelled in
// lower case), so files produced by either implementation read back exactly.
//
// Errors (sentinel):
//
//   - ErrBadPoint  a point literal or coordinate is malformed.
//   - ErrBadPlan   a plan literal is malformed.
package pd
