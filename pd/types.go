// SPDX-License-Identifier: MIT

package pd

import "errors"

var (
	// ErrBadPoint indicates a point that cannot be parsed or does not
	// describe a valid persistence pair.
	ErrBadPoint = errors.New("pd: bad point")

	// ErrBadPlan indicates a transport-plan literal that cannot be parsed.
	ErrBadPlan = errors.New("pd: bad plan")
)

// Diagonal is the sentinel key that carries the coalesced mass of all
// diagonal points within a Plan.
var Diagonal = Point{}

// Diagram is the persistence-diagram collaborator consumed by the sketch
// builder.
//
//   - Len reports the cardinality of the point multiset.
//   - At returns the i-th point, 0 ≤ i < Len(). The ordering must be stable
//     so the builder can pick a deterministic seed.
//   - IsDiagonal reports whether p is treated as noise (birth == death).
type Diagram interface {
	Len() int
	At(i int) Point
	IsDiagonal(p Point) bool
}
