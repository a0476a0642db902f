// SPDX-License-Identifier: MIT

package pd

import (
	"sort"
	"strconv"
	"strings"
)

// Plan is a transport plan: a signed integer mass per point.
// A nil Plan is empty and may be read but not written.
type Plan map[Point]int

// NewPlan returns an empty plan with room for size entries.
func NewPlan(size int) Plan {
	return make(Plan, size)
}

// Get returns the mass at p, or 0 when p is absent.
func (pl Plan) Get(p Point) int {
	return pl[p]
}

// Add accumulates mass onto p, creating the entry if needed.
// Entries that reach zero are kept so the key set survives a round trip.
func (pl Plan) Add(p Point, mass int) {
	if cur, ok := pl[p]; ok {
		pl[p] = cur + mass

		return
	}
	pl[p] = mass
}

// Merge adds sign·other into pl entry by entry.
func (pl Plan) Merge(other Plan, sign int) {
	var (
		p Point
		m int
	)
	for p, m = range other {
		pl.Add(p, sign*m)
	}
}

// Clone returns an independent copy. Cloning nil yields an empty plan.
func (pl Plan) Clone() Plan {
	out := make(Plan, len(pl))
	for p, m := range pl {
		out[p] = m
	}

	return out
}

// Total is the sum of all masses.
func (pl Plan) Total() int {
	total := 0
	for _, m := range pl {
		total += m
	}

	return total
}

// Equal reports whether both plans assign the same mass to every point,
// treating an absent key as zero.
func (pl Plan) Equal(other Plan) bool {
	for p, m := range pl {
		if other[p] != m {
			return false
		}
	}
	for p, m := range other {
		if pl[p] != m {
			return false
		}
	}

	return true
}

// Keys returns the points of pl in deterministic order (see Point.Less).
func (pl Plan) Keys() []Point {
	keys := make([]Point, 0, len(pl))
	for p := range pl {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	return keys
}

// String renders pl as "{<point>: <mass>, ...}" in Keys order.
func (pl Plan) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range pl.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
		sb.WriteString(": ")
		sb.WriteString(strconv.Itoa(pl[p]))
	}
	sb.WriteByte('}')

	return sb.String()
}
