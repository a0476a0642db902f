// SPDX-License-Identifier: MIT

// Package pdsketch computes progressively refined sketches of persistence
// diagrams: coresets built from a greedy permutation of the diagram's
// off-diagonal points, each carrying the transport plan that maps the full
// diagram onto it.
//
// Under the hood, everything is organized under three subpackages:
//
//	pd/     — Point, Plan and the Diagram contract
//	greedy/ — the greedy-permutation generator contract and a replay generator
//	sketch/ — builder, cursor navigation, invariant checks and text/YAML files
//
// Quick example:
//
//	s, err := sketch.New(diagram, factory)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i := 0; i < s.Len(); i++ {
//	    mass, _ := s.Mass(i) // O(|Delta(i)|) per step
//	    fmt.Println(i, mass)
//	}
//	_ = s.Save("diagram-sketch")
package pdsketch
