// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dtype defines the closed enumeration of scalar element types
// and the castable-to lattice the coercion solver casts against.
package dtype

import "github.com/pkg/errors"

// Tag is a concrete scalar element type.
type Tag uint8

// Kind of data supported by the engine.
const (
	Invalid Tag = iota
	Bool
	Int32
	Int64
	Uint32
	Uint64
	Bfloat16
	Float32
	Float64

	numTags
)

// String returns a string representation of the tag.
func (t Tag) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Bfloat16:
		return "bfloat16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// Lattice is a directed acyclic "castable-to" relation over scalar tags.
// Every tag is always castable to itself.
type Lattice struct {
	closure map[Tag]map[Tag]bool
}

// NewLattice builds a lattice from a direct edge set, where edges[a]
// lists the tags a is directly castable to. NewLattice rejects a cyclic
// edge set.
func NewLattice(edges map[Tag][]Tag) (*Lattice, error) {
	if err := checkAcyclic(edges); err != nil {
		return nil, err
	}
	closure := make(map[Tag]map[Tag]bool, len(edges))
	for from := range edges {
		closure[from] = reachable(edges, from)
	}
	return &Lattice{closure: closure}, nil
}

func checkAcyclic(edges map[Tag][]Tag) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := map[Tag]int{}
	var visit func(Tag) error
	visit = func(t Tag) error {
		switch state[t] {
		case done:
			return nil
		case visiting:
			return errors.Errorf("dtype lattice has a cycle through %s", t)
		}
		state[t] = visiting
		for _, next := range edges[t] {
			if err := visit(next); err != nil {
				return err
			}
		}
		state[t] = done
		return nil
	}
	for from := range edges {
		if err := visit(from); err != nil {
			return err
		}
	}
	return nil
}

func reachable(edges map[Tag][]Tag, from Tag) map[Tag]bool {
	seen := map[Tag]bool{from: true}
	queue := []Tag{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range edges[cur] {
			if seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return seen
}

// CastableTo returns true if a value of type from can be cast to to,
// that is, from == to or to is reachable from from along the lattice's
// castable-to edges.
func (l *Lattice) CastableTo(from, to Tag) bool {
	if from == to {
		return true
	}
	if l == nil {
		return false
	}
	return l.closure[from][to]
}

// Default returns the standard numeric-promotion lattice: integer
// widths promote to wider integers and to floats of sufficient
// precision, float widths promote to wider floats.
func Default() *Lattice {
	l, err := NewLattice(map[Tag][]Tag{
		Int32:    {Int64, Float32, Float64},
		Int64:    {Float64},
		Uint32:   {Uint64, Float32, Float64},
		Uint64:   {Float64},
		Bfloat16: {Float32, Float64},
		Float32:  {Float64},
	})
	if err != nil {
		// Default() builds a fixed, hand-verified DAG: a cycle here is a bug
		// in this file, not a runtime condition callers can hit.
		panic(err)
	}
	return l
}
