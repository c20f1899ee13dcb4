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

// Package unify is the public driver for the datashape unification
// engine: relabel, decompose, equality-solve, coercion-solve, in that
// fixed order, producing a substitution or a structured failure.
package unify

import (
	"go.uber.org/multierr"

	"github.com/gx-org/dshape/diag"
	"github.com/gx-org/dshape/dtype"
	"github.com/gx-org/dshape/term"
)

// Option configures a call to Unify.
type Option func(*config)

type config struct {
	lattice *dtype.Lattice
}

// WithLattice overrides the default element-type casting lattice.
func WithLattice(l *dtype.Lattice) Option {
	return func(c *config) { c.lattice = l }
}

// Unify matches a list of equations, returning the substitution that
// makes every equation's sides equal (modulo the broadcasting/casting
// rules on Coerce-marked sub-terms), or the first failure encountered.
func Unify(eqs []term.Equation, opts ...Option) (*Solution, *diag.Failure) {
	cfg := &config{lattice: dtype.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	relabeled, fromFresh := relabel(eqs)
	decomposed, err := decomposeAll(relabeled)
	if err != nil {
		return nil, err
	}
	forceEquality := ellipsesForcingEquality(decomposed)
	b := newBindings()
	if err := solveEquality(decomposed, forceEquality, b); err != nil {
		return nil, err
	}
	if err := solveCoercion(decomposed, forceEquality, cfg.lattice, b); err != nil {
		return nil, err
	}
	return buildSolution(b, fromFresh), nil
}

// UnifyAll runs Unify independently over every equation list in calls,
// returning one solution per call and an aggregate of every failure
// (rather than stopping at the first), for batch scenarios such as a
// test suite checking many signatures at once.
func UnifyAll(calls [][]term.Equation, opts ...Option) ([]*Solution, error) {
	solutions := make([]*Solution, len(calls))
	var aggregate error
	for i, eqs := range calls {
		sol, err := Unify(eqs, opts...)
		if err != nil {
			aggregate = multierr.Append(aggregate, err)
			continue
		}
		solutions[i] = sol
	}
	return solutions, aggregate
}

// ellipsesForcingEquality returns the set of ellipsis names (by their
// relabeled, fresh name) that have at least one non-coercible
// occurrence. Per §8 invariant 4, such an ellipsis demands equal
// length on every occurrence, coercible or not.
func ellipsesForcingEquality(d *decomposed) map[string]bool {
	forced := map[string]bool{}
	for _, eq := range d.ellipses {
		if !eq.Coercible {
			forced[eq.Name] = true
		}
	}
	return forced
}

func buildSolution(b *bindings, fromFresh map[string]string) *Solution {
	sol := newSolution()
	for fresh, t := range b.dim {
		orig, ok := fromFresh[fresh]
		if !ok {
			continue
		}
		sol.Dim[orig] = b.finalDim(t)
	}
	for fresh, t := range b.dtype {
		orig, ok := fromFresh[fresh]
		if !ok {
			continue
		}
		sol.DType[orig] = b.finalDType(t)
	}
	for fresh, seq := range b.ellipsis {
		orig, ok := fromFresh[fresh]
		if !ok {
			continue
		}
		sol.Ellipsis[orig] = b.finalSeq(seq)
	}
	return sol
}
