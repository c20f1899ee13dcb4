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

package unify

import (
	"github.com/gx-org/dshape/diag"
	"github.com/gx-org/dshape/dtype"
	"github.com/gx-org/dshape/term"
)

// solveCoercion runs after solveEquality, with the equality-phase
// bindings as its starting context. It processes every coercible
// sub-equation, plus every ellipsis whose occurrences are all
// coercible (the complement of solveEquality's forceEquality set).
func solveCoercion(d *decomposed, forceEquality map[string]bool, lattice *dtype.Lattice, b *bindings) *diag.Failure {
	for _, eq := range d.dims {
		if !eq.Coercible {
			continue
		}
		if _, err := coerceDim(b, eq.Left, eq.Right, eq.EqIndex); err != nil {
			return err
		}
	}
	for _, eq := range d.dtypes {
		if !eq.Coercible {
			continue
		}
		if err := coerceDType(b, lattice, eq.Left, eq.Right, eq.EqIndex); err != nil {
			return err
		}
	}
	for _, eq := range d.ellipses {
		if forceEquality[eq.Name] {
			continue
		}
		if err := coerceEllipsis(b, eq.Name, eq.Seq, eq.EqIndex); err != nil {
			return err
		}
	}
	return nil
}

// coerceDim implements §4.4's dimension coercion (broadcasting) rule.
// It is written symmetrically in L and R so the same function also
// implements §4.4's ellipsis merge, which has no fixed LHS/RHS side.
func coerceDim(b *bindings, l, r term.Term, eqIndex int) (term.Term, *diag.Failure) {
	l = b.resolveDim(l)
	r = b.resolveDim(r)
	li, lIsInt := l.(*term.DimInt)
	ri, rIsInt := r.(*term.DimInt)
	switch {
	case lIsInt && li.N == 1:
		return r, nil
	case rIsInt && ri.N == 1:
		return l, nil
	case lIsInt && rIsInt:
		if li.N == ri.N {
			return l, nil
		}
		return nil, diag.BroadcastIncompatiblef(l, r, eqIndex, "dimension %d is incompatible with %d under broadcasting", li.N, ri.N)
	}
	if rv, ok := r.(*term.DimVar); ok {
		if !b.bindDim(rv.Name, l) {
			return nil, diag.OccursCheckf(r, l, eqIndex, "%s occurs in %s", r, l)
		}
		return l, nil
	}
	if lv, ok := l.(*term.DimVar); ok {
		if !b.bindDim(lv.Name, r) {
			return nil, diag.OccursCheckf(l, r, eqIndex, "%s occurs in %s", l, r)
		}
		return r, nil
	}
	return nil, diag.BroadcastIncompatiblef(l, r, eqIndex, "%s is incompatible with %s under broadcasting", l, r)
}

// coerceDType implements §4.4's element-type coercion (casting) rule.
func coerceDType(b *bindings, lattice *dtype.Lattice, l, r term.Term, eqIndex int) *diag.Failure {
	l = b.resolveDType(l)
	r = b.resolveDType(r)
	if rv, ok := r.(*term.DTypeVar); ok {
		if !b.bindDType(rv.Name, l) {
			return diag.OccursCheckf(r, l, eqIndex, "%s occurs in %s", r, l)
		}
		return nil
	}
	ld, lok := l.(*term.DType)
	rd, rok := r.(*term.DType)
	if !lok || !rok {
		return diag.Clashf(l, r, eqIndex, "%s and %s are not unifiable element-type terms", l, r)
	}
	if ld.Tag == rd.Tag {
		return nil
	}
	if lattice.CastableTo(ld.Tag, rd.Tag) {
		return nil
	}
	return diag.CastIncompatiblef(l, r, eqIndex, "%s cannot be cast to %s", ld.Tag, rd.Tag)
}

// coerceEllipsis merges a newly observed occurrence of a coercible
// ellipsis into its running binding: an unbound ellipsis simply adopts
// the new sequence; a bound one is reconciled with it by left-padding
// the shorter sequence with 1s and broadcasting pairwise (§4.4,
// resolving §9's open question). An empty sequence pads to, and is
// absorbed by, any other sequence, which is what lets a rank-0 scalar
// unify against a coerced ellipsis already bound elsewhere.
func coerceEllipsis(b *bindings, name string, seq []term.Term, eqIndex int) *diag.Failure {
	existing, ok := b.ellipsis[name]
	if !ok {
		b.ellipsis[name] = seq
		return nil
	}
	merged, err := mergeEllipsisSequences(b, existing, seq, eqIndex)
	if err != nil {
		return err
	}
	b.ellipsis[name] = merged
	return nil
}

func mergeEllipsisSequences(b *bindings, a, c []term.Term, eqIndex int) ([]term.Term, *diag.Failure) {
	if len(a) < len(c) {
		a = leftPad(a, len(c)-len(a))
	} else if len(c) < len(a) {
		c = leftPad(c, len(a)-len(c))
	}
	out := make([]term.Term, len(a))
	for i := range a {
		merged, err := coerceDim(b, a[i], c[i], eqIndex)
		if err != nil {
			return nil, err
		}
		out[i] = merged
	}
	return out, nil
}

func leftPad(seq []term.Term, n int) []term.Term {
	out := make([]term.Term, 0, len(seq)+n)
	for i := 0; i < n; i++ {
		out = append(out, term.NewDimInt(1))
	}
	return append(out, seq...)
}
