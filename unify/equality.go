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
	"github.com/gx-org/dshape/term"
)

// solveEquality runs classical Robinson-style unification with an
// occurs check over every non-coercible sub-equation. Ellipsis names
// that have at least one non-coercible occurrence are also resolved
// here under strict, equal-length semantics for all of their
// occurrences (§8 invariant 4): forceEquality names the ellipses for
// which that rule applies.
func solveEquality(d *decomposed, forceEquality map[string]bool, b *bindings) *diag.Failure {
	for _, eq := range d.dims {
		if eq.Coercible {
			continue
		}
		if err := unifyDim(b, eq.Left, eq.Right, eq.EqIndex); err != nil {
			return err
		}
	}
	for _, eq := range d.dtypes {
		if eq.Coercible {
			continue
		}
		if err := unifyDType(b, eq.Left, eq.Right, eq.EqIndex); err != nil {
			return err
		}
	}
	for _, eq := range d.ellipses {
		if !forceEquality[eq.Name] {
			continue
		}
		if err := unifyEllipsis(b, eq.Name, eq.Seq, eq.EqIndex); err != nil {
			return err
		}
	}
	return nil
}

func unifyDim(b *bindings, l, r term.Term, eqIndex int) *diag.Failure {
	l = b.resolveDim(l)
	r = b.resolveDim(r)
	lv, lIsVar := l.(*term.DimVar)
	rv, rIsVar := r.(*term.DimVar)
	switch {
	case lIsVar && rIsVar:
		if lv.Name == rv.Name {
			return nil
		}
		if !b.bindDim(lv.Name, r) {
			return diag.OccursCheckf(l, r, eqIndex, "%s occurs in %s", l, r)
		}
		return nil
	case lIsVar:
		if !b.bindDim(lv.Name, r) {
			return diag.OccursCheckf(l, r, eqIndex, "%s occurs in %s", l, r)
		}
		return nil
	case rIsVar:
		if !b.bindDim(rv.Name, l) {
			return diag.OccursCheckf(r, l, eqIndex, "%s occurs in %s", r, l)
		}
		return nil
	}
	li, lok := l.(*term.DimInt)
	ri, rok := r.(*term.DimInt)
	if !lok || !rok {
		return diag.Clashf(l, r, eqIndex, "%s and %s are not unifiable dimension terms", l, r)
	}
	if li.N != ri.N {
		return diag.Clashf(l, r, eqIndex, "dimension %d does not equal %d", li.N, ri.N)
	}
	return nil
}

func unifyDType(b *bindings, l, r term.Term, eqIndex int) *diag.Failure {
	l = b.resolveDType(l)
	r = b.resolveDType(r)
	lv, lIsVar := l.(*term.DTypeVar)
	rv, rIsVar := r.(*term.DTypeVar)
	switch {
	case lIsVar && rIsVar:
		if lv.Name == rv.Name {
			return nil
		}
		if !b.bindDType(lv.Name, r) {
			return diag.OccursCheckf(l, r, eqIndex, "%s occurs in %s", l, r)
		}
		return nil
	case lIsVar:
		if !b.bindDType(lv.Name, r) {
			return diag.OccursCheckf(l, r, eqIndex, "%s occurs in %s", l, r)
		}
		return nil
	case rIsVar:
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
	if ld.Tag != rd.Tag {
		return diag.Clashf(l, r, eqIndex, "element type %s does not equal %s", ld.Tag, rd.Tag)
	}
	return nil
}

// unifyEllipsis binds an ellipsis variable to seq, or, if it is already
// bound, requires the existing and new sequences to have the same
// length and unify elementwise.
func unifyEllipsis(b *bindings, name string, seq []term.Term, eqIndex int) *diag.Failure {
	existing, ok := b.ellipsis[name]
	if !ok {
		b.ellipsis[name] = seq
		return nil
	}
	if len(existing) != len(seq) {
		return diag.ArityMismatchf(nil, nil, eqIndex, "ellipsis %s is bound to %d dimensions elsewhere but %d here", name, len(existing), len(seq))
	}
	for i := range existing {
		if err := unifyDim(b, existing[i], seq[i], eqIndex); err != nil {
			return err
		}
	}
	return nil
}
