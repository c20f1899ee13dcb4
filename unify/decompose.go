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

// dimEq is a decomposed dimension-vs-dimension sub-equation.
type dimEq struct {
	Left, Right term.Term
	Coercible   bool
	EqIndex     int
}

// dtypeEq is a decomposed element-type sub-equation.
type dtypeEq struct {
	Left, Right term.Term
	Coercible   bool
	EqIndex     int
}

// ellipsisEq binds an ellipsis variable to the dimension sequence it
// stands for at one occurrence site.
type ellipsisEq struct {
	Name      string
	Seq       []term.Term
	Coercible bool
	EqIndex   int
}

// decomposed is the flattened set of sub-equations produced by
// decompose across every equation in a unification call.
type decomposed struct {
	dims     []dimEq
	dtypes   []dtypeEq
	ellipses []ellipsisEq
}

// decomposeAll decomposes every equation in eqs, in order, collecting
// all sub-equations. It stops at the first failure (malformed equation,
// arity mismatch, or clash), per §7's "failures are terminal".
func decomposeAll(eqs []term.Equation) (*decomposed, *diag.Failure) {
	out := &decomposed{}
	for i, eq := range eqs {
		if err := decomposeOne(eq, i, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decomposeOne(eq term.Equation, idx int, out *decomposed) *diag.Failure {
	rhsInner, rhsCoercible := term.StripCoerce(eq.RHS)
	rhsShape, rhsIsShape := rhsInner.(*term.Shape)
	if !rhsIsShape {
		// Not a shape equation: either a bare dtype equation or a bare
		// dimension equation. Route directly without splitting.
		return decomposeAtom(eq.LHS, rhsInner, rhsCoercible, idx, out)
	}
	lhsDims, lhsElt, err := asShapeParts(eq.LHS, idx)
	if err != nil {
		return err
	}
	// Element-type equation: exactly one, per §4.2.1.
	eltRHS, eltCoercible := term.StripCoerce(rhsShape.Elt)
	appendDTypeEq(lhsElt, eltRHS, eltCoercible, idx, out)
	return decomposeDims(lhsDims, rhsShape.Dims, idx, out)
}

// asShapeParts normalizes a left-hand side into (dims, elt). A bare
// scalar term (not wrapped in Shape) is a rank-0 datashape: dims is
// empty and elt is the term itself.
func asShapeParts(lhs term.Term, idx int) ([]term.Term, term.Term, *diag.Failure) {
	switch v := lhs.(type) {
	case *term.Shape:
		return v.Dims, v.Elt, nil
	case *term.DType, *term.DTypeVar:
		return nil, v, nil
	default:
		return nil, nil, diag.Clashf(lhs, nil, idx, "left-hand side %s cannot be matched against a shape", lhs)
	}
}

func appendDTypeEq(l, r term.Term, coercible bool, idx int, out *decomposed) {
	out.dtypes = append(out.dtypes, dtypeEq{Left: l, Right: r, Coercible: coercible, EqIndex: idx})
}

// decomposeAtom handles a top-level equation whose right-hand side
// (after stripping a possible top-level Coerce) is not a Shape: a bare
// dtype-vs-dtype or dim-vs-dim equation.
func decomposeAtom(lhs, rhs term.Term, coercible bool, idx int, out *decomposed) *diag.Failure {
	switch rhs.(type) {
	case *term.DType, *term.DTypeVar:
		switch lhs.(type) {
		case *term.DType, *term.DTypeVar:
			out.dtypes = append(out.dtypes, dtypeEq{Left: lhs, Right: rhs, Coercible: coercible, EqIndex: idx})
			return nil
		default:
			return diag.Clashf(lhs, rhs, idx, "%s cannot be matched against element type %s", lhs, rhs)
		}
	case *term.DimInt, *term.DimVar:
		switch lhs.(type) {
		case *term.DimInt, *term.DimVar:
			out.dims = append(out.dims, dimEq{Left: lhs, Right: rhs, Coercible: coercible, EqIndex: idx})
			return nil
		default:
			return diag.Clashf(lhs, rhs, idx, "%s cannot be matched against dimension %s", lhs, rhs)
		}
	case *term.Ellipsis:
		return diag.MalformedEquationf(lhs, rhs, idx, "ellipsis %s cannot appear outside of a shape", rhs)
	default:
		return diag.Clashf(lhs, rhs, idx, "%s cannot be matched against %s", lhs, rhs)
	}
}

// decomposeDims implements §4.2.2: split the RHS dimension list at its
// single optional ellipsis and pair LHS dimensions positionally.
func decomposeDims(lhsDims, rhsDims []term.Term, idx int, out *decomposed) *diag.Failure {
	ellipsisAt := -1
	var ellipsisTerm *term.Ellipsis
	var ellipsisCoercible bool
	for i, d := range rhsDims {
		inner, coercible := term.StripCoerce(d)
		e, ok := inner.(*term.Ellipsis)
		if !ok {
			continue
		}
		if ellipsisAt != -1 {
			return diag.MalformedEquationf(nil, nil, idx, "more than one ellipsis in a single right-hand side shape")
		}
		ellipsisAt, ellipsisTerm, ellipsisCoercible = i, e, coercible
	}
	for _, d := range lhsDims {
		inner, _ := term.StripCoerce(d)
		if _, ok := inner.(*term.Ellipsis); ok {
			return diag.MalformedEquationf(nil, nil, idx, "ellipsis is not allowed on the left-hand side")
		}
	}
	if ellipsisAt == -1 {
		if len(lhsDims) != len(rhsDims) {
			return diag.ArityMismatchf(nil, nil, idx, "fixed-arity shapes have %d and %d dimensions", len(lhsDims), len(rhsDims))
		}
		for i := range rhsDims {
			r, coercible := term.StripCoerce(rhsDims[i])
			out.dims = append(out.dims, dimEq{Left: lhsDims[i], Right: r, Coercible: coercible, EqIndex: idx})
		}
		return nil
	}
	prefix := rhsDims[:ellipsisAt]
	suffix := rhsDims[ellipsisAt+1:]
	if len(lhsDims) < len(prefix)+len(suffix) {
		return diag.ArityMismatchf(nil, nil, idx, "left-hand side has %d dimensions, fewer than the %d required by the right-hand side's fixed positions", len(lhsDims), len(prefix)+len(suffix))
	}
	for i, p := range prefix {
		r, coercible := term.StripCoerce(p)
		out.dims = append(out.dims, dimEq{Left: lhsDims[i], Right: r, Coercible: coercible, EqIndex: idx})
	}
	suffixStart := len(lhsDims) - len(suffix)
	for i, s := range suffix {
		r, coercible := term.StripCoerce(s)
		out.dims = append(out.dims, dimEq{Left: lhsDims[suffixStart+i], Right: r, Coercible: coercible, EqIndex: idx})
	}
	middle := append([]term.Term{}, lhsDims[len(prefix):suffixStart]...)
	out.ellipses = append(out.ellipses, ellipsisEq{Name: ellipsisTerm.Name, Seq: middle, Coercible: ellipsisCoercible, EqIndex: idx})
	return nil
}
