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

// Substitute applies sol to t, expanding ellipsis bindings in place and
// stripping every Coerce marker. Substitute is total only when every
// free variable of t is bound in sol; otherwise it fails with
// diag.UnboundVariable.
func Substitute(sol *Solution, t term.Term) (term.Term, *diag.Failure) {
	switch v := t.(type) {
	case *term.DimInt:
		return v, nil
	case *term.DType:
		return v, nil
	case *term.DimVar:
		bound, ok := sol.Dim[v.Name]
		if !ok {
			return nil, diag.UnboundVariablef(v, nil, -1, "dimension variable %s is not bound in the solution", v)
		}
		return bound, nil
	case *term.DTypeVar:
		bound, ok := sol.DType[v.Name]
		if !ok {
			return nil, diag.UnboundVariablef(v, nil, -1, "element-type variable %s is not bound in the solution", v)
		}
		return bound, nil
	case *term.Ellipsis:
		return nil, diag.UnboundVariablef(v, nil, -1, "ellipsis %s cannot be substituted outside of a shape", v)
	case *term.Coerce:
		return Substitute(sol, v.Inner)
	case *term.Shape:
		return substituteShape(sol, v)
	default:
		return nil, diag.UnboundVariablef(nil, nil, -1, "unsupported term %T", v)
	}
}

func substituteShape(sol *Solution, s *term.Shape) (*term.Shape, *diag.Failure) {
	var dims []term.Term
	for _, d := range s.Dims {
		inner, _ := term.StripCoerce(d)
		if e, ok := inner.(*term.Ellipsis); ok {
			seq, ok := sol.Ellipsis[e.Name]
			if !ok {
				return nil, diag.UnboundVariablef(e, nil, -1, "ellipsis %s is not bound in the solution", e)
			}
			for _, el := range seq {
				resolved, err := Substitute(sol, el)
				if err != nil {
					return nil, err
				}
				dims = append(dims, resolved)
			}
			continue
		}
		resolved, err := Substitute(sol, inner)
		if err != nil {
			return nil, err
		}
		dims = append(dims, resolved)
	}
	eltInner, _ := term.StripCoerce(s.Elt)
	elt, err := Substitute(sol, eltInner)
	if err != nil {
		return nil, err
	}
	return term.NewShape(dims, elt), nil
}
