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
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/gx-org/dshape/term"
)

type varKind int

const (
	dimKind varKind = iota
	dtypeKind
	ellipsisKind
)

type varKey struct {
	kind varKind
	name string
}

// relabeler α-renames every type variable in a list of equations to a
// globally unique fresh name. RHS scope is the union of all
// right-hand sides: every distinct variable name appearing on any RHS
// gets one fresh name shared by every RHS occurrence. LHS scope is a
// single equation's left-hand side: each LHS is renamed independently.
type relabeler struct {
	counter int
	rhs     map[varKey]string
	// fromFresh maps a fresh RHS-scope name back to the name the caller
	// used, so the solution returned to the caller can be reported under
	// the names it knows.
	fromFresh map[string]string
}

func newRelabeler() *relabeler {
	return &relabeler{rhs: map[varKey]string{}, fromFresh: map[string]string{}}
}

func (r *relabeler) fresh(name string) string {
	r.counter++
	return fmt.Sprintf("%s#%d", name, r.counter)
}

// relabel returns the α-renamed equations and the fresh-to-original
// name map for every RHS-scope variable.
func relabel(eqs []term.Equation) ([]term.Equation, map[string]string) {
	r := newRelabeler()
	r.collectRHS(eqs)
	out := make([]term.Equation, len(eqs))
	for i, eq := range eqs {
		lhsNames := map[varKey]string{}
		lhs := r.relabelTerm(eq.LHS, func(k varKind, name string) string {
			key := varKey{k, name}
			if existing, ok := lhsNames[key]; ok {
				return existing
			}
			fresh := r.fresh(name)
			lhsNames[key] = fresh
			return fresh
		})
		rhs := r.relabelTerm(eq.RHS, func(k varKind, name string) string {
			if name == "" {
				// Anonymous ellipsis: fresh on every use, never shared.
				return r.fresh("_")
			}
			return r.rhs[varKey{k, name}]
		})
		out[i] = term.Equation{LHS: lhs, RHS: rhs}
	}
	return out, r.fromFresh
}

// collectRHS assigns one fresh name to every distinct (kind, name)
// variable appearing anywhere on any RHS, in a deterministic order so
// relabeling does not depend on Go's unordered map iteration.
func (r *relabeler) collectRHS(eqs []term.Equation) {
	seen := map[varKey]bool{}
	for _, eq := range eqs {
		walkVars(eq.RHS, func(k varKind, name string) {
			if name == "" {
				return
			}
			seen[varKey{k, name}] = true
		})
	}
	keys := maps.Keys(seen)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].name < keys[j].name
	})
	for _, key := range keys {
		fresh := r.fresh(key.name)
		r.rhs[key] = fresh
		r.fromFresh[fresh] = key.name
	}
}

// walkVars visits every named variable reachable from t.
func walkVars(t term.Term, visit func(varKind, string)) {
	switch v := t.(type) {
	case *term.DimVar:
		visit(dimKind, v.Name)
	case *term.DTypeVar:
		visit(dtypeKind, v.Name)
	case *term.Ellipsis:
		visit(ellipsisKind, v.Name)
	case *term.Coerce:
		walkVars(v.Inner, visit)
	case *term.Shape:
		for _, d := range v.Dims {
			walkVars(d, visit)
		}
		walkVars(v.Elt, visit)
	}
}

// relabelTerm rebuilds t, renaming every variable through resolve.
func (r *relabeler) relabelTerm(t term.Term, resolve func(varKind, string) string) term.Term {
	switch v := t.(type) {
	case *term.DimInt:
		return v
	case *term.DType:
		return v
	case *term.DimVar:
		return term.NewDimVar(resolve(dimKind, v.Name))
	case *term.DTypeVar:
		return term.NewDTypeVar(resolve(dtypeKind, v.Name))
	case *term.Ellipsis:
		return term.NewEllipsis(resolve(ellipsisKind, v.Name))
	case *term.Coerce:
		return term.NewCoerce(r.relabelTerm(v.Inner, resolve))
	case *term.Shape:
		dims := make([]term.Term, len(v.Dims))
		for i, d := range v.Dims {
			dims[i] = r.relabelTerm(d, resolve)
		}
		return term.NewShape(dims, r.relabelTerm(v.Elt, resolve))
	default:
		return v
	}
}
