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

import "github.com/gx-org/dshape/term"

// bindings is the substitution built incrementally by the equality and
// coercion solvers. Entries may form chains of variable-to-variable
// bindings: resolveDim/resolveDType follow them, and the final* helpers
// produce the fully resolved terms that go into the Solution.
type bindings struct {
	dim      map[string]term.Term
	dtype    map[string]term.Term
	ellipsis map[string][]term.Term
}

func newBindings() *bindings {
	return &bindings{
		dim:      map[string]term.Term{},
		dtype:    map[string]term.Term{},
		ellipsis: map[string][]term.Term{},
	}
}

// resolveDim chases a chain of DimVar bindings to a concrete term or an
// unbound variable. It stops and returns the variable unchanged if it
// detects a cycle, leaving the occurs check in bindDim to report it.
func (b *bindings) resolveDim(t term.Term) term.Term {
	seen := map[string]bool{}
	for {
		v, ok := t.(*term.DimVar)
		if !ok {
			return t
		}
		if seen[v.Name] {
			return t
		}
		seen[v.Name] = true
		next, ok := b.dim[v.Name]
		if !ok {
			return t
		}
		t = next
	}
}

// resolveDType chases a chain of DTypeVar bindings the same way
// resolveDim does for dimensions.
func (b *bindings) resolveDType(t term.Term) term.Term {
	seen := map[string]bool{}
	for {
		v, ok := t.(*term.DTypeVar)
		if !ok {
			return t
		}
		if seen[v.Name] {
			return t
		}
		seen[v.Name] = true
		next, ok := b.dtype[v.Name]
		if !ok {
			return t
		}
		t = next
	}
}

func occursDim(name string, t term.Term) bool {
	v, ok := t.(*term.DimVar)
	return ok && v.Name == name
}

func occursDType(name string, t term.Term) bool {
	v, ok := t.(*term.DTypeVar)
	return ok && v.Name == name
}

func (b *bindings) bindDim(name string, t term.Term) bool {
	if occursDim(name, t) {
		return false
	}
	b.dim[name] = t
	return true
}

func (b *bindings) bindDType(name string, t term.Term) bool {
	if occursDType(name, t) {
		return false
	}
	b.dtype[name] = t
	return true
}

// finalDim fully resolves a dimension term so the returned value
// contains no further bound variable, as required by the solution's
// idempotence invariant.
func (b *bindings) finalDim(t term.Term) term.Term {
	return b.resolveDim(t)
}

func (b *bindings) finalDType(t term.Term) term.Term {
	return b.resolveDType(t)
}

func (b *bindings) finalSeq(seq []term.Term) []term.Term {
	out := make([]term.Term, len(seq))
	for i, t := range seq {
		out[i] = b.finalDim(t)
	}
	return out
}
