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

// Package diag is the structured failure type the solver returns.
// Failures are terminal: the solver does not attempt partial repair or
// backtracking.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why unification failed.
type Kind int

// Failure kinds.
const (
	// ArityMismatch: fixed-arity shapes differ in length.
	ArityMismatch Kind = iota
	// Clash: irreducible structural disagreement, e.g. DimInt vs DType.
	Clash
	// OccursCheck: a variable would be bound to a term that contains it.
	OccursCheck
	// BroadcastIncompatible: two non-1 unequal dimensions under coercion.
	BroadcastIncompatible
	// CastIncompatible: LHS dtype cannot cast to RHS dtype under the lattice.
	CastIncompatible
	// MalformedEquation: LHS coercion marker, LHS ellipsis, or more than
	// one ellipsis on a single RHS.
	MalformedEquation
	// UnboundVariable: substitution invoked with an incomplete solution.
	UnboundVariable
)

// String returns a name for the failure kind.
func (k Kind) String() string {
	switch k {
	case ArityMismatch:
		return "arity mismatch"
	case Clash:
		return "clash"
	case OccursCheck:
		return "occurs check"
	case BroadcastIncompatible:
		return "broadcast incompatible"
	case CastIncompatible:
		return "cast incompatible"
	case MalformedEquation:
		return "malformed equation"
	case UnboundVariable:
		return "unbound variable"
	default:
		return "unknown"
	}
}

// stringer is satisfied by term.Term without importing the term
// package here, which would create an import cycle (term has no
// reason to depend on diag, but diag's Failure needs to print terms
// passed in from term/unify callers).
type stringer interface {
	String() string
}

// Failure is a single tagged failure, naming the offending pair of
// terms and the position of the equation that produced it within the
// original equation list.
type Failure struct {
	Kind          Kind
	Left, Right   stringer
	EquationIndex int
	err           error
}

var _ error = (*Failure)(nil)

// New builds a failure at a given kind and position.
func New(kind Kind, left, right stringer, eqIndex int, format string, a ...any) *Failure {
	return &Failure{
		Kind:          kind,
		Left:          left,
		Right:         right,
		EquationIndex: eqIndex,
		err:           errors.Errorf(format, a...),
	}
}

// Error returns a string description of the failure.
func (f *Failure) Error() string {
	return fmt.Sprintf("equation %d: %s: %s", f.EquationIndex, f.Kind, f.err.Error())
}

// Unwrap returns the underlying error so callers can use errors.Is/As
// against the wrapped github.com/pkg/errors value.
func (f *Failure) Unwrap() error { return f.err }

// Format writes the failure into the state of the formatter, forwarding
// %+v to the wrapped error so a stack trace from github.com/pkg/errors
// is preserved.
func (f *Failure) Format(s fmt.State, verb rune) {
	if s.Flag('+') && verb == 'v' {
		fmt.Fprintf(s, "equation %d: %s: %+v", f.EquationIndex, f.Kind, f.err)
		return
	}
	fmt.Fprint(s, f.Error())
}
