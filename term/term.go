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

// Package term is the algebraic representation of datashapes: the
// closed set of term variants that the unification engine matches,
// decomposes, and substitutes.
package term

import (
	"fmt"
	"strings"

	"github.com/gx-org/dshape/dtype"
)

// Term is a datashape term. The interface is sealed: term() can only be
// implemented by the variants defined in this package, so no external
// package can add an eighth variant to the closed set of §3.
type Term interface {
	term()
	String() string
}

// DimInt is a concrete non-negative dimension extent.
type DimInt struct {
	N int64
}

func (*DimInt) term() {}

// String returns a string representation of the term.
func (d *DimInt) String() string { return fmt.Sprintf("%d", d.N) }

// NewDimInt returns a concrete dimension extent.
func NewDimInt(n int64) *DimInt { return &DimInt{N: n} }

// DimVar is a dimension-valued type variable.
type DimVar struct {
	Name string
}

func (*DimVar) term() {}

// String returns a string representation of the term.
func (d *DimVar) String() string { return d.Name }

// NewDimVar returns a dimension-valued type variable.
func NewDimVar(name string) *DimVar { return &DimVar{Name: name} }

// DType is a concrete scalar element type.
type DType struct {
	Tag dtype.Tag
}

func (*DType) term() {}

// String returns a string representation of the term.
func (d *DType) String() string { return d.Tag.String() }

// NewDType returns a concrete scalar element type.
func NewDType(tag dtype.Tag) *DType { return &DType{Tag: tag} }

// DTypeVar is an element-type variable.
type DTypeVar struct {
	Name string
}

func (*DTypeVar) term() {}

// String returns a string representation of the term.
func (d *DTypeVar) String() string { return d.Name }

// NewDTypeVar returns an element-type variable.
func NewDTypeVar(name string) *DTypeVar { return &DTypeVar{Name: name} }

// Ellipsis is a variadic placeholder standing for zero or more
// dimensions. An empty Name means the ellipsis is anonymous: it is
// given a fresh, unshared name by the relabeler.
type Ellipsis struct {
	Name string
}

func (*Ellipsis) term() {}

// String returns a string representation of the term.
func (e *Ellipsis) String() string {
	if e.Name == "" {
		return "..."
	}
	return e.Name + "..."
}

// NewEllipsis returns a variadic dimension placeholder. Pass an empty
// name for an anonymous ellipsis.
func NewEllipsis(name string) *Ellipsis { return &Ellipsis{Name: name} }

// Shape is an ordered sequence of dimension terms followed by exactly
// one element-type term. Datashapes are flat: Dims never contains a
// Shape.
type Shape struct {
	Dims []Term
	Elt  Term
}

func (*Shape) term() {}

// String returns a string representation of the term.
func (s *Shape) String() string {
	var parts []string
	for _, d := range s.Dims {
		parts = append(parts, d.String())
	}
	parts = append(parts, s.Elt.String())
	return strings.Join(parts, "*")
}

// NewShape returns a datashape term from a dimension sequence and an
// element type.
func NewShape(dims []Term, elt Term) *Shape {
	return &Shape{Dims: dims, Elt: elt}
}

// Coerce marks that the left-hand side of an equation may be coerced
// (broadcast for dimensions, cast for element types) to match the
// wrapped term, rather than be strictly equal to it. Coerce is legal
// only inside the right-hand side of a top-level equation.
type Coerce struct {
	Inner Term
}

func (*Coerce) term() {}

// String returns a string representation of the term.
func (c *Coerce) String() string { return "~" + c.Inner.String() }

// NewCoerce wraps a term with a coercion marker.
func NewCoerce(inner Term) *Coerce { return &Coerce{Inner: inner} }

// StripCoerce returns the term one level below a Coerce marker, and
// whether t was coerced. Non-Coerce terms are returned unchanged.
func StripCoerce(t Term) (inner Term, coercible bool) {
	c, ok := t.(*Coerce)
	if !ok {
		return t, false
	}
	return c.Inner, true
}
