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

package unify_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/dshape/dtype"
	"github.com/gx-org/dshape/term"
	"github.com/gx-org/dshape/unify"
)

func eq(t *testing.T, lhs, rhs term.Term) term.Equation {
	t.Helper()
	e, err := term.NewEquation(lhs, rhs)
	if err != nil {
		t.Fatalf("NewEquation(%s, %s) failed: %v", lhs, rhs, err)
	}
	return e
}

func shape(dims []term.Term, elt term.Term) *term.Shape { return term.NewShape(dims, elt) }
func dim(n int64) *term.DimInt                          { return term.NewDimInt(n) }

func TestUnifyScenario1ExactEllipsis(t *testing.T) {
	eqs := []term.Equation{
		eq(t, shape([]term.Term{dim(10), dim(10)}, term.NewDType(dtype.Int32)),
			shape([]term.Term{term.NewEllipsis("A")}, term.NewDType(dtype.Int32))),
		eq(t, shape([]term.Term{dim(10), dim(10)}, term.NewDType(dtype.Int32)),
			shape([]term.Term{term.NewEllipsis("A")}, term.NewDType(dtype.Int32))),
	}
	sol, err := unify.Unify(eqs)
	if err != nil {
		t.Fatalf("Unify failed: %v", err)
	}
	want := []term.Term{dim(10), dim(10)}
	if diff := cmp.Diff(want, sol.Ellipsis["A"]); diff != "" {
		t.Errorf("A binding mismatch (-want +got):\n%s", diff)
	}
	got, serr := unify.Substitute(sol, shape([]term.Term{term.NewEllipsis("A")}, term.NewDType(dtype.Int32)))
	if serr != nil {
		t.Fatalf("Substitute failed: %v", serr)
	}
	if got.String() != "10*10*int32" {
		t.Errorf("Substitute() = %s, want 10*10*int32", got)
	}
}

func TestUnifyScenario2BroadcastEllipsis(t *testing.T) {
	pattern := func() *term.Shape {
		return shape([]term.Term{term.NewCoerce(term.NewEllipsis("A"))}, term.NewDType(dtype.Int32))
	}
	eqs := []term.Equation{
		eq(t, shape([]term.Term{dim(1), dim(10)}, term.NewDType(dtype.Int32)), pattern()),
		eq(t, shape([]term.Term{dim(10), dim(10)}, term.NewDType(dtype.Int32)), pattern()),
	}
	sol, err := unify.Unify(eqs)
	if err != nil {
		t.Fatalf("Unify failed: %v", err)
	}
	want := []term.Term{dim(10), dim(10)}
	if diff := cmp.Diff(want, sol.Ellipsis["A"]); diff != "" {
		t.Errorf("A binding mismatch (-want +got):\n%s", diff)
	}
}

func TestUnifyScenario3RankMismatchBroadcast(t *testing.T) {
	pattern := func() *term.Shape {
		return shape([]term.Term{term.NewCoerce(term.NewEllipsis("A"))}, term.NewDType(dtype.Int32))
	}
	eqs := []term.Equation{
		eq(t, shape([]term.Term{dim(10)}, term.NewDType(dtype.Int32)), pattern()),
		eq(t, shape([]term.Term{dim(10), dim(10)}, term.NewDType(dtype.Int32)), pattern()),
	}
	sol, err := unify.Unify(eqs)
	if err != nil {
		t.Fatalf("Unify failed: %v", err)
	}
	want := []term.Term{dim(10), dim(10)}
	if diff := cmp.Diff(want, sol.Ellipsis["A"]); diff != "" {
		t.Errorf("A binding mismatch (-want +got):\n%s", diff)
	}
}

func TestUnifyScenario4IncompatibleBroadcast(t *testing.T) {
	pattern := func() *term.Shape {
		return shape([]term.Term{term.NewCoerce(term.NewEllipsis("A"))}, term.NewDType(dtype.Int32))
	}
	eqs := []term.Equation{
		eq(t, shape([]term.Term{dim(1), dim(5)}, term.NewDType(dtype.Int32)), pattern()),
		eq(t, shape([]term.Term{dim(10), dim(10)}, term.NewDType(dtype.Int32)), pattern()),
	}
	_, err := unify.Unify(eqs)
	if err == nil {
		t.Fatal("Unify succeeded on an incompatible broadcast")
	}
}

func TestUnifyScenario5MixedDimsAndCoercedDType(t *testing.T) {
	pattern := func() *term.Shape {
		return shape([]term.Term{term.NewDimVar("a"), term.NewDimVar("b")}, term.NewCoerce(term.NewDTypeVar("c")))
	}
	eqs := []term.Equation{
		eq(t, shape([]term.Term{dim(10), dim(10)}, term.NewDType(dtype.Float64)), pattern()),
		eq(t, shape([]term.Term{dim(10), dim(10)}, term.NewDType(dtype.Int32)), pattern()),
	}
	sol, err := unify.Unify(eqs)
	if err != nil {
		t.Fatalf("Unify failed: %v", err)
	}
	if sol.Dim["a"].String() != "10" || sol.Dim["b"].String() != "10" {
		t.Errorf("a,b = %s,%s want 10,10", sol.Dim["a"], sol.Dim["b"])
	}
	if sol.DType["c"].String() != "float64" {
		t.Errorf("c = %s, want float64", sol.DType["c"])
	}
}

func TestUnifyScenario6CastPinnedByEquality(t *testing.T) {
	eqs := []term.Equation{
		eq(t, term.NewDType(dtype.Float32), term.NewDTypeVar("dtype")),
		eq(t, term.NewDType(dtype.Int32), term.NewCoerce(term.NewDTypeVar("dtype"))),
	}
	sol, err := unify.Unify(eqs)
	if err != nil {
		t.Fatalf("Unify failed: %v", err)
	}
	if sol.DType["dtype"].String() != "float32" {
		t.Errorf("dtype = %s, want float32", sol.DType["dtype"])
	}
}

func TestUnifyScenario7PartiallyCoercedDims(t *testing.T) {
	pattern := func() *term.Shape {
		return shape([]term.Term{term.NewCoerce(term.NewDimVar("a")), term.NewDimVar("b")}, term.NewDType(dtype.Int32))
	}
	eqs := []term.Equation{
		eq(t, shape([]term.Term{dim(1), dim(10)}, term.NewDType(dtype.Int32)), pattern()),
		eq(t, shape([]term.Term{dim(10), dim(10)}, term.NewDType(dtype.Int32)), pattern()),
	}
	sol, err := unify.Unify(eqs)
	if err != nil {
		t.Fatalf("Unify failed: %v", err)
	}
	if sol.Dim["a"].String() != "10" || sol.Dim["b"].String() != "10" {
		t.Errorf("a,b = %s,%s want 10,10", sol.Dim["a"], sol.Dim["b"])
	}
}

func TestUnifyTwoUnboundVariablesUnifyTogether(t *testing.T) {
	n := term.NewDimVar("n")
	eqs := []term.Equation{
		eq(t, n, n),
	}
	if _, err := unify.Unify(eqs); err != nil {
		t.Errorf("Unify(n, n) failed, want two fresh unbound variables to unify: %v", err)
	}
}

func TestUnifyAllAggregatesFailures(t *testing.T) {
	ok := eq(t, term.NewDimInt(1), term.NewDimInt(1))
	bad := eq(t, term.NewDimInt(1), term.NewDimInt(2))
	sols, err := unify.UnifyAll([][]term.Equation{{ok}, {bad}})
	if err == nil {
		t.Fatal("UnifyAll did not report the failing call")
	}
	if sols[0] == nil {
		t.Error("UnifyAll dropped the solution for the succeeding call")
	}
	if sols[1] != nil {
		t.Error("UnifyAll returned a solution for the failing call")
	}
}

func TestUnifyWithCustomLattice(t *testing.T) {
	lattice, err := dtype.NewLattice(map[dtype.Tag][]dtype.Tag{
		dtype.Bool: {dtype.Int32},
	})
	if err != nil {
		t.Fatalf("NewLattice failed: %v", err)
	}
	eqs := []term.Equation{
		eq(t, term.NewDType(dtype.Int32), term.NewDTypeVar("dtype")),
		eq(t, term.NewDType(dtype.Bool), term.NewCoerce(term.NewDTypeVar("dtype"))),
	}
	if _, err := unify.Unify(eqs, unify.WithLattice(lattice)); err != nil {
		t.Errorf("Unify with a custom lattice failed: %v", err)
	}
}
