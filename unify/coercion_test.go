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
	"testing"

	"github.com/gx-org/dshape/dtype"
	"github.com/gx-org/dshape/term"
)

func TestCoerceDimBroadcastsOne(t *testing.T) {
	b := newBindings()
	got, err := coerceDim(b, term.NewDimInt(1), term.NewDimInt(9), 0)
	if err != nil {
		t.Fatalf("coerceDim failed: %v", err)
	}
	if got.String() != "9" {
		t.Errorf("coerceDim(1, 9) = %s, want 9", got)
	}
	got, err = coerceDim(b, term.NewDimInt(9), term.NewDimInt(1), 0)
	if err != nil {
		t.Fatalf("coerceDim failed: %v", err)
	}
	if got.String() != "9" {
		t.Errorf("coerceDim(9, 1) = %s, want 9", got)
	}
}

func TestCoerceDimRejectsIncompatible(t *testing.T) {
	b := newBindings()
	if _, err := coerceDim(b, term.NewDimInt(3), term.NewDimInt(4), 0); err == nil {
		t.Fatal("coerceDim accepted broadcasting 3 against 4")
	}
}

func TestCoerceDTypeFollowsLattice(t *testing.T) {
	b := newBindings()
	lattice := dtype.Default()
	if err := coerceDType(b, lattice, term.NewDType(dtype.Int32), term.NewDType(dtype.Float64), 0); err != nil {
		t.Errorf("coerceDType(int32, float64) failed: %v", err)
	}
	if err := coerceDType(b, lattice, term.NewDType(dtype.Float64), term.NewDType(dtype.Int32), 0); err == nil {
		t.Error("coerceDType(float64, int32) succeeded, want rejection")
	}
}

func TestCoerceEllipsisAbsorbsEmptySequence(t *testing.T) {
	b := newBindings()
	if err := coerceEllipsis(b, "A", []term.Term{term.NewDimInt(10), term.NewDimInt(20)}, 0); err != nil {
		t.Fatalf("first occurrence failed: %v", err)
	}
	if err := coerceEllipsis(b, "A", nil, 1); err != nil {
		t.Fatalf("empty sequence was rejected: %v", err)
	}
	got := b.finalSeq(b.ellipsis["A"])
	if len(got) != 2 || got[0].String() != "10" || got[1].String() != "20" {
		t.Errorf("A resolved to %v, want [10 20]", got)
	}
}

func TestCoerceEllipsisLeftPadsShorterSequence(t *testing.T) {
	b := newBindings()
	if err := coerceEllipsis(b, "A", []term.Term{term.NewDimInt(10), term.NewDimInt(20)}, 0); err != nil {
		t.Fatalf("first occurrence failed: %v", err)
	}
	if err := coerceEllipsis(b, "A", []term.Term{term.NewDimInt(20)}, 1); err != nil {
		t.Fatalf("second occurrence failed: %v", err)
	}
	got := b.finalSeq(b.ellipsis["A"])
	if len(got) != 2 || got[0].String() != "10" || got[1].String() != "20" {
		t.Errorf("A resolved to %v, want [10 20]", got)
	}
}
