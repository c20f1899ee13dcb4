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

package diag_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gx-org/dshape/diag"
)

type fakeTerm string

func (f fakeTerm) String() string { return string(f) }

func TestFailureError(t *testing.T) {
	f := diag.Clashf(fakeTerm("3"), fakeTerm("4"), 2, "%s does not equal %s", fakeTerm("3"), fakeTerm("4"))
	got := f.Error()
	if !strings.Contains(got, "equation 2") || !strings.Contains(got, "clash") {
		t.Errorf("Error() = %q, want it to mention the equation index and kind", got)
	}
}

func TestFailureUnwrap(t *testing.T) {
	f := diag.OccursCheckf(fakeTerm("n"), fakeTerm("n+1"), 0, "n occurs in n+1")
	if errors.Unwrap(f) == nil {
		t.Error("Unwrap() returned nil, want the wrapped error")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind diag.Kind
		want string
	}{
		{diag.ArityMismatch, "arity mismatch"},
		{diag.Clash, "clash"},
		{diag.OccursCheck, "occurs check"},
		{diag.BroadcastIncompatible, "broadcast incompatible"},
		{diag.CastIncompatible, "cast incompatible"},
		{diag.MalformedEquation, "malformed equation"},
		{diag.UnboundVariable, "unbound variable"},
	}
	for _, test := range tests {
		if got := test.kind.String(); got != test.want {
			t.Errorf("%d.String() = %q, want %q", test.kind, got, test.want)
		}
	}
}
