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

// Solution is the idempotent mapping from variable name to term
// returned by Unify, partitioned by variable kind. It is reported
// under the variable names the caller used when building the
// equations: relabeling is an internal detail of the solver.
type Solution struct {
	Dim      map[string]term.Term
	DType    map[string]term.Term
	Ellipsis map[string][]term.Term
}

func newSolution() *Solution {
	return &Solution{
		Dim:      map[string]term.Term{},
		DType:    map[string]term.Term{},
		Ellipsis: map[string][]term.Term{},
	}
}
