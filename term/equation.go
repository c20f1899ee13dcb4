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

package term

import "github.com/pkg/errors"

// Equation is an ordered pair (lhs, rhs) of terms to unify. By
// construction, Coerce and Ellipsis never occur on lhs.
type Equation struct {
	LHS, RHS Term
}

// NewEquation builds an equation, rejecting an LHS that carries a
// Coerce marker or an Ellipsis anywhere within it.
func NewEquation(lhs, rhs Term) (Equation, error) {
	if err := checkLHS(lhs); err != nil {
		return Equation{}, err
	}
	return Equation{LHS: lhs, RHS: rhs}, nil
}

func checkLHS(t Term) error {
	switch v := t.(type) {
	case *Coerce:
		return errors.Errorf("malformed equation: coercion marker ~%s is not allowed on the left-hand side", v.Inner)
	case *Ellipsis:
		return errors.Errorf("malformed equation: ellipsis %s is not allowed on the left-hand side", v)
	case *Shape:
		for _, d := range v.Dims {
			if err := checkLHS(d); err != nil {
				return err
			}
		}
		return checkLHS(v.Elt)
	default:
		return nil
	}
}
