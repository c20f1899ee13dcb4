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

package diag

// ArityMismatchf builds an ArityMismatch failure.
func ArityMismatchf(left, right stringer, eqIndex int, format string, a ...any) *Failure {
	return New(ArityMismatch, left, right, eqIndex, format, a...)
}

// Clashf builds a Clash failure.
func Clashf(left, right stringer, eqIndex int, format string, a ...any) *Failure {
	return New(Clash, left, right, eqIndex, format, a...)
}

// OccursCheckf builds an OccursCheck failure.
func OccursCheckf(left, right stringer, eqIndex int, format string, a ...any) *Failure {
	return New(OccursCheck, left, right, eqIndex, format, a...)
}

// BroadcastIncompatiblef builds a BroadcastIncompatible failure.
func BroadcastIncompatiblef(left, right stringer, eqIndex int, format string, a ...any) *Failure {
	return New(BroadcastIncompatible, left, right, eqIndex, format, a...)
}

// CastIncompatiblef builds a CastIncompatible failure.
func CastIncompatiblef(left, right stringer, eqIndex int, format string, a ...any) *Failure {
	return New(CastIncompatible, left, right, eqIndex, format, a...)
}

// MalformedEquationf builds a MalformedEquation failure.
func MalformedEquationf(left, right stringer, eqIndex int, format string, a ...any) *Failure {
	return New(MalformedEquation, left, right, eqIndex, format, a...)
}

// UnboundVariablef builds an UnboundVariable failure.
func UnboundVariablef(left, right stringer, eqIndex int, format string, a ...any) *Failure {
	return New(UnboundVariable, left, right, eqIndex, format, a...)
}
