// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

// Package nullish decides whether expressions can be null or undefined.
package nullish

import (
	"fillmore-labs.com/nullishguard/internal/syntax"
	"fillmore-labs.com/nullishguard/internal/tstype"
)

// TypeChecker is a type inference session for a single file.
type TypeChecker interface {
	// TypeOf returns the inferred type of an expression, false if it cannot be resolved.
	TypeOf(n syntax.Node) (tstype.Type, bool)
	// TypeString renders a type for display.
	TypeString(t tstype.Type) string
	// StrictNullChecks reports whether nullable types are distinguished from their base types.
	StrictNullChecks() bool
}

// IsPossiblyNullish reports whether a value of type t may be null or undefined at runtime.
// `any` and `unknown` are possibly nullish, and so is a union with a possibly nullish member.
func IsPossiblyNullish(t tstype.Type) bool {
	flags := tstype.Classify(t)
	if flags&(tstype.IsAny|tstype.IsUnknown|tstype.IncludesNull|tstype.IncludesUndefined) != 0 {
		return true
	}

	if flags&tstype.IsUnion != 0 {
		for _, m := range tstype.Members(t) {
			if IsPossiblyNullish(m) {
				return true
			}
		}
	}

	return false
}

// Oracle answers nullability questions about expressions using a [TypeChecker].
type Oracle struct {
	checker TypeChecker
}

// NewOracle creates an [Oracle] backed by checker.
func NewOracle(checker TypeChecker) Oracle {
	return Oracle{checker: checker}
}

// NeverNullish reports whether n is statically never null or undefined, and if so returns
// the rendered type of n. Expressions with unresolved types are possibly nullish.
func (o Oracle) NeverNullish(n syntax.Node) (string, bool) {
	n = syntax.Unparen(n)

	t, ok := o.checker.TypeOf(n)
	if !ok || IsPossiblyNullish(t) {
		return "", false
	}

	return o.checker.TypeString(t), true
}
