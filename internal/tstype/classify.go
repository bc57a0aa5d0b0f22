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

package tstype

// Flags summarize the nullability related properties of a type.
type Flags uint8

const (
	IncludesNull Flags = 1 << iota
	IncludesUndefined
	IsAny
	IsUnknown
	IsUnion
	IsNever
)

// Classify computes the [Flags] of t. `void` counts as undefined. Named types classify through their underlying type.
func Classify(t Type) Flags {
	return classify(t, 0)
}

const maxDepth = 32

func classify(t Type, depth int) Flags {
	if depth > maxDepth {
		return IsUnknown
	}

	switch t := t.(type) {
	case nil:
		return IsUnknown

	case *Intrinsic:
		switch t {
		case Null:
			return IncludesNull
		case Undefined, Void:
			return IncludesUndefined
		case Any:
			return IsAny
		case Unknown:
			return IsUnknown
		case Never:
			return IsNever
		}

	case *Union:
		f := IsUnion
		for _, m := range t.Types {
			f |= classify(m, depth+1) &^ IsNever
		}

		return f

	case *Named:
		if u := t.Underlying(); u != nil {
			return classify(u, depth+1)
		}
	}

	return 0
}

// PossiblyNullish reports whether a value of type t may be null or undefined.
// `any` and `unknown` are possibly nullish.
func PossiblyNullish(t Type) bool {
	return Classify(t)&(IncludesNull|IncludesUndefined|IsAny|IsUnknown) != 0
}
