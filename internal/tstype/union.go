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

// NewUnion returns the union of ts. Nested unions are flattened, duplicates and `never` removed.
// `any` and `unknown` absorb every other member. The nullish members are ordered last.
func NewUnion(ts ...Type) Type {
	var (
		members  []Type
		seen     = make(map[string]struct{}, len(ts))
		hasNull  bool
		hasUndef bool
	)

	var add func(t Type) bool

	add = func(t Type) bool {
		switch t := t.(type) {
		case nil:
			return true

		case *Union:
			for _, m := range t.Types {
				if !add(m) {
					return false
				}
			}

			return true

		case *Intrinsic:
			switch t {
			case Any, Unknown:
				return false

			case Never:
				return true

			case Null:
				hasNull = true

				return true

			case Undefined:
				hasUndef = true

				return true
			}
		}

		key := t.String()
		if _, ok := seen[key]; ok {
			return true
		}

		seen[key] = struct{}{}
		members = append(members, t)

		return true
	}

	for _, t := range ts {
		if !add(t) {
			return absorbing(ts)
		}
	}

	if hasNull {
		members = append(members, Null)
	}

	if hasUndef {
		members = append(members, Undefined)
	}

	switch len(members) {
	case 0:
		return Never

	case 1:
		return members[0]
	}

	return &Union{Types: members}
}

// absorbing returns `any` if it appears in ts, else `unknown`.
func absorbing(ts []Type) Type {
	for _, t := range ts {
		for _, m := range Members(t) {
			if m == Any {
				return Any
			}
		}
	}

	return Unknown
}

// Members returns the constituents of a union, or t itself.
func Members(t Type) []Type {
	if u, ok := t.(*Union); ok {
		return u.Types
	}

	if t == nil {
		return nil
	}

	return []Type{t}
}

// RemoveNullish returns t without its `null`, `undefined` and `void` constituents.
func RemoveNullish(t Type) Type {
	if n, ok := t.(*Named); ok {
		if u := n.Underlying(); u != nil && Classify(u)&(IncludesNull|IncludesUndefined) != 0 {
			t = u
		}
	}

	var kept []Type

	for _, m := range Members(t) {
		switch m {
		case Null, Undefined, Void:
			continue
		}

		kept = append(kept, m)
	}

	if len(kept) == len(Members(t)) {
		return t
	}

	return NewUnion(kept...)
}

// Widen returns the base primitive type of literal types, as for mutable variable declarations.
func Widen(t Type) Type {
	switch t := t.(type) {
	case *Literal:
		switch t.Kind {
		case StringLit:
			return String
		case NumberLit:
			return Number
		case BigIntLit:
			return BigInt
		case BooleanLit:
			return Boolean
		}

	case *Union:
		ws := make([]Type, 0, len(t.Types))
		for _, m := range t.Types {
			ws = append(ws, Widen(m))
		}

		return NewUnion(ws...)
	}

	return t
}
