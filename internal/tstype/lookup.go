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

// Access configures member and element lookups.
type Access struct {
	// UncheckedIndex adds `undefined` to results read through an index signature or an
	// array element, like the compiler option `noUncheckedIndexedAccess`.
	UncheckedIndex bool
}

// Property returns the type of the property name of t. Optional properties include `undefined`.
// Property lookup on a union requires every non-nullish member to have the property.
func Property(t Type, name string) (Type, bool) {
	return Access{}.Property(t, name)
}

// Property returns the type of the property name of t, see [Property].
func (a Access) Property(t Type, name string) (Type, bool) {
	return a.property(t, name, 0)
}

// indexed returns the type of a read through an index signature or array element.
func (a Access) indexed(t Type) Type {
	if a.UncheckedIndex {
		return NewUnion(t, Undefined)
	}

	return t
}

func (a Access) property(t Type, name string, depth int) (Type, bool) {
	if depth > maxDepth {
		return nil, false
	}

	switch t := t.(type) {
	case *Intrinsic:
		switch t {
		case Any:
			return Any, true

		case String:
			if name == "length" {
				return Number, true
			}
		}

	case *Literal:
		if t.Kind == StringLit && name == "length" {
			return Number, true
		}

	case *Object:
		for _, p := range t.Props {
			if p.Name != name {
				continue
			}

			if p.Optional {
				return NewUnion(p.Type, Undefined), true
			}

			return p.Type, true
		}

		if t.Index != nil {
			return a.indexed(t.Index), true
		}

	case *Array:
		if name == "length" {
			return Number, true
		}

	case *Named:
		if u := t.Underlying(); u != nil {
			return a.property(u, name, depth+1)
		}

	case *Union:
		var ts []Type

		for _, m := range t.Types {
			switch m {
			case Null, Undefined, Void:
				continue
			}

			pt, ok := a.property(m, name, depth+1)
			if !ok {
				return nil, false
			}

			ts = append(ts, pt)
		}

		if len(ts) == 0 {
			return nil, false
		}

		return NewUnion(ts...), true
	}

	return nil, false
}

// Element returns the type of an element access on t.
func Element(t Type) (Type, bool) {
	return Access{}.Element(t)
}

// Element returns the type of an element access on t, see [Element].
func (a Access) Element(t Type) (Type, bool) {
	return a.element(t, 0)
}

func (a Access) element(t Type, depth int) (Type, bool) {
	if depth > maxDepth {
		return nil, false
	}

	switch t := t.(type) {
	case *Intrinsic:
		if t == Any {
			return Any, true
		}

	case *Array:
		return a.indexed(t.Elem), true

	case *Object:
		if t.Index != nil {
			return a.indexed(t.Index), true
		}

	case *Named:
		if u := t.Underlying(); u != nil {
			return a.element(u, depth+1)
		}
	}

	return nil, false
}

// Result returns the result type of calling a value of type t.
func Result(t Type) (Type, bool) {
	return result(t, 0)
}

func result(t Type, depth int) (Type, bool) {
	if depth > maxDepth {
		return nil, false
	}

	switch t := t.(type) {
	case *Intrinsic:
		if t == Any {
			return Any, true
		}

	case *Func:
		if t.Result == nil {
			return nil, false
		}

		return t.Result, true

	case *Named:
		if u := t.Underlying(); u != nil {
			return result(u, depth+1)
		}

	case *Union:
		var ts []Type

		for _, m := range t.Types {
			switch m {
			case Null, Undefined, Void:
				continue
			}

			rt, ok := result(m, depth+1)
			if !ok {
				return nil, false
			}

			ts = append(ts, rt)
		}

		if len(ts) == 0 {
			return nil, false
		}

		return NewUnion(ts...), true
	}

	return nil, false
}
