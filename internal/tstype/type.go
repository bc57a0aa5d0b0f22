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

// Package tstype describes TypeScript types as far as nullability analysis needs them.
package tstype

// Type is a TypeScript type.
type Type interface {
	String() string
	isType()
}

// Intrinsic is a predefined type like `string`, `null` or `any`.
type Intrinsic struct {
	Name string
}

// Predefined types.
var (
	Any       = &Intrinsic{Name: "any"}
	Unknown   = &Intrinsic{Name: "unknown"}
	Never     = &Intrinsic{Name: "never"}
	Void      = &Intrinsic{Name: "void"}
	Null      = &Intrinsic{Name: "null"}
	Undefined = &Intrinsic{Name: "undefined"}
	String    = &Intrinsic{Name: "string"}
	Number    = &Intrinsic{Name: "number"}
	Boolean   = &Intrinsic{Name: "boolean"}
	BigInt    = &Intrinsic{Name: "bigint"}
	Symbol    = &Intrinsic{Name: "symbol"}
	NonPrim   = &Intrinsic{Name: "object"}
)

var intrinsics = map[string]*Intrinsic{}

func init() {
	for _, t := range []*Intrinsic{Any, Unknown, Never, Void, Null, Undefined, String, Number, Boolean, BigInt, Symbol, NonPrim} {
		intrinsics[t.Name] = t
	}
}

// LookupIntrinsic returns the predefined type with the given keyword.
func LookupIntrinsic(name string) (*Intrinsic, bool) {
	t, ok := intrinsics[name]

	return t, ok
}

// LitKind classifies literal types.
type LitKind uint8

const (
	StringLit LitKind = iota
	NumberLit
	BigIntLit
	BooleanLit
)

// Literal is a literal type like `"a"`, `1` or `true`.
type Literal struct {
	Kind  LitKind
	Value string
}

// Union is a union of at least two types. Use [NewUnion] to construct unions.
type Union struct {
	Types []Type
}

// Prop is a property of an object type.
type Prop struct {
	Name     string
	Optional bool
	Method   bool // Type is a *Func
	Type     Type
}

// Object is an object type with named properties and an optional string index signature.
type Object struct {
	Props []Prop
	Index Type // nil without index signature
}

// Param is a parameter of a function type.
type Param struct {
	Name     string
	Optional bool
	Rest     bool
	Type     Type
}

// Func is a function type.
type Func struct {
	Params []Param
	Result Type
}

// Array is an array type `Elem[]`.
type Array struct {
	Elem Type
}

// Opaque is a type whose structure is not modeled, like tuples or mapped types.
// It is never nullish.
type Opaque struct {
	Text string
}

// Named is a reference to a declared type, resolved lazily.
type Named struct {
	Name string
	Args []Type

	resolve func() Type
	state   resolveState
	under   Type
}

type resolveState uint8

const (
	unresolved resolveState = iota
	resolving
	resolved
)

// NewNamed returns a reference to the type name. resolve computes the underlying type and may be nil
// for built-in object types.
func NewNamed(name string, args []Type, resolve func() Type) *Named {
	return &Named{Name: name, Args: args, resolve: resolve}
}

// Underlying returns the resolved type of n, or nil for an opaque object type.
// A cyclic definition resolves to nil.
func (n *Named) Underlying() Type {
	switch n.state {
	case resolved:
		return n.under

	case resolving:
		return nil
	}

	n.state = resolving
	if n.resolve != nil {
		n.under = n.resolve()
	}

	n.state = resolved

	return n.under
}

func (*Intrinsic) isType() {}
func (*Literal) isType()   {}
func (*Union) isType()     {}
func (*Object) isType()    {}
func (*Func) isType()      {}
func (*Array) isType()     {}
func (*Opaque) isType()    {}
func (*Named) isType()     {}
