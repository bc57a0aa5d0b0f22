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

package syntax

import "go/token"

// TypeExpr is a type annotation.
type TypeExpr interface {
	Pos() token.Pos
	End() token.Pos
	typeNode()
}

// Span is a half-open range of source positions.
type Span struct {
	From, To token.Pos
}

func (s Span) Pos() token.Pos { return s.From }
func (s Span) End() token.Pos { return s.To }

// Contains reports whether pos lies within the span.
func (s Span) Contains(pos token.Pos) bool { return s.From <= pos && pos < s.To }

type (
	// KeywordType is a predefined type like `string`, `any`, `null` or `undefined`.
	KeywordType struct {
		Span
		Name string
	}

	// LiteralType is a string, number or boolean literal type.
	LiteralType struct {
		Span
		LitKind LitKind
		Value   string
	}

	// UnionType is `A | B | ...`, flattened.
	UnionType struct {
		Span
		Types []TypeExpr
	}

	// ObjectType is an object type literal or the body of an interface or class.
	ObjectType struct {
		Span
		Members []Member
	}

	// FuncType is a function type `(params) => Result`.
	FuncType struct {
		Span
		Params []Param
		Result TypeExpr
	}

	// ArrayType is `Elem[]`.
	ArrayType struct {
		Span
		Elem TypeExpr
	}

	// TupleType is `[A, B]`.
	TupleType struct {
		Span
		Text string
	}

	// RefType is a reference to a named type, possibly with type arguments.
	RefType struct {
		Span
		Name string
		Args []TypeExpr
	}

	// OtherType is any unsupported type syntax.
	OtherType struct {
		Span
		Text string
	}
)

func (*KeywordType) typeNode() {}
func (*LiteralType) typeNode() {}
func (*UnionType) typeNode()   {}
func (*ObjectType) typeNode()  {}
func (*FuncType) typeNode()    {}
func (*ArrayType) typeNode()   {}
func (*TupleType) typeNode()   {}
func (*RefType) typeNode()     {}
func (*OtherType) typeNode()   {}

// Member is a property, method or index signature of an object type.
type Member struct {
	Name     string
	Optional bool
	Method   bool
	Index    bool // index signature, Name is empty
	Type     TypeExpr
	Params   []Param // methods only
}

// Param is a function parameter.
type Param struct {
	Name     string
	Optional bool
	Rest     bool
	Type     TypeExpr // nil when not annotated
}
