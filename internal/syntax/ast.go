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

// Kind identifies the concrete type of a [Node].
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	KindBad     Kind = iota // bad
	KindIdent               // identifier
	KindLiteral             // literal
	KindMember              // member
	KindCall                // call
	KindLogical             // logical
	KindChain               // chain
	KindParen               // paren
	KindNonNull             // non-null
	KindAs                  // as
	KindNew                 // new
	KindObject              // object
	KindArray               // array
	KindFunc                // func
	KindOther               // other
)

// Node is a node of the syntax tree.
type Node interface {
	Pos() token.Pos
	End() token.Pos
	Kind() Kind
}

// Ident is an identifier or `this`.
type Ident struct {
	NamePos token.Pos
	Name    string
}

// LitKind classifies literals.
type LitKind uint8

const (
	LitString LitKind = iota
	LitTemplate
	LitNumber
	LitBigInt
	LitTrue
	LitFalse
	LitNull
	LitUndefined
	LitRegExp
)

// Literal is a literal value. Value is the source text, strings keep their quotes.
type Literal struct {
	ValuePos token.Pos
	ValueEnd token.Pos
	LitKind  LitKind
	Value    string
}

// MemberExpr is a property access `X.Prop`, `X?.Prop`, `X[Index]` or `X?.[Index]`.
type MemberExpr struct {
	X        Node
	Optional bool
	Computed bool
	Opt      token.Pos // position of "?." or NoPos
	Lbrack   token.Pos // position of "[" for computed access
	Prop     Node      // *Ident for non-computed access, the index expression otherwise
	EndPos   token.Pos
}

// CallExpr is a call `Fun(Args)` or `Fun?.(Args)`.
type CallExpr struct {
	Fun      Node
	Optional bool
	Opt      token.Pos // position of "?." or NoPos
	TypeArgs Node      // explicit type arguments or nil
	Lparen   token.Pos
	Args     []Node
	Rparen   token.Pos
}

// LogicalExpr is a short-circuiting binary expression with operator "??", "||" or "&&".
type LogicalExpr struct {
	X     Node
	Op    string
	OpPos token.Pos
	Y     Node
}

// ChainExpr marks the root of a run of member and call links containing at least one optional link.
type ChainExpr struct {
	X Node
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Lparen token.Pos
	X      Node
	Rparen token.Pos
}

// NonNullExpr is a non-null assertion `X!`.
type NonNullExpr struct {
	X      Node
	EndPos token.Pos
}

// AsExpr is a type assertion `X as T` or `X satisfies T`.
type AsExpr struct {
	X         Node
	Type      TypeExpr // nil for `as const`
	Satisfies bool
	EndPos    token.Pos
}

// NewExpr is a constructor invocation.
type NewExpr struct {
	NewPos token.Pos
	Ctor   Node
	Args   []Node
	EndPos token.Pos
}

// Property is a named member of an object literal.
type Property struct {
	Name  string
	Value Node
}

// ObjectLit is an object literal.
type ObjectLit struct {
	Lbrace token.Pos
	Props  []Property
	Others []Node // spreads, methods and computed members
	Rbrace token.Pos
}

// ArrayLit is an array literal.
type ArrayLit struct {
	Lbrack token.Pos
	Elems  []Node
	Rbrack token.Pos
}

// FuncLit is an arrow function or function expression.
type FuncLit struct {
	From, To token.Pos
	Params   []Param
	Result   TypeExpr // nil when not annotated
	Body     Node
	Block    bool // Body is a statement block
}

// Other is any node without a dedicated representation.
type Other struct {
	From, To token.Pos
	Type     string // tree-sitter node type
	Children []Node
}

func (n *Ident) Pos() token.Pos       { return n.NamePos }
func (n *Literal) Pos() token.Pos     { return n.ValuePos }
func (n *MemberExpr) Pos() token.Pos  { return n.X.Pos() }
func (n *CallExpr) Pos() token.Pos    { return n.Fun.Pos() }
func (n *LogicalExpr) Pos() token.Pos { return n.X.Pos() }
func (n *ChainExpr) Pos() token.Pos   { return n.X.Pos() }
func (n *ParenExpr) Pos() token.Pos   { return n.Lparen }
func (n *NonNullExpr) Pos() token.Pos { return n.X.Pos() }
func (n *AsExpr) Pos() token.Pos      { return n.X.Pos() }
func (n *NewExpr) Pos() token.Pos     { return n.NewPos }
func (n *ObjectLit) Pos() token.Pos   { return n.Lbrace }
func (n *ArrayLit) Pos() token.Pos    { return n.Lbrack }
func (n *FuncLit) Pos() token.Pos     { return n.From }
func (n *Other) Pos() token.Pos       { return n.From }

func (n *Ident) End() token.Pos       { return n.NamePos + token.Pos(len(n.Name)) }
func (n *Literal) End() token.Pos     { return n.ValueEnd }
func (n *MemberExpr) End() token.Pos  { return n.EndPos }
func (n *CallExpr) End() token.Pos    { return n.Rparen + 1 }
func (n *LogicalExpr) End() token.Pos { return n.Y.End() }
func (n *ChainExpr) End() token.Pos   { return n.X.End() }
func (n *ParenExpr) End() token.Pos   { return n.Rparen + 1 }
func (n *NonNullExpr) End() token.Pos { return n.EndPos }
func (n *AsExpr) End() token.Pos      { return n.EndPos }
func (n *NewExpr) End() token.Pos     { return n.EndPos }
func (n *ObjectLit) End() token.Pos   { return n.Rbrace + 1 }
func (n *ArrayLit) End() token.Pos    { return n.Rbrack + 1 }
func (n *FuncLit) End() token.Pos     { return n.To }
func (n *Other) End() token.Pos       { return n.To }

func (*Ident) Kind() Kind       { return KindIdent }
func (*Literal) Kind() Kind     { return KindLiteral }
func (*MemberExpr) Kind() Kind  { return KindMember }
func (*CallExpr) Kind() Kind    { return KindCall }
func (*LogicalExpr) Kind() Kind { return KindLogical }
func (*ChainExpr) Kind() Kind   { return KindChain }
func (*ParenExpr) Kind() Kind   { return KindParen }
func (*NonNullExpr) Kind() Kind { return KindNonNull }
func (*AsExpr) Kind() Kind      { return KindAs }
func (*NewExpr) Kind() Kind     { return KindNew }
func (*ObjectLit) Kind() Kind   { return KindObject }
func (*ArrayLit) Kind() Kind    { return KindArray }
func (*FuncLit) Kind() Kind     { return KindFunc }
func (*Other) Kind() Kind       { return KindOther }

// IsLink reports whether n is a member access or call, the links of an optional chain.
func IsLink(n Node) bool {
	switch n.(type) {
	case *MemberExpr, *CallExpr:
		return true
	}

	return false
}

// Operand returns the object of a member access or the callee of a call.
func Operand(link Node) Node {
	switch n := link.(type) {
	case *MemberExpr:
		return n.X
	case *CallExpr:
		return n.Fun
	}

	return nil
}

// Guarded reports whether n is an optional member access or an optional call.
func Guarded(n Node) bool {
	switch n := n.(type) {
	case *MemberExpr:
		return n.Optional
	case *CallExpr:
		return n.Optional
	}

	return false
}

// Unparen strips parentheses and chain wrappers.
func Unparen(n Node) Node {
	for {
		switch e := n.(type) {
		case *ParenExpr:
			n = e.X
		case *ChainExpr:
			n = e.X
		default:
			return n
		}
	}
}

// hasOptionalLink reports whether the spine below and including n contains an optional link.
func hasOptionalLink(n Node) bool {
	for IsLink(n) {
		if Guarded(n) {
			return true
		}

		n = Operand(n)
	}

	return false
}
