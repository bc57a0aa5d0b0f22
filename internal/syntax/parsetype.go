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

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// typeExpr converts a type annotation. It returns nil for a nil node.
func (c *converter) typeExpr(n *sitter.Node) TypeExpr {
	if n == nil {
		return nil
	}

	span := c.span(n)

	switch n.Type() {
	case "type_annotation", "opting_type_annotation", "omitting_type_annotation", "parenthesized_type":
		for i := range int(n.NamedChildCount()) {
			if t := c.typeExpr(n.NamedChild(i)); t != nil {
				return t
			}
		}

		return &OtherType{Span: span, Text: c.text(n)}

	case "predefined_type":
		return &KeywordType{Span: span, Name: c.text(n)}

	case "literal_type":
		return c.literalType(n, span)

	case "union_type":
		u := &UnionType{Span: span}
		for i := range int(n.NamedChildCount()) {
			switch t := c.typeExpr(n.NamedChild(i)).(type) {
			case nil:
			case *UnionType:
				u.Types = append(u.Types, t.Types...)
			default:
				u.Types = append(u.Types, t)
			}
		}

		if len(u.Types) == 1 {
			return u.Types[0]
		}

		return u

	case "object_type", "interface_body":
		return &ObjectType{Span: span, Members: c.members(n)}

	case "function_type":
		c.typeParams(n, span)

		f := &FuncType{Span: span, Result: c.typeExpr(n.ChildByFieldName("return_type"))}
		if params := n.ChildByFieldName("parameters"); params != nil {
			f.Params = c.paramList(params)
		}

		if f.Result == nil && n.NamedChildCount() > 0 {
			f.Result = c.typeExpr(n.NamedChild(int(n.NamedChildCount()) - 1))
		}

		return f

	case "array_type":
		if n.NamedChildCount() == 0 {
			return &OtherType{Span: span, Text: c.text(n)}
		}

		return &ArrayType{Span: span, Elem: c.typeExpr(n.NamedChild(0))}

	case "tuple_type":
		return &TupleType{Span: span, Text: c.text(n)}

	case "type_identifier", "nested_type_identifier":
		return c.refType(c.text(n), nil, span)

	case "generic_type":
		name := n.ChildByFieldName("name")
		if name == nil && n.NamedChildCount() > 0 {
			name = n.NamedChild(0)
		}

		if name == nil {
			return &OtherType{Span: span, Text: c.text(n)}
		}

		var args []TypeExpr

		if targs := n.ChildByFieldName("type_arguments"); targs != nil {
			for i := range int(targs.NamedChildCount()) {
				if t := c.typeExpr(targs.NamedChild(i)); t != nil {
					args = append(args, t)
				}
			}
		}

		return c.refType(c.text(name), args, span)

	case "comment":
		return nil

	default:
		return &OtherType{Span: span, Text: c.text(n)}
	}
}

// refType converts a reference to a named type. `undefined` is parsed as an identifier in some positions.
func (c *converter) refType(name string, args []TypeExpr, span Span) TypeExpr {
	switch name {
	case "undefined", "null":
		return &KeywordType{Span: span, Name: name}
	}

	return &RefType{Span: span, Name: name, Args: args}
}

func (c *converter) literalType(n *sitter.Node, span Span) TypeExpr {
	text := strings.TrimSpace(c.text(n))

	switch text {
	case "null", "undefined":
		return &KeywordType{Span: span, Name: text}

	case "true":
		return &LiteralType{Span: span, LitKind: LitTrue, Value: text}

	case "false":
		return &LiteralType{Span: span, LitKind: LitFalse, Value: text}
	}

	switch {
	case strings.HasPrefix(text, `"`), strings.HasPrefix(text, "'"), strings.HasPrefix(text, "`"):
		return &LiteralType{Span: span, LitKind: LitString, Value: text}

	case strings.HasSuffix(text, "n") && !strings.HasPrefix(text, "0x"):
		return &LiteralType{Span: span, LitKind: LitBigInt, Value: text}

	default:
		return &LiteralType{Span: span, LitKind: LitNumber, Value: text}
	}
}

// members converts the members of an object type, interface body or class body.
func (c *converter) members(n *sitter.Node) []Member {
	if n == nil {
		return nil
	}

	var ms []Member

	for i := range int(n.NamedChildCount()) {
		ch := n.NamedChild(i)

		switch ch.Type() {
		case "property_signature", "public_field_definition":
			name := ch.ChildByFieldName("name")
			if name == nil {
				continue
			}

			ms = append(ms, Member{
				Name:     propertyKey(c.text(name)),
				Optional: hasToken(ch, "?"),
				Type:     c.typeExpr(ch.ChildByFieldName("type")),
			})

		case "method_signature", "method_definition", "abstract_method_signature":
			name := ch.ChildByFieldName("name")
			if name == nil {
				continue
			}

			c.typeParams(ch, c.span(ch))

			m := Member{
				Name:     propertyKey(c.text(name)),
				Optional: hasToken(ch, "?"),
				Method:   true,
				Type:     c.typeExpr(ch.ChildByFieldName("return_type")),
			}
			if params := ch.ChildByFieldName("parameters"); params != nil {
				m.Params = c.paramList(params)
			}

			ms = append(ms, m)

		case "index_signature":
			m := Member{Index: true, Type: c.typeExpr(ch.ChildByFieldName("type"))}
			if m.Type == nil && ch.NamedChildCount() > 0 {
				m.Type = c.typeExpr(ch.NamedChild(int(ch.NamedChildCount()) - 1))
			}

			ms = append(ms, m)
		}
	}

	return ms
}

// hasToken reports whether n has a direct anonymous child of the given type.
func hasToken(n *sitter.Node, typ string) bool {
	for i := range int(n.ChildCount()) {
		if ch := n.Child(i); ch != nil && !ch.IsNamed() && ch.Type() == typ {
			return true
		}
	}

	return false
}

func propertyKey(s string) string {
	return unquote(s)
}
