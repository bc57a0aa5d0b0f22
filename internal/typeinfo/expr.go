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

package typeinfo

import (
	"strings"

	"fillmore-labs.com/nullishguard/internal/syntax"
	"fillmore-labs.com/nullishguard/internal/tstype"
)

func (i *Info) typeOf(n syntax.Node) (tstype.Type, bool) {
	switch n := n.(type) {
	case *syntax.Ident:
		return i.lookupValue(n.Name, n.Pos())

	case *syntax.Literal:
		return literalType(n), true

	case *syntax.MemberExpr, *syntax.CallExpr:
		t, ok, shortCircuits := i.linkType(n)
		if !ok {
			return nil, false
		}

		if shortCircuits {
			t = tstype.NewUnion(t, tstype.Undefined)
		}

		return t, true

	case *syntax.LogicalExpr:
		return i.logicalType(n)

	case *syntax.ChainExpr:
		return i.TypeOf(n.X)

	case *syntax.ParenExpr:
		return i.TypeOf(n.X)

	case *syntax.NonNullExpr:
		t, ok := i.TypeOf(n.X)
		if !ok {
			return nil, false
		}

		return tstype.RemoveNullish(t), true

	case *syntax.AsExpr:
		if n.Type != nil && !n.Satisfies {
			return i.fromTypeExpr(n.Type)
		}

		return i.TypeOf(n.X)

	case *syntax.NewExpr:
		return i.newType(n)

	case *syntax.ObjectLit:
		return i.objectType(n), true

	case *syntax.ArrayLit:
		return i.arrayType(n), true

	case *syntax.FuncLit:
		return i.funcLitType(n), true

	case *syntax.Other:
		return i.otherType(n)
	}

	return nil, false
}

func literalType(n *syntax.Literal) tstype.Type {
	switch n.LitKind {
	case syntax.LitString:
		return &tstype.Literal{Kind: tstype.StringLit, Value: n.Value}
	case syntax.LitTemplate:
		return tstype.String
	case syntax.LitNumber:
		return &tstype.Literal{Kind: tstype.NumberLit, Value: n.Value}
	case syntax.LitBigInt:
		return &tstype.Literal{Kind: tstype.BigIntLit, Value: n.Value}
	case syntax.LitTrue, syntax.LitFalse:
		return &tstype.Literal{Kind: tstype.BooleanLit, Value: n.Value}
	case syntax.LitNull:
		return tstype.Null
	case syntax.LitUndefined:
		return tstype.Undefined
	case syntax.LitRegExp:
		return tstype.NewNamed("RegExp", nil, nil)
	}

	return tstype.Unknown
}

// linkType computes the type of a member access or call, before short-circuiting of
// optional links. shortCircuits reports whether a guarded operand on the spine may be nullish.
func (i *Info) linkType(n syntax.Node) (t tstype.Type, ok, shortCircuits bool) {
	operand := syntax.Operand(n)

	var xt tstype.Type
	if syntax.IsLink(operand) {
		xt, ok, shortCircuits = i.linkType(operand)
	} else {
		xt, ok = i.TypeOf(operand)
	}

	if !ok {
		return nil, false, false
	}

	if syntax.Guarded(n) {
		if tstype.Classify(xt)&(tstype.IncludesNull|tstype.IncludesUndefined) != 0 {
			shortCircuits = true
		}

		xt = tstype.RemoveNullish(xt)
	}

	switch n := n.(type) {
	case *syntax.MemberExpr:
		t, ok = i.memberType(n, xt)

	case *syntax.CallExpr:
		t, ok = tstype.Result(xt)
	}

	return t, ok, shortCircuits
}

func (i *Info) memberType(n *syntax.MemberExpr, xt tstype.Type) (tstype.Type, bool) {
	if !n.Computed {
		id, ok := n.Prop.(*syntax.Ident)
		if !ok {
			return nil, false
		}

		return i.access.Property(xt, id.Name)
	}

	if lit, ok := syntax.Unparen(n.Prop).(*syntax.Literal); ok && lit.LitKind == syntax.LitString {
		if t, ok := i.access.Property(xt, unquote(lit.Value)); ok {
			return t, true
		}
	}

	return i.access.Element(xt)
}

func (i *Info) logicalType(n *syntax.LogicalExpr) (tstype.Type, bool) {
	xt, ok := i.TypeOf(n.X)
	if !ok {
		return nil, false
	}

	yt, ok := i.TypeOf(n.Y)
	if !ok {
		return nil, false
	}

	switch n.Op {
	case "??", "||":
		return tstype.NewUnion(tstype.RemoveNullish(xt), yt), true

	default: // "&&" yields a falsy left operand
		return tstype.NewUnion(xt, yt), true
	}
}

func (i *Info) newType(n *syntax.NewExpr) (tstype.Type, bool) {
	id, ok := n.Ctor.(*syntax.Ident)
	if !ok {
		return nil, false
	}

	if d := i.file.Lookup(id.Name, id.Pos(), (*syntax.Decl).IsValue); d != nil {
		if d.Kind != syntax.DeclClass {
			return nil, false
		}

		return i.namedType(d, nil), true
	}

	if _, ok := globalValues[id.Name]; ok {
		return tstype.NewNamed(id.Name, nil, nil), true
	}

	return nil, false
}

func (i *Info) objectType(n *syntax.ObjectLit) tstype.Type {
	obj := &tstype.Object{Props: make([]tstype.Prop, 0, len(n.Props))}

	for _, p := range n.Props {
		t, ok := i.TypeOf(p.Value)
		if !ok {
			t = tstype.Unknown
		}

		obj.Props = append(obj.Props, tstype.Prop{Name: p.Name, Type: tstype.Widen(t)})
	}

	return obj
}

func (i *Info) arrayType(n *syntax.ArrayLit) tstype.Type {
	elems := make([]tstype.Type, 0, len(n.Elems))

	for _, e := range n.Elems {
		t, ok := i.TypeOf(e)
		if !ok {
			t = tstype.Unknown
		}

		elems = append(elems, tstype.Widen(t))
	}

	return &tstype.Array{Elem: tstype.NewUnion(elems...)}
}

func (i *Info) funcLitType(n *syntax.FuncLit) tstype.Type {
	f := i.funcType(n.Params, n.Result)

	if f.Result == nil && !n.Block && n.Body != nil {
		if t, ok := i.TypeOf(n.Body); ok {
			f.Result = t
		}
	}

	return f
}

func (i *Info) otherType(n *syntax.Other) (tstype.Type, bool) {
	switch n.Type {
	case "unary_expression":
		text := i.file.Text(n)

		switch {
		case strings.HasPrefix(text, "!"):
			return tstype.Boolean, true
		case strings.HasPrefix(text, "typeof"):
			return tstype.String, true
		case strings.HasPrefix(text, "void"):
			return tstype.Undefined, true
		case strings.HasPrefix(text, "-"), strings.HasPrefix(text, "+"), strings.HasPrefix(text, "~"):
			return tstype.Number, true
		}
	}

	return nil, false
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}
