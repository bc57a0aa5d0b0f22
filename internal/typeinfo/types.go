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

// fromTypeExpr converts a type annotation. Type syntax that is not modeled is unresolved.
func (i *Info) fromTypeExpr(te syntax.TypeExpr) (tstype.Type, bool) {
	switch te := te.(type) {
	case nil:
		return nil, false

	case *syntax.KeywordType:
		if t, ok := tstype.LookupIntrinsic(te.Name); ok {
			return t, true
		}

		return nil, false

	case *syntax.LiteralType:
		return literalTypeExpr(te), true

	case *syntax.UnionType:
		ts := make([]tstype.Type, 0, len(te.Types))

		for _, m := range te.Types {
			t, ok := i.fromTypeExpr(m)
			if !ok {
				return nil, false
			}

			ts = append(ts, t)
		}

		return tstype.NewUnion(ts...), true

	case *syntax.ObjectType:
		return i.objectTypeExpr(te.Members), true

	case *syntax.FuncType:
		return i.funcType(te.Params, te.Result), true

	case *syntax.ArrayType:
		elem, ok := i.fromTypeExpr(te.Elem)
		if !ok {
			elem = tstype.Unknown
		}

		return &tstype.Array{Elem: elem}, true

	case *syntax.TupleType:
		return &tstype.Opaque{Text: te.Text}, true

	case *syntax.RefType:
		return i.refType(te)

	case *syntax.OtherType:
		return i.otherTypeExpr(te)
	}

	return nil, false
}

func literalTypeExpr(te *syntax.LiteralType) tstype.Type {
	switch te.LitKind {
	case syntax.LitTrue, syntax.LitFalse:
		return &tstype.Literal{Kind: tstype.BooleanLit, Value: te.Value}
	case syntax.LitString:
		return &tstype.Literal{Kind: tstype.StringLit, Value: te.Value}
	case syntax.LitBigInt:
		return &tstype.Literal{Kind: tstype.BigIntLit, Value: te.Value}
	default:
		return &tstype.Literal{Kind: tstype.NumberLit, Value: te.Value}
	}
}

func (i *Info) objectTypeExpr(members []syntax.Member) *tstype.Object {
	obj := &tstype.Object{}
	methods := make(map[string]int)

	for _, m := range members {
		t, ok := i.fromTypeExpr(m.Type)

		switch {
		case m.Index:
			if !ok {
				t = tstype.Unknown
			}

			obj.Index = t

		case m.Method:
			if idx, seen := methods[m.Name]; seen {
				// overloaded, the result depends on the arguments
				obj.Props[idx].Type = &tstype.Func{}

				continue
			}

			methods[m.Name] = len(obj.Props)
			f := i.funcType(m.Params, m.Type)
			obj.Props = append(obj.Props, tstype.Prop{Name: m.Name, Optional: m.Optional, Method: true, Type: f})

		default:
			if !ok {
				t = tstype.Unknown
			}

			obj.Props = append(obj.Props, tstype.Prop{Name: m.Name, Optional: m.Optional, Type: t})
		}
	}

	return obj
}

// funcType converts a signature. An unannotated or unresolved result stays nil.
func (i *Info) funcType(params []syntax.Param, result syntax.TypeExpr) *tstype.Func {
	f := &tstype.Func{Params: make([]tstype.Param, 0, len(params))}

	for _, p := range params {
		t, ok := i.fromTypeExpr(p.Type)
		if !ok {
			t = tstype.Any
		}

		f.Params = append(f.Params, tstype.Param{Name: p.Name, Optional: p.Optional, Rest: p.Rest, Type: t})
	}

	if t, ok := i.fromTypeExpr(result); ok {
		f.Result = t
	}

	return f
}

func (i *Info) refType(te *syntax.RefType) (tstype.Type, bool) {
	if d := i.file.Lookup(te.Name, te.Pos(), (*syntax.Decl).IsType); d != nil {
		switch {
		case d.Kind == syntax.DeclTypeParam, d.Kind == syntax.DeclImport:
			return nil, false

		case len(te.Args) > 0:
			return nil, false // generic declarations are not instantiated
		}

		return i.namedType(d, nil), true
	}

	args := make([]tstype.Type, 0, len(te.Args))

	for _, a := range te.Args {
		t, ok := i.fromTypeExpr(a)
		if !ok {
			t = tstype.Unknown
		}

		args = append(args, t)
	}

	switch te.Name {
	case "Array", "ReadonlyArray":
		if len(args) != 1 {
			return nil, false
		}

		return &tstype.Array{Elem: args[0]}, true

	case "Record":
		if len(args) != 2 {
			return nil, false
		}

		return &tstype.Object{Index: args[1]}, true

	case "NonNullable":
		if len(args) != 1 || args[0] == tstype.Unknown {
			return nil, false
		}

		return tstype.RemoveNullish(args[0]), true
	}

	if _, ok := builtinTypes[te.Name]; ok {
		return tstype.NewNamed(te.Name, args, nil), true
	}

	return nil, false
}

// builtinTypes are global object types that are never nullish.
var builtinTypes = map[string]struct{}{
	"Date": {}, "Error": {}, "Function": {}, "Map": {}, "Object": {}, "Promise": {}, "RegExp": {},
	"Set": {}, "WeakMap": {}, "WeakSet": {}, "ReadonlyMap": {}, "ReadonlySet": {},
	"Uint8Array": {}, "ArrayBuffer": {}, "URL": {},
}

// namedType returns the named type declared by d.
func (i *Info) namedType(d *syntax.Decl, args []tstype.Type) *tstype.Named {
	if n, ok := i.named[d]; ok && len(args) == 0 {
		return n
	}

	n := tstype.NewNamed(d.Name, args, func() tstype.Type {
		switch d.Kind {
		case syntax.DeclTypeAlias:
			t, ok := i.fromTypeExpr(d.Type)
			if !ok {
				return tstype.Unknown
			}

			return t

		default: // interfaces and classes
			return i.objectTypeExpr(d.Members)
		}
	})

	if len(args) == 0 {
		i.named[d] = n
	}

	return n
}

func (i *Info) otherTypeExpr(te *syntax.OtherType) (tstype.Type, bool) {
	text := strings.TrimSpace(te.Text)

	switch {
	case strings.HasPrefix(text, "keyof "):
		return &tstype.Opaque{Text: text}, true

	case strings.HasPrefix(text, "readonly "):
		return &tstype.Opaque{Text: text}, true

	case strings.HasPrefix(text, "`"):
		return tstype.String, true
	}

	return nil, false
}
