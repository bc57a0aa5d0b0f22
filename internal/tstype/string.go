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

import "strings"

func (t *Intrinsic) String() string { return t.Name }

func (t *Literal) String() string {
	if t.Kind == StringLit && len(t.Value) >= 2 && t.Value[0] != '"' {
		return `"` + strings.ReplaceAll(t.Value[1:len(t.Value)-1], `"`, `\"`) + `"`
	}

	return t.Value
}

func (t *Union) String() string {
	var b strings.Builder

	for i, m := range t.Types {
		if i > 0 {
			b.WriteString(" | ")
		}

		writeOperand(&b, m)
	}

	return b.String()
}

func (t *Object) String() string {
	if len(t.Props) == 0 && t.Index == nil {
		return "{}"
	}

	var b strings.Builder

	b.WriteString("{ ")

	if t.Index != nil {
		b.WriteString("[x: string]: ")
		b.WriteString(t.Index.String())
		b.WriteString("; ")
	}

	for _, p := range t.Props {
		b.WriteString(p.Name)

		if p.Optional {
			b.WriteByte('?')
		}

		if f, ok := p.Type.(*Func); ok && p.Method {
			writeParams(&b, f.Params)
			b.WriteString(": ")
			b.WriteString(typeString(f.Result))
		} else {
			b.WriteString(": ")
			b.WriteString(typeString(p.Type))
		}

		b.WriteString("; ")
	}

	b.WriteByte('}')

	return b.String()
}

func (t *Func) String() string {
	var b strings.Builder

	writeParams(&b, t.Params)
	b.WriteString(" => ")
	b.WriteString(typeString(t.Result))

	return b.String()
}

func (t *Array) String() string {
	var b strings.Builder

	writeOperand(&b, t.Elem)
	b.WriteString("[]")

	return b.String()
}

func (t *Opaque) String() string { return t.Text }

func (t *Named) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}

	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, typeString(a))
	}

	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// writeOperand writes t, parenthesized when it would bind looser than a union member or array element.
func writeOperand(b *strings.Builder, t Type) {
	switch t.(type) {
	case *Union, *Func:
		b.WriteByte('(')
		b.WriteString(t.String())
		b.WriteByte(')')

	default:
		b.WriteString(typeString(t))
	}
}

func writeParams(b *strings.Builder, params []Param) {
	b.WriteByte('(')

	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}

		if p.Rest {
			b.WriteString("...")
		}

		b.WriteString(p.Name)

		if p.Optional {
			b.WriteByte('?')
		}

		b.WriteString(": ")
		b.WriteString(typeString(p.Type))
	}

	b.WriteByte(')')
}

func typeString(t Type) string {
	if t == nil {
		return Any.Name
	}

	return t.String()
}
