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

package typeinfo_test

import (
	"testing"

	"fillmore-labs.com/nullishguard/internal/testsource"
	. "fillmore-labs.com/nullishguard/internal/typeinfo"
)

func TestTypeOf(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		expr string
		want string // empty for unresolved
	}{
		{
			name: "annotated",
			src:  "declare const obj: { prop: string };\nobj.prop;\n",
			expr: "obj",
			want: "{ prop: string; }",
		},
		{
			name: "nullable",
			src:  "declare const obj: { prop: string } | null;\nobj?.prop;\n",
			expr: "obj",
			want: "{ prop: string; } | null",
		},
		{
			name: "short_circuit",
			src:  "declare const obj: { prop: string } | null;\nobj?.prop;\n",
			expr: "obj?.prop",
			want: "string | undefined",
		},
		{
			name: "const_literal",
			src:  "const str = 'a';\nstr;\n",
			expr: "str",
			want: `"a"`,
		},
		{
			name: "let_widened",
			src:  "let n = 1;\nn;\n",
			expr: "n",
			want: "number",
		},
		{
			name: "optional_param",
			src:  "function f(p?: string) {\n  p;\n}\n",
			expr: "p",
			want: "string | undefined",
		},
		{
			name: "function_result",
			src:  "function getObj(): { prop: string } {\n  return { prop: '' };\n}\ngetObj();\n",
			expr: "getObj()",
			want: "{ prop: string; }",
		},
		{
			name: "alias",
			src:  "type Obj = { prop: string };\ndeclare const o: Obj;\no.prop;\n",
			expr: "o.prop",
			want: "string",
		},
		{
			name: "interface_method",
			src:  "interface I { m(): number }\ndeclare const i: I;\ni.m();\n",
			expr: "i.m()",
			want: "number",
		},
		{
			name: "coalesce",
			src:  "declare const s: string | null;\nconst x = s ?? 1;\n",
			expr: "s ?? 1",
			want: "string | 1",
		},
		{
			name: "non_null",
			src:  "declare const s: string | undefined;\ns!;\n",
			expr: "s!",
			want: "string",
		},
		{
			name: "as",
			src:  "declare const v: unknown;\nconst x = v as number;\n",
			expr: "v as number",
			want: "number",
		},
		{
			name: "object_literal",
			src:  "const o = { a: 1, b: 'x' };\no;\n",
			expr: "o",
			want: "{ a: number; b: string; }",
		},
		{
			name: "array",
			src:  "declare const xs: Array<string | null>;\nxs[0];\n",
			expr: "xs[0]",
			want: "string | null",
		},
		{
			name: "record",
			src:  "declare const r: Record<string, number>;\nr.k;\n",
			expr: "r.k",
			want: "number",
		},
		{
			name: "class",
			src:  "class C { prop: string = ''; }\nconst c = new C();\nc.prop;\n",
			expr: "c.prop",
			want: "string",
		},
		{
			name: "arrow",
			src:  "const fn = () => 'x';\nfn();\n",
			expr: "fn()",
			want: `"x"`,
		},
		{
			name: "builtin",
			src:  "const d = new Date();\nd;\n",
			expr: "d",
			want: "Date",
		},
		{
			name: "any",
			src:  "declare const a: any;\na.b;\n",
			expr: "a.b",
			want: "any",
		},
		{
			name: "undeclared",
			src:  "missing.prop;\n",
			expr: "missing",
		},
		{
			name: "generic_param",
			src:  "function f<T>(v: T) {\n  v;\n}\n",
			expr: "v",
		},
		{
			name: "unannotated_param",
			src:  "function f(v) {\n  v;\n}\n",
			expr: "v",
		},
		{
			name: "self_reference",
			src:  "const a = a;\n",
			expr: "a",
		},
		{
			name: "shadowing_type_param",
			src:  "type T = { a: string };\nfunction f<T>(x: T) {\n  x;\n}\n",
			expr: "x",
		},
		{
			name: "shadowing_destructured",
			src:  "declare const a: string;\nfunction f(o: { a?: string }) {\n  const { a } = o;\n  a;\n}\n",
			expr: "a",
		},
		{
			name: "overloaded_function",
			src:  "function f(): string;\nfunction f(x: number): string | undefined;\nfunction f(x?: number) {\n  return undefined;\n}\nf(1);\n",
			expr: "f(1)",
		},
		{
			name: "overloaded_method",
			src:  "interface I { m(): string; m(x: number): string | undefined }\ndeclare const i: I;\ni.m(1);\n",
			expr: "i.m(1)",
		},
		{
			name: "imported_type",
			src:  "import type { Date } from './date';\ndeclare const d: Date;\nd;\n",
			expr: "d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, f := testsource.Parse(t, tt.src)
			info := testsource.Check(t, f)

			typ, ok := info.TypeOf(testsource.Find(t, f, tt.expr))

			if tt.want == "" {
				if ok {
					t.Errorf("Got type %s, want unresolved", info.TypeString(typ))
				}

				return
			}

			if !ok {
				t.Fatalf("Type of %q unresolved, want %s", tt.expr, tt.want)
			}

			if got := info.TypeString(typ); got != tt.want {
				t.Errorf("Got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStrictNullChecks(t *testing.T) {
	t.Parallel()

	_, f := testsource.Parse(t, "const a = 1;\n")

	if !testsource.Check(t, f).StrictNullChecks() {
		t.Error("Expected strict null checks")
	}
}

func TestUncheckedIndexedAccess(t *testing.T) {
	t.Parallel()

	const src = "declare const xs: string[];\ndeclare const r: Record<string, number>;\n" +
		"declare const o: { a: string };\nxs[0];\nr.k;\no.a;\n"

	tests := [...]struct {
		expr    string
		checked string
		want    string
	}{
		{"xs[0]", "string", "string | undefined"},
		{"r.k", "number", "number | undefined"},
		{"o.a", "string", "string"},
	}

	_, f := testsource.Parse(t, src)

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			n := testsource.Find(t, f, tt.expr)

			for _, c := range [...]struct {
				info *Info
				want string
			}{
				{New(f, true), tt.checked},
				{New(f, true, WithUncheckedIndexedAccess(true)), tt.want},
			} {
				typ, ok := c.info.TypeOf(n)
				if !ok {
					t.Fatalf("Type of %q unresolved", tt.expr)
				}

				if got := c.info.TypeString(typ); got != c.want {
					t.Errorf("Got %s, want %s", got, c.want)
				}
			}
		})
	}
}
