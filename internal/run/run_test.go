// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package run_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/nullishguard/internal/config"
	. "fillmore-labs.com/nullishguard/internal/run"
	"fillmore-labs.com/nullishguard/internal/syntax"
	"fillmore-labs.com/nullishguard/internal/testsource"
	"fillmore-labs.com/nullishguard/internal/typeinfo"
)

type finding struct {
	Category string
	Text     string // source text of the diagnostic span
	Fixed    string // source after applying the fix, empty without fix
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want []finding
	}{
		{
			name: "non_nullable_member",
			src:  "declare const obj: { prop: string };\nobj?.prop;\n",
			want: []finding{{
				"unnecessary-optional-chain", "obj?.prop",
				"declare const obj: { prop: string };\nobj.prop;\n",
			}},
		},
		{
			name: "nullable_member",
			src:  "declare const obj: { prop: string } | null;\nobj?.prop;\n",
		},
		{
			name: "any",
			src:  "declare const anyValue: any;\nanyValue?.prop;\n",
		},
		{
			name: "coalesce",
			src:  "declare const str: string;\nconst x = str ?? 'fallback';\n",
			want: []finding{{
				"unnecessary-nullish-coalesce", "str ?? 'fallback'",
				"declare const str: string;\nconst x = str;\n",
			}},
		},
		{
			name: "nullable_coalesce",
			src:  "declare const str: string | undefined;\nconst x = str ?? 'fallback';\n",
		},
		{
			name: "nested_chain",
			src:  "declare const obj: { nested: { value: number } };\nobj?.nested?.value;\n",
			want: []finding{{
				"unnecessary-optional-chain", "obj?.nested",
				"declare const obj: { nested: { value: number } };\nobj.nested?.value;\n",
			}},
		},
		{
			name: "call_result",
			src:  "function getObj(): { prop: string } {\n  return { prop: 'x' };\n}\ngetObj()?.prop;\n",
			want: []finding{{
				"unnecessary-optional-chain", "getObj()?.prop",
				"function getObj(): { prop: string } {\n  return { prop: 'x' };\n}\ngetObj().prop;\n",
			}},
		},
		{
			name: "optional_call",
			src:  "declare const fn: () => void;\nfn?.();\n",
			want: []finding{{
				"unnecessary-optional-chain", "fn?.()",
				"declare const fn: () => void;\nfn();\n",
			}},
		},
		{
			name: "chain_in_argument",
			src:  "declare const a: { b: string };\ndeclare function f(x: string | undefined): void;\nf(a?.b);\n",
			want: []finding{{
				"unnecessary-optional-chain", "a?.b",
				"declare const a: { b: string };\ndeclare function f(x: string | undefined): void;\nf(a.b);\n",
			}},
		},
		{
			name: "nolint_line",
			src:  "declare const obj: { prop: string };\nobj?.prop; // nolint:nullishguard\n",
		},
		{
			name: "nolint_file",
			src:  "//nolint:nullishguard\ndeclare const obj: { prop: string };\nobj?.prop;\n",
		},
		{
			name: "generated",
			src:  "// Code generated by hand. DO NOT EDIT.\ndeclare const obj: { prop: string };\nobj?.prop;\n",
		},
		{
			name: "integer_literal",
			src:  "1?.toString();\n",
			want: []finding{{
				"unnecessary-optional-chain", "1?.toString",
				"1..toString();\n",
			}},
		},
		{
			name: "annotated_shadow",
			src:  "declare const a: string | undefined;\nfunction f(a: string) {\n  return a ?? 'd';\n}\n",
			want: []finding{{
				"unnecessary-nullish-coalesce", "a ?? 'd'",
				"declare const a: string | undefined;\nfunction f(a: string) {\n  return a;\n}\n",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, f := testsource.Parse(t, tt.src)

			got := run(t, DefaultOptions(), f, testsource.Check(t, f))

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestShadowedBindings checks that bindings without tracked types hide outer declarations
// of the same name instead of borrowing their types.
func TestShadowedBindings(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
	}{
		{
			name: "object_pattern",
			src:  "declare const a: string;\nfunction f(o: { a?: string }) {\n  const { a } = o;\n  return a ?? 'd';\n}\n",
		},
		{
			name: "renamed_property",
			src:  "declare const a: string;\nfunction f(o: { b?: string }) {\n  const { b: a } = o;\n  return a ?? 'd';\n}\n",
		},
		{
			name: "array_pattern",
			src:  "declare const a: string;\nfunction f(xs: (string | undefined)[]) {\n  const [, a] = xs;\n  return a ?? 'd';\n}\n",
		},
		{
			name: "destructured_param",
			src:  "declare const a: string;\nfunction f({ a }: { a?: string }) {\n  return a ?? 'd';\n}\n",
		},
		{
			name: "param_default",
			src:  "declare const a: string;\nfunction f({ a = undefined }: { a?: string }) {\n  return a ?? 'd';\n}\n",
		},
		{
			name: "arrow_param",
			src:  "declare const a: string;\nconst f = ([a]: (string | undefined)[]) => a ?? 'd';\n",
		},
		{
			name: "for_of",
			src:  "declare const a: string;\ndeclare const xs: (string | undefined)[];\nfor (const a of xs) {\n  a ?? 'd';\n}\n",
		},
		{
			name: "for_of_pattern",
			src:  "declare const a: string;\ndeclare const xs: [string | undefined][];\nfor (const [a] of xs) {\n  a ?? 'd';\n}\n",
		},
		{
			name: "catch",
			src:  "declare const e: string;\ntry {\n  e.length;\n} catch (e) {\n  e ?? 'd';\n}\n",
		},
		{
			name: "catch_pattern",
			src:  "declare const message: string;\ntry {\n} catch ({ message }) {\n  message ?? 'd';\n}\n",
		},
		{
			name: "import",
			src:  "import { JSON } from './json';\nJSON ?? 'd';\n",
		},
		{
			name: "import_type",
			src:  "import type { Date } from './date';\ndeclare const d: Date;\nd ?? 'd';\n",
		},
		{
			name: "type_param",
			src:  "type T = { a: string };\nfunction f<T>(x: T) {\n  return x ?? 'd';\n}\n",
		},
		{
			name: "arrow_type_param",
			src:  "type T = string;\nconst f = <T>(x: T) => x ?? 'd';\n",
		},
		{
			name: "method_type_param",
			src:  "type T = string;\nclass C {\n  m<T>(x: T) {\n    return x ?? 'd';\n  }\n}\n",
		},
		{
			name: "class_type_param",
			src:  "type T = string;\nclass Box<T> {\n  m(x: T) {\n    return x ?? 'd';\n  }\n}\n",
		},
		{
			name: "overloads",
			src: "function f(): string;\nfunction f(x: number): string | undefined;\n" +
				"function f(x?: number): string | undefined {\n  return x === undefined ? '' : undefined;\n}\nf(1) ?? 'd';\n",
		},
		{
			name: "overloaded_method",
			src:  "declare const o: { m(): string; m(x: number): string | undefined };\no.m(1) ?? 'd';\n",
		},
		{
			name: "cyclic_alias",
			src:  "type A = A;\ndeclare const a: A;\na ?? 'd';\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, f := testsource.Parse(t, tt.src)

			if got := run(t, DefaultOptions(), f, testsource.Check(t, f)); len(got) != 0 {
				t.Errorf("Got %+v, want no findings", got)
			}
		})
	}
}

func TestRequiresStrictNullChecks(t *testing.T) {
	t.Parallel()

	const src = "declare const obj: { prop: string };\nobj?.prop;\nconst x = obj ?? 1;\n"

	_, f := testsource.Parse(t, src)

	tests := [...]struct {
		name    string
		checker *typeinfo.Info
	}{
		{"strict_off", typeinfo.New(f, false)},
		{"no_session", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var diagnostics []analysis.Diagnostic

			p := &Pass{File: f, Report: func(d analysis.Diagnostic) { diagnostics = append(diagnostics, d) }}
			if tt.checker != nil {
				p.Checker = tt.checker
			}

			DefaultOptions().Run(t.Context(), p)

			if len(diagnostics) != 1 {
				t.Fatalf("Got %d diagnostics, want 1", len(diagnostics))
			}

			if got, want := diagnostics[0].Category, "requires-strict-null-checks"; got != want {
				t.Errorf("Got category %q, want %q", got, want)
			}

			if got, want := diagnostics[0].Pos, f.Start(); got != want {
				t.Errorf("Got position %d, want %d", got, want)
			}
		})
	}
}

func TestDisabledChecks(t *testing.T) {
	t.Parallel()

	const src = "declare const obj: { prop: string };\nobj?.prop;\nconst x = obj ?? 1;\n"

	_, f := testsource.Parse(t, src)

	opts := DefaultOptions()
	opts.Checks.Disable(config.OptionalChainCheck)

	got := run(t, opts, f, testsource.Check(t, f))

	if len(got) != 1 || got[0].Category != "unnecessary-nullish-coalesce" {
		t.Errorf("Got %v, want only the nullish coalescing finding", got)
	}
}

func TestIncludeGenerated(t *testing.T) {
	t.Parallel()

	const src = "// @generated\ndeclare const obj: { prop: string };\nobj?.prop;\n"

	_, f := testsource.Parse(t, src)

	opts := DefaultOptions()
	opts.Behavior.Enable(config.IncludeGenerated)

	if got := run(t, opts, f, testsource.Check(t, f)); len(got) != 1 {
		t.Errorf("Got %d findings, want 1", len(got))
	}
}

func run(tb testing.TB, opts *Options, f *syntax.File, info *typeinfo.Info) []finding {
	tb.Helper()

	var got []finding

	opts.Run(tb.Context(), &Pass{
		File:    f,
		Checker: info,
		Report: func(d analysis.Diagnostic) {
			fd := finding{Category: d.Category, Text: f.Text(analysisRange(d))}

			if len(d.SuggestedFixes) > 0 {
				fd.Fixed = apply(tb, f, d.SuggestedFixes[0].TextEdits)
			}

			got = append(got, fd)
		},
	})

	return got
}

func analysisRange(d analysis.Diagnostic) syntax.Span {
	return syntax.Span{From: d.Pos, To: d.End}
}

func apply(tb testing.TB, f *syntax.File, edits []analysis.TextEdit) string {
	tb.Helper()

	src := string(f.Src)

	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		start, end := f.Offset(e.Pos), f.Offset(e.End)

		if start < 0 || end < start {
			tb.Fatalf("Invalid edit %v", e)
		}

		src = src[:start] + string(e.NewText) + src[end:]
	}

	return src
}
