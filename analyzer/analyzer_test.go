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

package analyzer_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/nullishguard/analyzer"
	"fillmore-labs.com/nullishguard/internal/fix"
)

const source = "declare const obj: { nested: { value: number } };\n" +
	"const v = obj?.nested?.value;\n" +
	"declare const s: string;\n" +
	"const t = s ?? '';\n"

func setup(tb testing.TB, files map[string]string) (string, *token.FileSet, *ast.File) {
	tb.Helper()

	dir := tb.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			tb.Fatal(err)
		}
	}

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filepath.Join(dir, "embed.go"), "package web\n", parser.SkipObjectResolution)
	if err != nil {
		tb.Fatal(err)
	}

	return dir, fset, f
}

func runAnalyzer(tb testing.TB, a *analysis.Analyzer, fset *token.FileSet, f *ast.File, pkgName string) []analysis.Diagnostic {
	tb.Helper()

	var diagnostics []analysis.Diagnostic

	p := &analysis.Pass{
		Analyzer: a,
		Fset:     fset,
		Files:    []*ast.File{f},
		Pkg:      types.NewPackage("example.com/web", pkgName),
		Report:   func(d analysis.Diagnostic) { diagnostics = append(diagnostics, d) },
	}

	if _, err := a.Run(p); err != nil {
		tb.Fatalf("Run failed: %v", err)
	}

	return diagnostics
}

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options Option
		want    []string
		fixed   string
	}{
		{
			name: "Default",
			want: []string{"unnecessary-optional-chain", "unnecessary-nullish-coalesce"},
			fixed: "declare const obj: { nested: { value: number } };\n" +
				"const v = obj.nested?.value;\n" +
				"declare const s: string;\n" +
				"const t = s;\n",
		},
		{
			name:    "OptionalChainOnly",
			options: WithNullishCoalesce(false),
			want:    []string{"unnecessary-optional-chain"},
			fixed: "declare const obj: { nested: { value: number } };\n" +
				"const v = obj.nested?.value;\n" +
				"declare const s: string;\n" +
				"const t = s ?? '';\n",
		},
		{
			name:    "Disabled",
			options: Options{WithOptionalChain(false), WithNullishCoalesce(false)},
			fixed:   source,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir, fset, f := setup(t, map[string]string{
				"tsconfig.json": `{"compilerOptions": {"strict": true}}`,
				"app.ts":        source,
				"app.d.ts":      source,
			})

			diagnostics := runAnalyzer(t, New(tt.options), fset, f, "web")

			if len(diagnostics) != len(tt.want) {
				t.Fatalf("Got %d diagnostics, want %d", len(diagnostics), len(tt.want))
			}

			for i, d := range diagnostics {
				if d.Category != tt.want[i] {
					t.Errorf("Got category %q, want %q", d.Category, tt.want[i])
				}

				if got, want := fset.Position(d.Pos).Filename, filepath.Join(dir, "app.ts"); got != want {
					t.Errorf("Got file %q, want %q", got, want)
				}
			}

			if len(diagnostics) == 0 {
				return
			}

			fixes, err := fix.FromDiagnostics(fset.File(diagnostics[0].Pos), diagnostics)
			if err != nil {
				t.Fatalf("FromDiagnostics failed: %v", err)
			}

			r, err := fix.Apply([]byte(source), fixes)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			if got := string(r.Src); got != tt.fixed {
				t.Errorf("Got:\n%s\nwant:\n%s", got, tt.fixed)
			}
		})
	}
}

func TestAnalyzerTSConfig(t *testing.T) {
	t.Parallel()

	dir, fset, f := setup(t, map[string]string{
		"tsconfig.json": `{"compilerOptions": {"strict": false}}`,
		"strict.json":   `{"compilerOptions": {"strictNullChecks": true}}`,
		"app.ts":        source,
	})

	diagnostics := runAnalyzer(t, New(), fset, f, "web")
	if len(diagnostics) != 1 || diagnostics[0].Category != "requires-strict-null-checks" {
		t.Errorf("Got %v, want a single requires-strict-null-checks diagnostic", diagnostics)
	}

	diagnostics = runAnalyzer(t, New(WithTSConfig(filepath.Join(dir, "strict.json"))), fset, f, "web")
	if len(diagnostics) != 2 {
		t.Errorf("Got %d diagnostics, want 2", len(diagnostics))
	}
}

func TestAnalyzerSkipsExternalTests(t *testing.T) {
	t.Parallel()

	_, fset, f := setup(t, map[string]string{
		"tsconfig.json": `{"compilerOptions": {"strict": true}}`,
		"app.ts":        source,
	})

	if diagnostics := runAnalyzer(t, New(), fset, f, "web_test"); len(diagnostics) != 0 {
		t.Errorf("Got %d diagnostics, want none", len(diagnostics))
	}
}

func TestAnalyzerFlags(t *testing.T) {
	t.Parallel()

	a := New()

	for _, name := range []string{"generated", "optional-chain", "nullish-coalesce", "tsconfig"} {
		if a.Flags.Lookup(name) == nil {
			t.Errorf("Flag %q not registered", name)
		}
	}

	if err := a.Flags.Parse([]string{"-nullish-coalesce=false"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := a.Flags.Lookup("nullish-coalesce").Value.String(); got != "false" {
		t.Errorf("Got %q, want false", got)
	}
}
