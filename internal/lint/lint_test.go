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

package lint_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	. "fillmore-labs.com/nullishguard/internal/lint"
	"fillmore-labs.com/nullishguard/internal/run"
)

const strictConfig = `{ "compilerOptions": { "strict": true } }`

func project(tb testing.TB, config string, files map[string]string) string {
	tb.Helper()

	dir := tb.TempDir()
	if config != "" {
		files["tsconfig.json"] = config
	}

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			tb.Fatal(err)
		}
	}

	return dir
}

func TestFixArchives(t *testing.T) {
	t.Parallel()

	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}

	if len(archives) == 0 {
		t.Fatal("No test archives found")
	}

	for _, name := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(name), ".txtar"), func(t *testing.T) {
			t.Parallel()

			ar, err := txtar.ParseFile(name)
			if err != nil {
				t.Fatal(err)
			}

			files := make(map[string]string, len(ar.Files))
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}

			dir := project(t, strictConfig, map[string]string{"input.ts": files["input.ts"]})
			path := filepath.Join(dir, "input.ts")

			l := New(run.DefaultOptions())

			r, err := l.Fix(t.Context(), path, []byte(files["input.ts"]))
			if err != nil {
				t.Fatalf("Fix failed: %v", err)
			}

			if got, want := string(r.Src), files["want.ts"]; got != want {
				t.Errorf("Got:\n%s\nwant:\n%s", got, want)
			}

			if got, want := r.Passes, wantPasses(t, ar.Comment); got != want {
				t.Errorf("Got %d passes, want %d", got, want)
			}

			for _, d := range r.Diagnostics {
				if d.Fixable {
					t.Errorf("Fixable diagnostic remains: %s", d.Message)
				}
			}

			again, err := l.Fix(t.Context(), path, r.Src)
			if err != nil {
				t.Fatalf("Fix failed: %v", err)
			}

			if again.Changed {
				t.Errorf("Fix is not idempotent, got:\n%s", again.Src)
			}
		})
	}
}

func wantPasses(tb testing.TB, comment []byte) int {
	tb.Helper()

	for line := range strings.SplitSeq(string(comment), "\n") {
		if rest, ok := strings.CutPrefix(line, "passes: "); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				tb.Fatal(err)
			}

			return n
		}
	}

	tb.Fatal("Archive comment has no passes line")

	return 0
}

func TestLint(t *testing.T) {
	t.Parallel()

	const src = "declare const obj: { prop: string };\nconst v = obj?.prop;\n"

	dir := project(t, strictConfig, map[string]string{})

	r, err := New(nil).Lint(t.Context(), filepath.Join(dir, "a.ts"), []byte(src))
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if len(r.Diagnostics) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(r.Diagnostics))
	}

	d := r.Diagnostics[0]
	if d.Category != "unnecessary-optional-chain" || !d.Fixable {
		t.Errorf("Got %+v, want fixable unnecessary-optional-chain", d)
	}

	if d.Pos.Line != 2 || d.Pos.Column != 11 {
		t.Errorf("Got position %d:%d, want 2:11", d.Pos.Line, d.Pos.Column)
	}
}

func TestLintWithoutStrictNullChecks(t *testing.T) {
	t.Parallel()

	const src = "declare const obj: { prop: string };\nconst v = obj?.prop;\n"

	tests := [...]struct {
		name   string
		config string
	}{
		{"no_config", ""},
		{"strict_off", `{ "compilerOptions": { "strict": true, "strictNullChecks": false } }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := project(t, tt.config, map[string]string{})

			l := New(nil)
			if tt.config == "" {
				// an empty configuration, discovery could find one above the temporary directory
				l.TSConfig = filepath.Join(dir, "empty.json")
				if err := os.WriteFile(l.TSConfig, []byte("{}"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			r, err := l.Lint(t.Context(), filepath.Join(dir, "a.ts"), []byte(src))
			if err != nil {
				t.Fatalf("Lint failed: %v", err)
			}

			if len(r.Diagnostics) != 1 || r.Diagnostics[0].Category != "requires-strict-null-checks" {
				t.Errorf("Got %+v, want a single requires-strict-null-checks diagnostic", r.Diagnostics)
			}
		})
	}
}

func TestLintSyntaxError(t *testing.T) {
	t.Parallel()

	dir := project(t, strictConfig, map[string]string{})

	_, err := New(nil).Lint(t.Context(), filepath.Join(dir, "a.ts"), []byte("const = ;\n"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("Got error %v, want %v", err, ErrParse)
	}
}

func TestFixMaxPasses(t *testing.T) {
	t.Parallel()

	const src = "declare const obj: { nested: { value: number } };\nconst v = obj?.nested?.value;\n"

	dir := project(t, strictConfig, map[string]string{})

	l := New(nil)
	l.MaxPasses = 1

	r, err := l.Fix(t.Context(), filepath.Join(dir, "a.ts"), []byte(src))
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}

	if r.Passes != 1 {
		t.Errorf("Got %d passes, want 1", r.Passes)
	}

	if len(r.Diagnostics) != 1 {
		t.Errorf("Got %d remaining diagnostics, want 1", len(r.Diagnostics))
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := project(t, strictConfig, map[string]string{
		"src/a.ts":                  "declare const s: string;\nconst x = s ?? '';\n",
		"src/b.tsx":                 "declare const s: string | null;\nconst x = s ?? '';\n",
		"src/types.d.ts":            "declare const s: string;\nconst x = s ?? '';\n",
		"node_modules/dep/index.ts": "declare const s: string;\nconst x = s ?? '';\n",
		"src/readme.md":             "s ?? ''",
	})

	l := New(nil)
	l.Concurrency = 2

	results, err := l.Run(t.Context(), []string{dir}, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Got %d results, want 2", len(results))
	}

	if got, want := filepath.Base(results[0].Path), "a.ts"; got != want {
		t.Errorf("Got first file %q, want %q", got, want)
	}

	content, err := os.ReadFile(filepath.Join(dir, "src", "a.ts"))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(content), "declare const s: string;\nconst x = s;\n"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}

	if results[1].Changed {
		t.Errorf("Got %s changed, want unchanged", results[1].Path)
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	dir := project(t, "", map[string]string{
		"b.ts":              "",
		"a.mts":             "",
		"c.d.ts":            "",
		".cache/d.ts":       "",
		"node_modules/e.ts": "",
	})

	files, err := Expand([]string{dir, filepath.Join(dir, "c.d.ts")})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	want := []string{filepath.Join(dir, "a.mts"), filepath.Join(dir, "b.ts"), filepath.Join(dir, "c.d.ts")}
	if len(files) != len(want) {
		t.Fatalf("Got %v, want %v", files, want)
	}

	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Got %q at %d, want %q", files[i], i, want[i])
		}
	}
}
