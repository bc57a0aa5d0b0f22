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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fillmore-labs.com/nullishguard/internal/diagfmt"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	strictConfig = `{ "compilerOptions": { "strict": true } }`
	unfixed      = "declare const obj: { nested: { value: number } };\nconst v = obj?.nested?.value ?? 0;\n"
	fixed        = "declare const obj: { nested: { value: number } };\nconst v = obj.nested.value;\n"
)

func project(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Execute(t.Context(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestLintJSON(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"tsconfig.json": strictConfig, "src/app.ts": unfixed})

	code, stdout, _ := runCLI(t, "--format", "json", "--color", "off", dir)
	assert.Equal(t, exitDiagnostics, code)

	var out diagfmt.Output
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	// the coalescing and the inner link, the outer link waits for the next pass
	require.Equal(t, 2, out.Count)

	categories := make([]string, 0, len(out.Diagnostics))
	for _, d := range out.Diagnostics {
		categories = append(categories, d.Category)
		assert.True(t, d.Fixable)
		assert.EqualValues(t, 2, d.Location.StartLine)
		assert.EqualValues(t, 11, d.Location.StartCol)
	}

	assert.ElementsMatch(t, []string{"unnecessary-optional-chain", "unnecessary-nullish-coalesce"}, categories)
}

func TestFix(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"tsconfig.json": strictConfig, "src/app.ts": unfixed})

	code, stdout, stderr := runCLI(t, "--fix", "--color", "off", dir)
	assert.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t, fixed, string(content))

	code, _, _ = runCLI(t, "--color", "off", dir)
	assert.Equal(t, exitOK, code)
}

func TestPretty(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"tsconfig.json": strictConfig, "app.ts": unfixed})

	code, stdout, _ := runCLI(t, "--color", "off", "--nullish-coalesce=false", filepath.Join(dir, "app.ts"))
	assert.Equal(t, exitDiagnostics, code)
	assert.Contains(t, stdout, "app.ts:2:11: unnecessary-optional-chain: Unnecessary optional chain")
	assert.Contains(t, stdout, "1 problem (1 fixable)")
	assert.NotContains(t, stdout, "unnecessary-nullish-coalesce")
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{
		"tsconfig.json":     strictConfig,
		"app.ts":            unfixed,
		"nullishguard.yaml": "optional-chain: false\nformat: json\ncolor: off\n",
	})

	code, stdout, _ := runCLI(t, "--config", filepath.Join(dir, "nullishguard.yaml"), dir)
	assert.Equal(t, exitDiagnostics, code)

	var out diagfmt.Output
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "unnecessary-nullish-coalesce", out.Diagnostics[0].Category)
}

func TestExplicitTSConfig(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "strict": false } }`,
		"strict.json":   `{ "extends": "./tsconfig.json", "compilerOptions": { "strictNullChecks": true } }`,
		"app.ts":        unfixed,
	})

	code, stdout, _ := runCLI(t, "--format", "json", dir)
	assert.Equal(t, exitDiagnostics, code)
	assert.Contains(t, stdout, "requires-strict-null-checks")

	code, stdout, _ = runCLI(t, "--format", "json", "--tsconfig", filepath.Join(dir, "strict.json"), dir)
	assert.Equal(t, exitDiagnostics, code)
	assert.NotContains(t, stdout, "requires-strict-null-checks")
}

func TestEnvironment(t *testing.T) {
	dir := project(t, map[string]string{"tsconfig.json": strictConfig, "app.ts": unfixed})

	t.Setenv("NULLISHGUARD_FORMAT", "json")
	t.Setenv("NULLISHGUARD_OPTIONAL_CHAIN", "false")

	code, stdout, _ := runCLI(t, "--color", "off", dir)
	assert.Equal(t, exitDiagnostics, code)

	var out diagfmt.Output
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "unnecessary-nullish-coalesce", out.Diagnostics[0].Category)

	// flags take precedence over the environment
	code, stdout, _ = runCLI(t, "--format", "pretty", "--color", "off", dir)
	assert.Equal(t, exitDiagnostics, code)
	assert.Contains(t, stdout, "1 problem (1 fixable)")
}

func TestErrors(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"tsconfig.json": strictConfig, "app.ts": "const = ;\n"})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"--format", "xml", dir}, "unknown format"},
		{"color", []string{"--color", "sometimes", dir}, "unknown color mode"},
		{"missing", []string{filepath.Join(dir, "missing.ts")}, "no such file"},
		{"syntax", []string{dir}, "syntax error"},
		{"config", []string{"--config", filepath.Join(dir, "missing.yaml"), dir}, "config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, exitError, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}
