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

// Package lint runs the nullishguard rule over TypeScript files on disk.
package lint

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"sync"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/nullishguard/internal/fix"
	"fillmore-labs.com/nullishguard/internal/run"
	"fillmore-labs.com/nullishguard/internal/syntax"
	"fillmore-labs.com/nullishguard/internal/typeinfo"
)

// DefaultMaxPasses bounds the fixed-point loop of [Linter.Fix].
const DefaultMaxPasses = 10

// ErrParse is returned for sources with syntax errors.
var ErrParse = errors.New("syntax error")

// Diagnostic is a finding with resolved positions.
type Diagnostic struct {
	Pos, End token.Position
	Category string
	Message  string
	Fixable  bool
}

// Result is the outcome of linting or fixing one file.
type Result struct {
	Path        string
	Src         []byte // final source, after fixes
	Diagnostics []Diagnostic
	Passes      int              // fix passes that changed the source
	Applied     int              // number of applied fixes
	Skipped     []fix.SkippedFix // fixes skipped in the last pass
	Changed     bool
}

// Linter lints TypeScript files. The zero value is not usable, use [New].
type Linter struct {
	options *run.Options

	// MaxPasses bounds the number of fix passes per file.
	MaxPasses int

	// Concurrency bounds the number of files processed in parallel, GOMAXPROCS when <= 0.
	Concurrency int

	// TSConfig is an explicit project configuration, overriding discovery.
	TSConfig string

	mu      sync.Mutex
	configs map[string]cachedProject
}

// project holds the compiler options relevant for a source file.
type project struct {
	strict         bool
	uncheckedIndex bool
}

type cachedProject struct {
	project
	err error
}

// New creates a [Linter] applying opts.
func New(opts *run.Options) *Linter {
	if opts == nil {
		opts = run.DefaultOptions()
	}

	return &Linter{
		options:   opts,
		MaxPasses: DefaultMaxPasses,
		configs:   make(map[string]cachedProject),
	}
}

// Lint runs a single pass of the rule over src.
func (l *Linter) Lint(ctx context.Context, path string, src []byte) (*Result, error) {
	proj, err := l.compilerOptions(path)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	_, diagnostics, err := l.pass(ctx, fset, path, src, proj)
	if err != nil {
		return nil, err
	}

	return &Result{Path: path, Src: src, Diagnostics: resolve(fset, diagnostics)}, nil
}

// Analyze runs a single pass of the rule over src, adding the file to fset.
// Diagnostic positions refer to fset.
func (l *Linter) Analyze(ctx context.Context, fset *token.FileSet, path string, src []byte) ([]analysis.Diagnostic, error) {
	proj, err := l.compilerOptions(path)
	if err != nil {
		return nil, err
	}

	_, diagnostics, err := l.pass(ctx, fset, path, src, proj)

	return diagnostics, err
}

// Fix applies fixes to src until no fixable diagnostic remains, or [Linter.MaxPasses] passes are done.
// Fixes whose output does not parse cleanly are dropped from the pass.
func (l *Linter) Fix(ctx context.Context, path string, src []byte) (*Result, error) {
	proj, err := l.compilerOptions(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: path, Src: src}

	maxPasses := l.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, diagnostics, err := l.pass(ctx, token.NewFileSet(), path, result.Src, proj)
		if err != nil {
			return nil, err
		}

		fixes, err := fix.FromDiagnostics(f.Tok, diagnostics)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		if len(fixes) == 0 {
			break
		}

		applied, err := applyParsing(ctx, path, result.Src, fixes)
		result.Skipped = applied.Skipped

		if errors.Is(err, fix.ErrNoFixes) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		result.Src = applied.Src
		result.Applied += applied.Applied
		result.Passes++
		result.Changed = true
	}

	fset := token.NewFileSet()

	_, diagnostics, err := l.pass(ctx, fset, path, result.Src, proj)
	if err != nil {
		return nil, err
	}

	result.Diagnostics = resolve(fset, diagnostics)

	return result, nil
}

// reasonUnparsable is recorded for fixes whose output does not parse.
const reasonUnparsable = "fixed source does not parse"

// applyParsing applies fixes to src, dropping those that break the syntax.
func applyParsing(ctx context.Context, path string, src []byte, fixes []fix.Fix) (*fix.Result, error) {
	applied, err := fix.Apply(src, fixes)
	if err != nil || parsesCleanly(ctx, path, applied.Src) {
		return applied, err
	}

	var (
		kept    []fix.Fix
		skipped []fix.SkippedFix
	)

	for _, f := range fixes {
		single, err := fix.Apply(src, []fix.Fix{f})
		if err == nil && parsesCleanly(ctx, path, single.Src) {
			kept = append(kept, f)

			continue
		}

		skipped = append(skipped, fix.SkippedFix{Message: f.Message, Reason: reasonUnparsable})
	}

	if len(kept) > 0 {
		applied, err = fix.Apply(src, kept)
		if err == nil && parsesCleanly(ctx, path, applied.Src) {
			applied.Skipped = append(skipped, applied.Skipped...)

			return applied, nil
		}
	}

	// the fixes only break the syntax in combination
	return &fix.Result{
		Src:     src,
		Skipped: append(skipped, fix.SkippedFix{Reason: reasonUnparsable}),
	}, fix.ErrNoFixes
}

// pass parses src and runs the rule once.
func (l *Linter) pass(ctx context.Context, fset *token.FileSet, path string, src []byte, proj project) (*syntax.File, []analysis.Diagnostic, error) {
	f, err := syntax.ParseFile(ctx, fset, path, src)
	if err != nil {
		return nil, nil, err
	}

	if f.HasErrors {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrParse)
	}

	var diagnostics []analysis.Diagnostic

	l.options.Run(ctx, &run.Pass{
		File:    f,
		Checker: typeinfo.New(f, proj.strict, typeinfo.WithUncheckedIndexedAccess(proj.uncheckedIndex)),
		Report:  func(d analysis.Diagnostic) { diagnostics = append(diagnostics, d) },
	})

	return f, diagnostics, nil
}

func parsesCleanly(ctx context.Context, path string, src []byte) bool {
	f, err := syntax.ParseFile(ctx, token.NewFileSet(), path, src)

	return err == nil && !f.HasErrors
}

func resolve(fset *token.FileSet, diagnostics []analysis.Diagnostic) []Diagnostic {
	if len(diagnostics) == 0 {
		return nil
	}

	result := make([]Diagnostic, 0, len(diagnostics))

	for _, d := range diagnostics {
		end := d.End
		if !end.IsValid() {
			end = d.Pos
		}

		result = append(result, Diagnostic{
			Pos:      fset.PositionFor(d.Pos, false),
			End:      fset.PositionFor(end, false),
			Category: d.Category,
			Message:  d.Message,
			Fixable:  len(d.SuggestedFixes) > 0,
		})
	}

	return result
}
