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

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/trace"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/nullishguard/internal/lint"
	"fillmore-labs.com/nullishguard/internal/syntax"
)

// ErrNoPackageFiles is returned when a pass carries no file to locate the package directory.
var ErrNoPackageFiles = errors.New("package without files")

// run lints the TypeScript sources in the directories of the analyzed package.
func (r *runOptions) run(p *analysis.Pass) (any, error) {
	// external test packages share the directory of the package under test
	if p.Pkg != nil && strings.HasSuffix(p.Pkg.Name(), "_test") {
		return nil, nil
	}

	ctx, task := trace.NewTask(context.Background(), "NullishGuardAnalyzer")
	defer task.End()

	dirs := packageDirs(p)
	if len(dirs) == 0 {
		if len(p.Files) > 0 {
			return nil, fmt.Errorf("nullishguard: %w", ErrNoPackageFiles)
		}

		return nil, nil
	}

	l := lint.New(r.rule)
	l.TSConfig = r.tsconfig

	for _, dir := range dirs {
		sources, err := sourceFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("nullishguard: %w", err)
		}

		for _, path := range sources {
			src, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("nullishguard: %w", err)
			}

			diagnostics, err := l.Analyze(ctx, p.Fset, path, src)
			if errors.Is(err, lint.ErrParse) {
				// files with syntax errors are left to the TypeScript compiler
				trace.Log(ctx, "skip", path)

				continue
			}

			if err != nil {
				return nil, fmt.Errorf("nullishguard: %w", err)
			}

			for _, d := range diagnostics {
				p.Report(d)
			}
		}
	}

	return nil, nil
}

// packageDirs returns the sorted directories holding the package's files.
func packageDirs(p *analysis.Pass) []string {
	var dirs []string

	for _, f := range p.Files {
		if tf := p.Fset.File(f.Pos()); tf != nil {
			dirs = append(dirs, filepath.Dir(tf.Name()))
		}
	}

	for _, name := range slices.Concat(p.OtherFiles, p.IgnoredFiles) {
		dirs = append(dirs, filepath.Dir(name))
	}

	slices.Sort(dirs)

	return slices.Compact(dirs)
}

// sourceFiles lists the TypeScript sources directly in dir.
func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string

	for _, e := range entries {
		if e.Type().IsRegular() && syntax.IsSource(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	return files, nil
}
