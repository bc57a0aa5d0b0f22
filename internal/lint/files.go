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

package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/nullishguard/internal/fix"
	"fillmore-labs.com/nullishguard/internal/syntax"
	"fillmore-labs.com/nullishguard/internal/tsconfig"
)

// Run lints the TypeScript files named by paths, expanding directories. With write set,
// fixes are applied and changed files are written back. Results are in file order.
func (l *Linter) Run(ctx context.Context, paths []string, write bool) ([]*Result, error) {
	files, err := Expand(paths)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, nil
	}

	jobs := l.Concurrency
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			r, err := l.file(gctx, path, write)
			if err != nil {
				return err
			}

			results[i] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (l *Linter) file(ctx context.Context, path string, write bool) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !write {
		return l.Lint(ctx, path, src)
	}

	r, err := l.Fix(ctx, path, src)
	if err != nil {
		return nil, err
	}

	if r.Changed {
		if err := fix.WriteFile(path, r.Src); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Expand returns the TypeScript sources named by paths, walking directories. Declaration
// files and node_modules directories are skipped, explicitly named files are always included.
func Expand(paths []string) ([]string, error) {
	var files []string

	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("lint: %w", err)
		}

		if !info.IsDir() {
			add(filepath.Clean(root))

			continue
		}

		var dirFiles []string

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && (d.Name() == "node_modules" || d.Name()[0] == '.') {
					return filepath.SkipDir
				}

				return nil
			}

			if syntax.IsSource(path) {
				dirFiles = append(dirFiles, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("lint: walk %s: %w", root, err)
		}

		slices.Sort(dirFiles)

		for _, path := range dirFiles {
			add(path)
		}
	}

	return files, nil
}

// compilerOptions returns the effective compiler options for the source at path.
func (l *Linter) compilerOptions(path string) (project, error) {
	if l.TSConfig != "" {
		return l.cached(l.TSConfig, func() (project, error) { return load(l.TSConfig) })
	}

	dir := filepath.Dir(path)

	return l.cached(dir, func() (project, error) {
		cfg, err := tsconfig.Find(dir)
		if errors.Is(err, tsconfig.ErrNotFound) {
			return project{}, nil
		}

		if err != nil {
			return project{}, err
		}

		return load(cfg)
	})
}

func (l *Linter) cached(key string, compute func() (project, error)) (project, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.configs[key]; ok {
		return c.project, c.err
	}

	p, err := compute()
	l.configs[key] = cachedProject{project: p, err: err}

	return p, err
}

func load(path string) (project, error) {
	cfg, err := tsconfig.Load(path)
	if err != nil {
		return project{}, err
	}

	return project{
		strict:         cfg.CompilerOptions.StrictNullChecks(),
		uncheckedIndex: cfg.CompilerOptions.NoUncheckedIndexedAccess(),
	}, nil
}
