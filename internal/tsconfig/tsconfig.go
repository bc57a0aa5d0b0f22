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

// Package tsconfig loads the compiler options of TypeScript projects.
package tsconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/json-iterator/go"
)

// FileName is the name of TypeScript project configuration files.
const FileName = "tsconfig.json"

var (
	// ErrNotFound is returned when no configuration file exists in a directory or its parents.
	ErrNotFound = errors.New(FileName + " not found")

	// ErrExtendsCycle is returned when configuration files extend each other.
	ErrExtendsCycle = errors.New("cycle in extends")
)

// CompilerOptions are the compiler options relevant for nullability analysis.
type CompilerOptions struct {
	Strict         *bool `json:"strict,omitempty"`
	StrictNull     *bool `json:"strictNullChecks,omitempty"`
	UncheckedIndex *bool `json:"noUncheckedIndexedAccess,omitempty"`
}

// StrictNullChecks reports whether strict null checking is enabled: `strictNullChecks` if set,
// else `strict`, else false.
func (o CompilerOptions) StrictNullChecks() bool {
	switch {
	case o.StrictNull != nil:
		return *o.StrictNull

	case o.Strict != nil:
		return *o.Strict

	default:
		return false
	}
}

// NoUncheckedIndexedAccess reports whether index signature and array element reads include `undefined`.
func (o CompilerOptions) NoUncheckedIndexedAccess() bool {
	return o.UncheckedIndex != nil && *o.UncheckedIndex
}

// merge overlays o on base.
func (o CompilerOptions) merge(base CompilerOptions) CompilerOptions {
	if o.Strict == nil {
		o.Strict = base.Strict
	}

	if o.StrictNull == nil {
		o.StrictNull = base.StrictNull
	}

	if o.UncheckedIndex == nil {
		o.UncheckedIndex = base.UncheckedIndex
	}

	return o
}

// Config is a loaded project configuration, with `extends` resolved.
type Config struct {
	Path            string
	CompilerOptions CompilerOptions
}

type rawConfig struct {
	Extends         json.RawMessage `json:"extends"`
	CompilerOptions CompilerOptions `json:"compilerOptions"`
}

// Find returns the path of the nearest configuration file in dir or its parents.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("tsconfig: %w", err)
	}

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("tsconfig: %s: %w", dir, ErrNotFound)
		}

		dir = parent
	}
}

// Load reads the configuration file at path, following `extends`.
func Load(path string) (*Config, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("tsconfig: %w", err)
	}

	opts, err := load(path, make(map[string]struct{}))
	if err != nil {
		return nil, err
	}

	return &Config{Path: path, CompilerOptions: opts}, nil
}

func load(path string, visiting map[string]struct{}) (CompilerOptions, error) {
	if _, ok := visiting[path]; ok {
		return CompilerOptions{}, fmt.Errorf("tsconfig: %s: %w", path, ErrExtendsCycle)
	}

	visiting[path] = struct{}{}
	defer delete(visiting, path)

	data, err := os.ReadFile(path)
	if err != nil {
		return CompilerOptions{}, fmt.Errorf("tsconfig: %w", err)
	}

	data, err = StripJSONC(data)
	if err != nil {
		return CompilerOptions{}, fmt.Errorf("tsconfig: %s: %w", path, err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return CompilerOptions{}, fmt.Errorf("tsconfig: %s: %w", path, err)
	}

	bases, err := extends(raw.Extends)
	if err != nil {
		return CompilerOptions{}, fmt.Errorf("tsconfig: %s: %w", path, err)
	}

	var merged CompilerOptions

	for _, base := range bases {
		basePath, err := resolve(filepath.Dir(path), base)
		if err != nil {
			return CompilerOptions{}, err
		}

		opts, err := load(basePath, visiting)
		if err != nil {
			return CompilerOptions{}, err
		}

		merged = opts.merge(merged)
	}

	return raw.CompilerOptions.merge(merged), nil
}

// extends decodes the `extends` property, a string or an array of strings.
func extends(msg json.RawMessage) ([]string, error) {
	if len(msg) == 0 {
		return nil, nil
	}

	var single string
	if err := json.Unmarshal(msg, &single); err == nil {
		return []string{single}, nil
	}

	var list []string
	if err := json.Unmarshal(msg, &list); err != nil {
		return nil, fmt.Errorf("invalid extends: %w", err)
	}

	return list, nil
}

// resolve locates the configuration file named by an `extends` entry.
func resolve(dir, name string) (string, error) {
	var candidates []string

	if strings.HasPrefix(name, ".") || filepath.IsAbs(name) {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}

		candidates = append(candidates, path, path+".json")
	} else {
		for d := dir; ; {
			path := filepath.Join(d, "node_modules", filepath.FromSlash(name))
			candidates = append(candidates, path, path+".json", filepath.Join(path, FileName))

			parent := filepath.Dir(d)
			if parent == d {
				break
			}

			d = parent
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}

	return "", fmt.Errorf("tsconfig: extends %q: %w", name, ErrNotFound)
}
