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

// Package testsource provides utilities for parsing and analyzing TypeScript source code in tests.
//
// It is designed to simplify testing of the nullishguard components by handling common
// boilerplate code for parsing and type-checking TypeScript source fragments.
package testsource

import (
	"go/token"
	"testing"

	"fillmore-labs.com/nullishguard/internal/syntax"
	"fillmore-labs.com/nullishguard/internal/typeinfo"
)

const filename = "test.ts"

// Parse parses a TypeScript source fragment.
//
// Call [Check] on the result when type information is needed.
func Parse(tb testing.TB, src string) (*token.FileSet, *syntax.File) {
	tb.Helper()

	fset := token.NewFileSet()

	f, err := syntax.ParseFile(tb.Context(), fset, filename, []byte(src))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	if f.HasErrors {
		tb.Fatalf("Source %q has syntax errors", src)
	}

	return fset, f
}

// Check returns type information for f with strict null checks enabled.
func Check(tb testing.TB, f *syntax.File) *typeinfo.Info {
	tb.Helper()

	return typeinfo.New(f, true)
}

// Find returns the outermost node whose source text is text.
// Chain wrappers are returned in place of the link they wrap.
func Find(tb testing.TB, f *syntax.File, text string) syntax.Node {
	tb.Helper()

	var found syntax.Node

	syntax.Inspect(f.Root, func(n syntax.Node) bool {
		if found != nil {
			return false
		}

		if _, ok := n.(*syntax.Other); !ok && f.Text(n) == text {
			found = n

			return false
		}

		return true
	})

	if found == nil {
		tb.Fatalf("Can't find %q", text)
	}

	return found
}
