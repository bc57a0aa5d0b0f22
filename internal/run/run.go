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

package run

import (
	"context"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/nullishguard/internal/chain"
	"fillmore-labs.com/nullishguard/internal/config"
	"fillmore-labs.com/nullishguard/internal/nullish"
	"fillmore-labs.com/nullishguard/internal/report"
	"fillmore-labs.com/nullishguard/internal/syntax"
)

// Pass is a single analysis pass over one file.
type Pass struct {
	// File is the parsed file.
	File *syntax.File

	// Checker is the type inference session for File, nil when none is available.
	Checker nullish.TypeChecker

	// Report receives the diagnostics.
	Report func(analysis.Diagnostic)
}

// handler checks a node of a specific kind.
type handler func(c *checker, n syntax.Node)

// Run executes the nullishguard rule on one file. It keeps no state between invocations.
func (r *Options) Run(ctx context.Context, p *Pass) {
	ctx, task := trace.NewTask(ctx, "NullishGuard")
	defer task.End()

	trace.Log(ctx, "file", p.File.Name)

	// Skip generated files
	if p.File.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
		return
	}

	// Skip files with nolint comment
	if p.File.NoLint() {
		return
	}

	rep := report.New(p.File, p.Report)

	if p.Checker == nil || !p.Checker.StrictNullChecks() {
		rep.RequiresStrictNullChecks()

		return
	}

	handlers := r.handlers()
	if len(handlers) == 0 {
		return
	}

	oracle := nullish.NewOracle(p.Checker)

	c := &checker{
		file:   p.File,
		oracle: oracle,
		walker: chain.NewWalker(oracle),
		report: rep,
	}

	defer trace.StartRegion(ctx, "Inspect").End()

	syntax.Inspect(p.File.Root, func(n syntax.Node) bool {
		if h, ok := handlers[n.Kind()]; ok {
			h(c, n)
		}

		return true
	})
}

// handlers returns the lookup table from node kind to the enabled checks.
func (r *Options) handlers() map[syntax.Kind]handler {
	handlers := make(map[syntax.Kind]handler, 2)

	if r.Checks.Enabled(config.OptionalChainCheck) {
		handlers[syntax.KindChain] = (*checker).optionalChain
	}

	if r.Checks.Enabled(config.NullishCoalesceCheck) {
		handlers[syntax.KindLogical] = (*checker).nullishCoalesce
	}

	return handlers
}

type checker struct {
	file   *syntax.File
	oracle nullish.Oracle
	walker chain.Walker
	report report.Reporter
}

// optionalChain reports the innermost redundant guard of a chain.
func (c *checker) optionalChain(n syntax.Node) {
	r := c.walker.Search(n)
	if r.Status != chain.Found {
		return
	}

	if !syntax.IsLink(r.Link) {
		c.report.InternalError(n, "Chain search found no link in %s", c.file.Text(n))

		return
	}

	if c.file.NoLintComment(r.Link.Pos()) {
		return
	}

	c.report.OptionalChain(r.Link, r.Type)
}

// nullishCoalesce reports a `??` whose left operand is never nullish.
func (c *checker) nullishCoalesce(n syntax.Node) {
	expr, ok := n.(*syntax.LogicalExpr)
	if !ok || expr.Op != "??" {
		return
	}

	typ, ok := c.oracle.NeverNullish(expr.X)
	if !ok {
		return
	}

	if c.file.NoLintComment(expr.Pos()) {
		return
	}

	c.report.NullishCoalesce(expr, typ)
}
