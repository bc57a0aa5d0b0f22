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

// Package report turns findings into diagnostics with suggested fixes.
package report

import (
	"fmt"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/nullishguard/internal/syntax"
)

// MessageKind classifies diagnostics. It is reported as the diagnostic category.
type MessageKind uint8

//go:generate go tool stringer -type MessageKind -linecomment
const (
	UnnecessaryOptionalChain   MessageKind = iota // unnecessary-optional-chain
	UnnecessaryNullishCoalesce                    // unnecessary-nullish-coalesce
	RequiresStrictNullChecks                      // requires-strict-null-checks
)

const (
	optionalChainMessage    = "Unnecessary optional chain on a non-nullish value of type %s."
	nullishCoalesceMessage  = "Unnecessary nullish coalescing: the left operand of type %s is never nullish."
	strictNullChecksMessage = "This rule requires the `strictNullChecks` compiler option to be turned on to function correctly."
)

// Reporter emits diagnostics for one file.
type Reporter struct {
	file   *syntax.File
	report func(analysis.Diagnostic)
}

// New creates a [Reporter] for file, sending diagnostics to report.
func New(file *syntax.File, report func(analysis.Diagnostic)) Reporter {
	return Reporter{file: file, report: report}
}

// OptionalChain reports a redundant guard on link, whose operand has the rendered type typ.
func (r Reporter) OptionalChain(link syntax.Node, typ string) {
	diagnostic := analysis.Diagnostic{
		Pos:      link.Pos(),
		End:      link.End(),
		Category: UnnecessaryOptionalChain.String(),
		Message:  fmt.Sprintf(optionalChainMessage, typ),
	}

	if edits := ChainFix(r.file, link); len(edits) > 0 {
		diagnostic.SuggestedFixes = []analysis.SuggestedFix{{Message: "Remove optional chain", TextEdits: edits}}
	}

	r.report(diagnostic)
}

// NullishCoalesce reports a redundant `??` whose left operand has the rendered type typ.
func (r Reporter) NullishCoalesce(expr *syntax.LogicalExpr, typ string) {
	diagnostic := analysis.Diagnostic{
		Pos:      expr.Pos(),
		End:      expr.End(),
		Category: UnnecessaryNullishCoalesce.String(),
		Message:  fmt.Sprintf(nullishCoalesceMessage, typ),
	}

	if edits := CoalesceFix(r.file, expr); len(edits) > 0 {
		diagnostic.SuggestedFixes = []analysis.SuggestedFix{{Message: "Remove nullish coalescing", TextEdits: edits}}
	}

	r.report(diagnostic)
}

// RequiresStrictNullChecks reports the configuration precondition failure at the start of the file.
func (r Reporter) RequiresStrictNullChecks() {
	start := r.file.Start()

	r.report(analysis.Diagnostic{
		Pos:      start,
		End:      start,
		Category: RequiresStrictNullChecks.String(),
		Message:  strictNullChecksMessage,
	})
}

// InternalError reports an internal error diagnostic.
// These errors indicate bugs in the analyzer logic rather than issues in the user's code.
func (r Reporter) InternalError(rng analysis.Range, format string, args ...any) {
	msg := []byte("Internal Error: ")
	msg = fmt.Appendf(msg, format, args...)

	r.report(analysis.Diagnostic{Pos: rng.Pos(), End: rng.End(), Message: string(msg)})
}
