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

package report

import (
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/nullishguard/internal/syntax"
)

// ChainFix returns the edits removing the guard of an optional member access or call.
// It returns nil when the link has no usable guard position.
func ChainFix(f *syntax.File, link syntax.Node) []analysis.TextEdit {
	switch n := link.(type) {
	case *syntax.MemberExpr:
		if !n.Optional || !n.Opt.IsValid() {
			return nil
		}

		if !n.Computed {
			dot := "."
			if integerLiteral(f, n.X) && n.X.End() == n.Opt {
				dot = ".." // 1?.toString() -> 1..toString()
			}

			// obj?.prop -> obj.prop
			return []analysis.TextEdit{{Pos: n.Opt, End: n.Opt + token.Pos(len("?.")), NewText: []byte(dot)}}
		}

		if !n.Lbrack.IsValid() || n.Lbrack < n.Opt {
			return nil
		}

		// obj?.[expr] -> obj[expr]
		return []analysis.TextEdit{{Pos: n.Opt, End: n.Lbrack + 1, NewText: []byte("[")}}

	case *syntax.CallExpr:
		if !n.Optional || !n.Lparen.IsValid() || !n.Rparen.IsValid() {
			return nil
		}

		// fn?.(args) -> fn(args)
		var b strings.Builder

		b.WriteString(f.Text(n.Fun))

		if n.TypeArgs != nil {
			b.WriteString(f.Text(n.TypeArgs))
		}

		b.WriteByte('(')

		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(f.Text(arg))
		}

		b.WriteByte(')')

		return []analysis.TextEdit{{Pos: n.Pos(), End: n.End(), NewText: []byte(b.String())}}
	}

	return nil
}

// integerLiteral reports whether n is a decimal number literal without fraction or exponent,
// where a following dot would be read as a decimal point.
func integerLiteral(f *syntax.File, n syntax.Node) bool {
	lit, ok := n.(*syntax.Literal)
	if !ok || lit.LitKind != syntax.LitNumber {
		return false
	}

	text := f.Text(lit)

	return text != "" && !strings.ContainsAny(text, ".eExXoObB")
}

// CoalesceFix returns the edit replacing `left ?? right` with `left`.
func CoalesceFix(f *syntax.File, expr *syntax.LogicalExpr) []analysis.TextEdit {
	if expr.Op != "??" {
		return nil
	}

	left := f.Text(expr.X)
	if left == "" {
		return nil
	}

	return []analysis.TextEdit{{Pos: expr.Pos(), End: expr.End(), NewText: []byte(left)}}
}
