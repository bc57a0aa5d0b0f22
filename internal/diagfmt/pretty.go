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

// Package diagfmt renders lint results for terminals and tools.
package diagfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fillmore-labs.com/nullishguard/internal/lint"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color   bool
	Base    string // directory paths are shown relative to, absolute paths when empty
	Summary bool
}

type palette struct {
	path, category, caret, fixable, summary *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:     color.New(color.Bold),
		category: color.New(color.FgYellow, color.Bold),
		caret:    color.New(color.FgGreen, color.Bold),
		fixable:  color.New(color.FgCyan),
		summary:  color.New(color.FgRed, color.Bold),
	}

	for _, c := range [...]*color.Color{p.path, p.category, p.caret, p.fixable, p.summary} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Pretty writes each diagnostic as
//
//	<path>:<line>:<col>: <category>: <message>
//
// followed by the source line with the span underlined.
func Pretty(w io.Writer, results []*lint.Result, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	p := newPalette(opts.Color)

	var problems, fixable int

	for _, r := range results {
		if r == nil {
			continue
		}

		path := displayPath(r.Path, opts.Base)

		for _, d := range r.Diagnostics {
			problems++

			fmt.Fprintf(bw, "%s: %s: %s",
				p.path.Sprintf("%s:%d:%d", path, d.Pos.Line, d.Pos.Column),
				p.category.Sprint(d.Category),
				d.Message)

			if d.Fixable {
				fixable++

				fmt.Fprint(bw, p.fixable.Sprint(" (fixable)"))
			}

			fmt.Fprintln(bw)

			if line, ok := sourceLine(r.Src, d.Pos.Offset); ok {
				indent, width := underline(line, d)
				fmt.Fprintf(bw, "  %s\n  %s%s\n",
					strings.ReplaceAll(line, "\t", " "),
					strings.Repeat(" ", indent),
					p.caret.Sprint("^"+strings.Repeat("~", max(width-1, 0))))
			}
		}
	}

	if opts.Summary && problems > 0 {
		fmt.Fprintln(bw, p.summary.Sprintf("%d %s (%d fixable)", problems, plural(problems, "problem"), fixable))
	}

	return bw.Flush()
}

// sourceLine returns the line of src containing offset, without its line terminator.
func sourceLine(src []byte, offset int) (string, bool) {
	if offset < 0 || offset > len(src) {
		return "", false
	}

	start := bytes.LastIndexByte(src[:offset], '\n') + 1

	end := bytes.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}

	return strings.TrimRight(string(src[start:end]), "\r"), true
}

// underline returns the display column and width of the diagnostic span within line.
func underline(line string, d lint.Diagnostic) (indent, width int) {
	col := min(max(d.Pos.Column-1, 0), len(line))
	indent = runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", " "))

	endCol := len(line)
	if d.End.Line == d.Pos.Line && d.End.Column > d.Pos.Column {
		endCol = min(d.End.Column-1, len(line))
	}

	width = max(runewidth.StringWidth(line[col:endCol]), 1)

	return indent, width
}

func displayPath(path, base string) string {
	if base == "" {
		return path
	}

	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
