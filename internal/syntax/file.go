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

package syntax

import (
	"go/token"
	"regexp"
	"slices"
	"strings"
)

// nullishguard is the name of the linter.
const nullishguard = "nullishguard"

// File is a parsed TypeScript source file.
type File struct {
	Name      string
	Src       []byte
	Tok       *token.File
	Root      Node
	Decls     []*Decl
	Comments  []Comment
	HasErrors bool // the parser recovered from syntax errors
}

// Comment is a line or block comment.
type Comment struct {
	Slash token.Pos
	Text  string
}

func (c Comment) Pos() token.Pos { return c.Slash }
func (c Comment) End() token.Pos { return c.Slash + token.Pos(len(c.Text)) }

// Ranged is anything with a source range.
type Ranged interface {
	Pos() token.Pos
	End() token.Pos
}

// Text returns the source text of r.
func (f *File) Text(r Ranged) string {
	start, end := f.Offset(r.Pos()), f.Offset(r.End())
	if start < 0 || end < start || end > len(f.Src) {
		return ""
	}

	return string(f.Src[start:end])
}

// Offset returns the byte offset of pos, or -1 if pos is not in this file.
func (f *File) Offset(pos token.Pos) int {
	if !pos.IsValid() || pos < token.Pos(f.Tok.Base()) || pos > token.Pos(f.Tok.Base()+f.Tok.Size()) {
		return -1
	}

	return f.Tok.Offset(pos)
}

// Line returns the line number of pos.
func (f *File) Line(pos token.Pos) int {
	return f.Tok.PositionFor(pos, false).Line
}

// Start returns the position of the first byte in the file.
func (f *File) Start() token.Pos {
	return token.Pos(f.Tok.Base())
}

var generatedPattern = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$|@generated\b`)

// Generated reports whether the file is marked as generated by a comment before the first statement.
func (f *File) Generated() bool {
	first := f.firstStatement()

	for _, c := range f.Comments {
		if c.Slash >= first {
			break
		}

		for line := range strings.SplitSeq(c.Text, "\n") {
			if generatedPattern.MatchString(strings.TrimSpace(line)) {
				return true
			}
		}
	}

	return false
}

// NoLint reports whether the file carries a leading `//nolint:nullishguard` comment.
func (f *File) NoLint() bool {
	if len(f.Comments) == 0 || f.Comments[0].Slash >= f.firstStatement() {
		return false
	}

	return CommentHasNoLint(f.Comments[0].Text)
}

// NoLintComment checks if the line of pos carries a trailing `//nolint:nullishguard` comment.
func (f *File) NoLintComment(pos token.Pos) bool {
	line := f.Line(pos)

	i, _ := slices.BinarySearchFunc(f.Comments, pos, func(c Comment, p token.Pos) int { return int(c.Slash - p) })
	for ; i < len(f.Comments); i++ {
		c := f.Comments[i]
		if f.Line(c.Slash) != line {
			return false
		}

		if CommentHasNoLint(c.Text) {
			return true
		}
	}

	return false
}

func (f *File) firstStatement() token.Pos {
	if o, ok := f.Root.(*Other); ok && len(o.Children) > 0 {
		return o.Children[0].Pos()
	}

	return f.Root.End()
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// CommentHasNoLint checks if the provided comment contains a `//nolint:nullishguard` directive.
func CommentHasNoLint(text string) bool {
	matches := nolintPattern.FindStringSubmatch(text)
	if matches == nil {
		return false
	}

	for linter := range strings.SplitSeq(matches[1], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l == nullishguard || l == "all" {
			return true
		}
	}

	return false
}
