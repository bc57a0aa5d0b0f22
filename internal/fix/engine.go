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

// Package fix applies suggested fixes to source text.
package fix

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"slices"

	"golang.org/x/tools/go/analysis"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Edit replaces the bytes [Start, End) of a source.
type Edit struct {
	Start, End int
	NewText    []byte
}

// Fix is a set of edits that must be applied together.
type Fix struct {
	Message string
	Edits   []Edit
}

// SkippedFix captures a fix that was not applied, with a reason.
type SkippedFix struct {
	Message string
	Reason  string
}

// Result aggregates the fixed source, the number of applied fixes and the skipped ones.
type Result struct {
	Src     []byte
	Applied int
	Skipped []SkippedFix
}

type candidate struct {
	fix   Fix
	order int
}

// FromDiagnostics collects the first suggested fix of each diagnostic, converting positions to offsets in tf.
func FromDiagnostics(tf *token.File, diagnostics []analysis.Diagnostic) ([]Fix, error) {
	var fixes []Fix

	for _, d := range diagnostics {
		if len(d.SuggestedFixes) == 0 {
			continue
		}

		sf := d.SuggestedFixes[0]
		f := Fix{Message: sf.Message, Edits: make([]Edit, 0, len(sf.TextEdits))}

		for _, e := range sf.TextEdits {
			start, err := offset(tf, e.Pos)
			if err != nil {
				return nil, err
			}

			end := start
			if e.End.IsValid() {
				if end, err = offset(tf, e.End); err != nil {
					return nil, err
				}
			}

			f.Edits = append(f.Edits, Edit{Start: start, End: end, NewText: e.NewText})
		}

		fixes = append(fixes, f)
	}

	return fixes, nil
}

// ErrInvalidPosition is returned for edit positions outside the file.
var ErrInvalidPosition = errors.New("invalid edit position")

func offset(tf *token.File, pos token.Pos) (int, error) {
	base := tf.Base()
	if !pos.IsValid() || int(pos) < base || int(pos) > base+tf.Size() {
		return 0, fmt.Errorf("%s: %w %d", tf.Name(), ErrInvalidPosition, pos)
	}

	return int(pos) - base, nil
}

// Apply applies every fix whose edits do not overlap an already accepted edit.
// Fixes are considered in source order. Skipped fixes are reported in the result.
func Apply(src []byte, fixes []Fix) (*Result, error) {
	result := &Result{Src: src}

	candidates := make([]candidate, 0, len(fixes))
	for i, f := range fixes {
		if len(f.Edits) == 0 {
			result.Skipped = append(result.Skipped, SkippedFix{Message: f.Message, Reason: "fix has no edits"})

			continue
		}

		candidates = append(candidates, candidate{fix: f, order: i})
	}

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	var accepted []Edit

	for _, cand := range candidates {
		if reason := check(len(src), accepted, cand.fix.Edits); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{Message: cand.fix.Message, Reason: reason})

			continue
		}

		accepted = append(accepted, cand.fix.Edits...)
		result.Applied++
	}

	if result.Applied == 0 {
		return result, ErrNoFixes
	}

	result.Src = applyEdits(src, accepted)

	return result, nil
}

// sortCandidates orders candidates by the span of their first edit, then by insertion order.
func sortCandidates(candidates []candidate) {
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		ea, eb := first(a.fix.Edits), first(b.fix.Edits)
		if ea.Start != eb.Start {
			return ea.Start - eb.Start
		}

		if ea.End != eb.End {
			return ea.End - eb.End
		}

		return a.order - b.order
	})
}

func first(edits []Edit) Edit {
	return slices.MinFunc(edits, func(a, b Edit) int { return a.Start - b.Start })
}

// check returns the reason why edits cannot be applied, or an empty string.
func check(size int, accepted, edits []Edit) string {
	for i, e := range edits {
		if e.Start < 0 || e.End < e.Start || e.End > size {
			return "edit span out of range"
		}

		for _, prev := range accepted {
			if spansConflict(prev, e) {
				return "conflicts with previously applied edits"
			}
		}

		for _, other := range edits[:i] {
			if spansConflict(other, e) {
				return "overlapping edits"
			}
		}
	}

	return ""
}

// spansConflict reports whether two edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// never conflict. A zero-length edit conflicts with a non-zero span if its
// position is within that span.
func spansConflict(a, b Edit) bool {
	switch {
	case a.Start == a.End && b.Start == b.End:
		return false

	case a.Start == a.End:
		return b.Start <= a.Start && a.Start < b.End

	case b.Start == b.End:
		return a.Start <= b.Start && b.Start < a.End

	default:
		return a.Start < b.End && b.Start < a.End
	}
}

// applyEdits applies non-overlapping edits, starting from the end of the source.
func applyEdits(src []byte, edits []Edit) []byte {
	edits = slices.Clone(edits)
	slices.SortStableFunc(edits, func(a, b Edit) int {
		if a.Start != b.Start {
			return b.Start - a.Start
		}

		return b.End - a.End
	})

	out := slices.Clone(src)
	for _, e := range edits {
		out = slices.Concat(out[:e.Start], e.NewText, out[e.End:])
	}

	return out
}

// WriteFile replaces the contents of path, preserving its file mode.
func WriteFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
