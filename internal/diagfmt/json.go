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

package diagfmt

import (
	"fmt"
	"go/token"
	"io"

	"fortio.org/safecast"
	json "github.com/json-iterator/go"

	"fillmore-labs.com/nullishguard/internal/lint"
)

// LocationJSON is a source range in JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

// DiagnosticJSON is a diagnostic in JSON output.
type DiagnosticJSON struct {
	Category string       `json:"category"`
	Message  string       `json:"message"`
	Fixable  bool         `json:"fixable"`
	Location LocationJSON `json:"location"`
}

// FileJSON summarizes one processed file.
type FileJSON struct {
	File    string `json:"file"`
	Changed bool   `json:"changed,omitempty"`
	Passes  int    `json:"passes,omitempty"`
	Applied int    `json:"applied,omitempty"`
}

// Output is the root of the JSON output.
type Output struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Files       []FileJSON       `json:"files,omitempty"`
	Count       int              `json:"count"`
}

// BuildOutput converts lint results to their JSON representation.
func BuildOutput(results []*lint.Result, base string) (*Output, error) {
	out := &Output{Diagnostics: []DiagnosticJSON{}}

	for _, r := range results {
		if r == nil {
			continue
		}

		path := displayPath(r.Path, base)

		if r.Changed {
			out.Files = append(out.Files, FileJSON{File: path, Changed: true, Passes: r.Passes, Applied: r.Applied})
		}

		for _, d := range r.Diagnostics {
			loc, err := location(path, d.Pos, d.End)
			if err != nil {
				return nil, err
			}

			out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
				Category: d.Category,
				Message:  d.Message,
				Fixable:  d.Fixable,
				Location: loc,
			})
		}
	}

	out.Count = len(out.Diagnostics)

	return out, nil
}

// JSON writes lint results as an indented JSON document.
func JSON(w io.Writer, results []*lint.Result, base string) error {
	out, err := BuildOutput(results, base)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}

	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}

	return nil
}

func location(path string, pos, end token.Position) (LocationJSON, error) {
	var (
		loc  = LocationJSON{File: path}
		errs [6]error
	)

	loc.StartByte, errs[0] = safecast.Conv[uint32](pos.Offset)
	loc.EndByte, errs[1] = safecast.Conv[uint32](end.Offset)
	loc.StartLine, errs[2] = safecast.Conv[uint32](pos.Line)
	loc.StartCol, errs[3] = safecast.Conv[uint32](pos.Column)
	loc.EndLine, errs[4] = safecast.Conv[uint32](end.Line)
	loc.EndCol, errs[5] = safecast.Conv[uint32](end.Column)

	for _, err := range errs {
		if err != nil {
			return LocationJSON{}, fmt.Errorf("%s: position out of range: %w", path, err)
		}
	}

	return loc, nil
}
