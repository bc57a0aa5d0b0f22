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
	"errors"
	"testing"

	"fillmore-labs.com/nullishguard/internal/fix"
)

func TestApplyParsing(t *testing.T) {
	t.Parallel()

	const src = "const a = 1;\nconst b = 2;\n"

	fixes := []fix.Fix{
		{Message: "breaks", Edits: []fix.Edit{{Start: 10, End: 11, NewText: []byte("1 +")}}},
		{Message: "valid", Edits: []fix.Edit{{Start: 23, End: 24, NewText: []byte("3")}}},
	}

	got, err := applyParsing(t.Context(), "a.ts", []byte(src), fixes)
	if err != nil {
		t.Fatalf("applyParsing failed: %v", err)
	}

	if want := "const a = 1;\nconst b = 3;\n"; string(got.Src) != want {
		t.Errorf("Got %q, want %q", got.Src, want)
	}

	if got.Applied != 1 {
		t.Errorf("Got %d applied fixes, want 1", got.Applied)
	}

	if len(got.Skipped) != 1 || got.Skipped[0].Message != "breaks" || got.Skipped[0].Reason != reasonUnparsable {
		t.Errorf("Got skipped %+v, want the breaking fix", got.Skipped)
	}
}

func TestApplyParsingNothingValid(t *testing.T) {
	t.Parallel()

	const src = "const a = 1;\n"

	fixes := []fix.Fix{
		{Message: "breaks", Edits: []fix.Edit{{Start: 10, End: 11, NewText: []byte("1 +")}}},
	}

	got, err := applyParsing(t.Context(), "a.ts", []byte(src), fixes)
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("Got error %v, want %v", err, fix.ErrNoFixes)
	}

	if string(got.Src) != src {
		t.Errorf("Got %q, want unchanged source", got.Src)
	}
}
