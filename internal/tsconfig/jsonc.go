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

package tsconfig

import "github.com/tailscale/hujson"

// StripJSONC converts JSON with comments and trailing commas, as accepted by TypeScript for
// configuration files, to standard JSON. Comments and trailing commas become spaces, so
// offsets in error messages stay meaningful.
func StripJSONC(data []byte) ([]byte, error) {
	return hujson.Standardize(data)
}
