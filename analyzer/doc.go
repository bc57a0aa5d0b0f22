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

// Package analyzer implements the nullishguard static analysis pass.
//
// # Overview
//
// NullishGuard detects optional chains (`?.`) and nullish coalescing (`??`)
// in TypeScript sources whose left operand can never be null or undefined.
// The analyzer lints the TypeScript files located in the directories of the
// analyzed Go package, so it can be run by Go analysis drivers next to
// embedded web assets.
//
// # Example
//
// Before:
//
//	declare const config: { server: { port: number } };
//	const port = config?.server?.port ?? 8080;
//
// After applying nullishguard's suggested fixes:
//
//	declare const config: { server: { port: number } };
//	const port = config.server.port;
//
// Fixes are applied innermost first, so a chain can take several passes to
// reach its fixed point.
//
// # Configuration
//
// The rule requires the `strictNullChecks` compiler option. It is read from
// the nearest tsconfig.json, or from the file given with -tsconfig.
// Files without it receive a single diagnostic and are not analyzed.
package analyzer
