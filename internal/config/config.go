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

package config

// Check represents a specific check of the rule.
type Check uint8

const (
	// OptionalChainCheck enables reporting of unnecessary optional chains.
	OptionalChainCheck Check = 1 << iota

	// NullishCoalesceCheck enables reporting of unnecessary nullish coalescing.
	NullishCoalesceCheck
)

// Checks is the set of enabled checks.
type Checks = BitMask[Check]

// DefaultChecks returns the checks enabled by default.
func DefaultChecks() Checks {
	return NewBitMask(OptionalChainCheck, NullishCoalesceCheck)
}

// Config represents behavioral options of the rule.
type Config uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Config = 1 << iota
)

// Behavior is the set of enabled behavioral options.
type Behavior = BitMask[Config]

// DefaultBehavior returns the behavioral options enabled by default.
func DefaultBehavior() Behavior {
	return NewBitMask[Config]()
}
