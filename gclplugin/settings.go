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

package gclplugin

import nullishguard "fillmore-labs.com/nullishguard/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// OptionalChain enables reporting of unnecessary optional chains.
	OptionalChain *bool `json:"optional-chain,omitzero"`
	// NullishCoalesce enables reporting of unnecessary nullish coalescing.
	NullishCoalesce *bool `json:"nullish-coalesce,omitzero"`
	// TSConfig names the tsconfig.json to use instead of discovering one per directory.
	TSConfig *string `json:"tsconfig,omitzero"`
}

// Options converts [Settings] into a list of [nullishguard.Option] for the nullishguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []nullishguard.Option {
	var opts []nullishguard.Option

	opts = appendOption(opts, s.OptionalChain, nullishguard.WithOptionalChain)
	opts = appendOption(opts, s.NullishCoalesce, nullishguard.WithNullishCoalesce)
	opts = appendOption(opts, s.TSConfig, nullishguard.WithTSConfig)

	return opts
}

// appendOption appends a non-nil setting to a [nullishguard.Option] list.
func appendOption[T any](opts []nullishguard.Option, value *T, constructor func(T) nullishguard.Option) []nullishguard.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
