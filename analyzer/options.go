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

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/nullishguard/internal/config"
)

// Option configures specific behavior of a [New] nullishguard analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *runOptions) {
	r.rule.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithOptionalChain is an [Option] to configure whether unnecessary optional chains are reported.
func WithOptionalChain(optionalChain bool) Option {
	return optionalChainOption{optionalChain: optionalChain}
}

type optionalChainOption struct{ optionalChain bool }

func (o optionalChainOption) apply(r *runOptions) {
	r.rule.Checks.Set(config.OptionalChainCheck, o.optionalChain)
}

func (o optionalChainOption) LogAttr() slog.Attr {
	return slog.Bool("optional-chain", o.optionalChain)
}

// WithNullishCoalesce is an [Option] to configure whether unnecessary nullish coalescing is reported.
func WithNullishCoalesce(nullishCoalesce bool) Option {
	return nullishCoalesceOption{nullishCoalesce: nullishCoalesce}
}

type nullishCoalesceOption struct{ nullishCoalesce bool }

func (o nullishCoalesceOption) apply(r *runOptions) {
	r.rule.Checks.Set(config.NullishCoalesceCheck, o.nullishCoalesce)
}

func (o nullishCoalesceOption) LogAttr() slog.Attr {
	return slog.Bool("nullish-coalesce", o.nullishCoalesce)
}

// WithTSConfig is an [Option] to use the given tsconfig.json instead of discovering one per directory.
func WithTSConfig(path string) Option { return tsconfigOption{path: path} }

type tsconfigOption struct{ path string }

func (o tsconfigOption) apply(r *runOptions) {
	r.tsconfig = o.path
}

func (o tsconfigOption) LogAttr() slog.Attr {
	return slog.String("tsconfig", o.path)
}
