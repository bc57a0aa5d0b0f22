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

// Package typeinfo infers TypeScript types for expressions of a single file.
//
// Inference is local: declarations are resolved lexically within the file, annotated
// declarations use their annotations, and unannotated ones their initializers.
// Anything that cannot be resolved is reported as unknown, so callers treat it as
// possibly nullish.
package typeinfo

import (
	"go/token"

	"fillmore-labs.com/nullishguard/internal/syntax"
	"fillmore-labs.com/nullishguard/internal/tstype"
)

// Info answers type queries for the expressions of one file. An Info is not safe for concurrent use.
type Info struct {
	file   *syntax.File
	strict bool
	access tstype.Access

	exprs    map[syntax.Node]result
	decls    map[*syntax.Decl]result
	visiting map[*syntax.Decl]struct{}
	named    map[*syntax.Decl]*tstype.Named
}

type result struct {
	typ tstype.Type
	ok  bool
}

// Option configures an [Info].
type Option func(i *Info)

// WithUncheckedIndexedAccess adds `undefined` to element and index signature accesses,
// as the compiler option `noUncheckedIndexedAccess` does.
func WithUncheckedIndexedAccess(enabled bool) Option {
	return func(i *Info) { i.access.UncheckedIndex = enabled }
}

// New creates type information for file, analyzed with the given strictNullChecks setting.
func New(file *syntax.File, strictNullChecks bool, opts ...Option) *Info {
	i := &Info{
		file:     file,
		strict:   strictNullChecks,
		exprs:    make(map[syntax.Node]result),
		decls:    make(map[*syntax.Decl]result),
		visiting: make(map[*syntax.Decl]struct{}),
		named:    make(map[*syntax.Decl]*tstype.Named),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// StrictNullChecks reports whether the session distinguishes nullable from non-nullable types.
func (i *Info) StrictNullChecks() bool { return i.strict }

// TypeString renders t for diagnostics.
func (i *Info) TypeString(t tstype.Type) string {
	if t == nil {
		return tstype.Unknown.String()
	}

	return t.String()
}

// TypeOf returns the inferred type of the expression n. The result is false when the type cannot be resolved.
func (i *Info) TypeOf(n syntax.Node) (tstype.Type, bool) {
	if n == nil {
		return nil, false
	}

	if r, ok := i.exprs[n]; ok {
		return r.typ, r.ok
	}

	t, ok := i.typeOf(n)
	if !ok {
		t = nil
	}

	i.exprs[n] = result{typ: t, ok: ok}

	return t, ok
}

// declType returns the type of the value declared by d.
func (i *Info) declType(d *syntax.Decl) (tstype.Type, bool) {
	if r, ok := i.decls[d]; ok {
		return r.typ, r.ok
	}

	if _, ok := i.visiting[d]; ok {
		return nil, false // self-referential initializer
	}

	i.visiting[d] = struct{}{}
	t, ok := i.resolveDecl(d)
	delete(i.visiting, d)

	if !ok {
		t = nil
	}

	i.decls[d] = result{typ: t, ok: ok}

	return t, ok
}

func (i *Info) resolveDecl(d *syntax.Decl) (tstype.Type, bool) {
	switch d.Kind {
	case syntax.DeclVar:
		if d.Type != nil {
			return i.fromTypeExpr(d.Type)
		}

		if d.Init == nil {
			return nil, false
		}

		t, ok := i.TypeOf(d.Init)
		if !ok {
			return nil, false
		}

		if !d.Const {
			t = tstype.Widen(t)
		}

		return t, true

	case syntax.DeclParam:
		if d.Type == nil {
			return nil, false
		}

		t, ok := i.fromTypeExpr(d.Type)
		if !ok {
			return nil, false
		}

		if d.Optional {
			t = tstype.NewUnion(t, tstype.Undefined)
		}

		return t, true

	case syntax.DeclFunc:
		if d.Overloaded {
			return nil, false // the signature depends on the arguments
		}

		return i.funcType(d.Params, d.Result), true

	case syntax.DeclClass:
		return &tstype.Opaque{Text: "typeof " + d.Name}, true
	}

	return nil, false
}

// lookupValue resolves an identifier at pos.
func (i *Info) lookupValue(name string, pos token.Pos) (tstype.Type, bool) {
	if d := i.file.Lookup(name, pos, (*syntax.Decl).IsValue); d != nil {
		return i.declType(d)
	}

	if display, ok := globalValues[name]; ok {
		return tstype.NewNamed(display, nil, nil), true
	}

	return nil, false
}

// globalValues maps built-in global values to the display names of their types.
var globalValues = map[string]string{
	"Array":      "ArrayConstructor",
	"Boolean":    "BooleanConstructor",
	"Date":       "DateConstructor",
	"Error":      "ErrorConstructor",
	"Intl":       "typeof Intl",
	"JSON":       "JSON",
	"Map":        "MapConstructor",
	"Math":       "Math",
	"Number":     "NumberConstructor",
	"Object":     "ObjectConstructor",
	"Promise":    "PromiseConstructor",
	"Reflect":    "typeof Reflect",
	"RegExp":     "RegExpConstructor",
	"Set":        "SetConstructor",
	"String":     "StringConstructor",
	"Symbol":     "SymbolConstructor",
	"console":    "Console",
	"globalThis": "typeof globalThis",
}
