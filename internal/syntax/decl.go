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

import "go/token"

// DeclKind classifies declarations.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclParam
	DeclFunc
	DeclClass
	DeclTypeAlias
	DeclInterface
	DeclTypeParam // generic type parameter
	DeclImport    // imported binding, value or type
)

// Decl is a named declaration visible in Scope.
type Decl struct {
	Kind    DeclKind
	Name    string
	NamePos token.Pos
	Scope   Span

	Const      bool     // const variable
	Optional   bool     // optional parameter
	Overloaded bool     // function with several signatures in the same scope
	Type       TypeExpr // annotation or alias target, may be nil
	Init       Node     // variable initializer, may be nil

	Params  []Param  // functions
	Result  TypeExpr // functions, nil when not annotated
	Members []Member // classes and interfaces
}

// IsValue reports whether the declaration introduces a value.
func (d *Decl) IsValue() bool {
	switch d.Kind {
	case DeclVar, DeclParam, DeclFunc, DeclClass, DeclImport:
		return true
	}

	return false
}

// IsType reports whether the declaration introduces a type.
func (d *Decl) IsType() bool {
	switch d.Kind {
	case DeclClass, DeclTypeAlias, DeclInterface, DeclTypeParam, DeclImport:
		return true
	}

	return false
}

// Lookup returns the innermost declaration of name visible at pos that satisfies ok.
func (f *File) Lookup(name string, pos token.Pos, ok func(*Decl) bool) *Decl {
	var best *Decl

	for _, d := range f.Decls {
		if d.Name != name || !d.Scope.Contains(pos) || !ok(d) {
			continue
		}

		if best == nil || narrower(d.Scope, best.Scope) {
			best = d
		}
	}

	return best
}

func narrower(a, b Span) bool {
	return a.To-a.From < b.To-b.From
}
