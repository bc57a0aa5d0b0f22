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

// Package chain finds redundant guards in optional chains.
//
// A chain is searched from the base outwards: the guard closest to the base whose
// operand is statically never nullish is reported, and outer guards are left for a
// later pass. Once a guard is found to be necessary, the links above it are not
// evaluated, since their operands are produced by a short-circuiting access.
package chain

import (
	"fillmore-labs.com/nullishguard/internal/syntax"
)

// Status is the outcome of searching a link.
type Status uint8

const (
	// Continue means the link has no guard, keep searching outer links.
	Continue Status = iota
	// StopBranch means a necessary guard was found, stop searching this chain.
	StopBranch
	// Found means a redundant guard was found.
	Found
)

// Result of a chain search.
type Result struct {
	Status Status
	Link   syntax.Node // the guarded link, only for Found
	Type   string      // rendered type of the guarded operand, only for Found
}

// Oracle decides whether an expression is never nullish.
type Oracle interface {
	NeverNullish(n syntax.Node) (string, bool)
}

// Walker searches optional chains for redundant guards.
type Walker struct {
	oracle Oracle
}

// NewWalker creates a [Walker] backed by oracle.
func NewWalker(oracle Oracle) Walker {
	return Walker{oracle: oracle}
}

// Search finds the innermost redundant guard of the chain rooted at n.
// n is a chain wrapper or the outermost link of a chain.
func (w Walker) Search(n syntax.Node) Result {
	if c, ok := n.(*syntax.ChainExpr); ok {
		n = c.X
	}

	if !syntax.IsLink(n) {
		return Result{Status: Continue}
	}

	return w.search(n)
}

func (w Walker) search(link syntax.Node) Result {
	operand := syntax.Operand(link)

	if syntax.IsLink(operand) {
		if r := w.search(operand); r.Status != Continue {
			return r
		}
	}

	if !syntax.Guarded(link) {
		return Result{Status: Continue}
	}

	if syntax.Guarded(operand) || isChain(operand) {
		return Result{Status: StopBranch}
	}

	typ, ok := w.oracle.NeverNullish(operand)
	if !ok {
		return Result{Status: StopBranch}
	}

	return Result{Status: Found, Link: link, Type: typ}
}

// isChain reports whether n is a chain wrapper, possibly parenthesized.
func isChain(n syntax.Node) bool {
	for {
		switch e := n.(type) {
		case *syntax.ParenExpr:
			n = e.X
		case *syntax.ChainExpr:
			return true
		default:
			return false
		}
	}
}
