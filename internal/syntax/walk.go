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

// Inspect traverses the tree rooted at n in depth-first order. It calls f(n) for each node;
// if f returns true, Inspect visits the children of n.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	for _, ch := range Children(n) {
		Inspect(ch, f)
	}
}

// Children returns the direct child expressions of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *MemberExpr:
		if n.Computed {
			return []Node{n.X, n.Prop}
		}

		return []Node{n.X}

	case *CallExpr:
		return append([]Node{n.Fun}, n.Args...)

	case *LogicalExpr:
		return []Node{n.X, n.Y}

	case *ChainExpr:
		return []Node{n.X}

	case *ParenExpr:
		return []Node{n.X}

	case *NonNullExpr:
		return []Node{n.X}

	case *AsExpr:
		return []Node{n.X}

	case *NewExpr:
		return append([]Node{n.Ctor}, n.Args...)

	case *ObjectLit:
		ch := make([]Node, 0, len(n.Props)+len(n.Others))
		for _, p := range n.Props {
			ch = append(ch, p.Value)
		}

		return append(ch, n.Others...)

	case *ArrayLit:
		return n.Elems

	case *FuncLit:
		if n.Body == nil {
			return nil
		}

		return []Node{n.Body}

	case *Other:
		return n.Children
	}

	return nil
}
