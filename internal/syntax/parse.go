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

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrNoTree is returned when the parser produced no syntax tree.
var ErrNoTree = errors.New("parser returned no syntax tree")

// ErrOffset is returned when the parser reports a position outside the source.
var ErrOffset = errors.New("offset out of range")

// Extensions lists the file extensions of TypeScript sources.
var Extensions = []string{".ts", ".tsx", ".mts", ".cts"}

// IsSource reports whether filename names a TypeScript source file, excluding declaration files.
func IsSource(filename string) bool {
	base := filepath.Base(filename)
	for _, suffix := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}

	ext := filepath.Ext(base)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}

	return false
}

// ParseFile parses the TypeScript source src and adds it to fset.
func ParseFile(ctx context.Context, fset *token.FileSet, filename string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if filepath.Ext(filename) == ".tsx" {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse %s: %w", filename, ErrNoTree)
	}

	tf := fset.AddFile(filename, -1, len(src))
	tf.SetLinesForContent(src)

	c := converter{
		file: &File{Name: filename, Src: src, Tok: tf, HasErrors: root.HasError()},
		src:  src,
	}

	c.scopes = []Span{{From: token.Pos(tf.Base()), To: token.Pos(tf.Base() + tf.Size() + 1)}}

	c.file.Root = c.other(root)
	if c.err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, c.err)
	}

	return c.file, nil
}

// converter translates a tree-sitter concrete syntax tree into [Node]s.
type converter struct {
	file   *File
	src    []byte
	scopes []Span
	err    error
}

func (c *converter) pos(offset uint32) token.Pos {
	off, err := safecast.Conv[int](offset)
	if err == nil && off > c.file.Tok.Size() {
		err = ErrOffset
	}

	if err != nil {
		if c.err == nil {
			c.err = fmt.Errorf("offset %d: %w", offset, err)
		}

		return token.NoPos
	}

	return c.file.Tok.Pos(off)
}

func (c *converter) start(n *sitter.Node) token.Pos { return c.pos(n.StartByte()) }

func (c *converter) end(n *sitter.Node) token.Pos { return c.pos(n.EndByte()) }

func (c *converter) span(n *sitter.Node) Span { return Span{From: c.start(n), To: c.end(n)} }

func (c *converter) text(n *sitter.Node) string { return n.Content(c.src) }

func (c *converter) scope() Span { return c.scopes[len(c.scopes)-1] }

func (c *converter) declare(d *Decl) { c.file.Decls = append(c.file.Decls, d) }

// expr converts an expression, wrapping optional chains.
func (c *converter) expr(n *sitter.Node) Node {
	e := c.link(n)
	if e != nil && hasOptionalLink(e) {
		return &ChainExpr{X: e}
	}

	return e
}

// link converts an expression without wrapping optional chains. It is used for
// the object and callee positions of member accesses and calls.
func (c *converter) link(n *sitter.Node) Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "comment":
		c.comment(n)

		return nil

	case "identifier", "this", "super", "property_identifier", "shorthand_property_identifier",
		"private_property_identifier", "type_identifier":
		if text := c.text(n); text == "undefined" {
			return c.literal(n, LitUndefined)
		}

		return &Ident{NamePos: c.start(n), Name: c.text(n)}

	case "undefined":
		return c.literal(n, LitUndefined)

	case "null":
		return c.literal(n, LitNull)

	case "true":
		return c.literal(n, LitTrue)

	case "false":
		return c.literal(n, LitFalse)

	case "number":
		if strings.HasSuffix(c.text(n), "n") && !strings.HasPrefix(c.text(n), "0x") {
			return c.literal(n, LitBigInt)
		}

		return c.literal(n, LitNumber)

	case "string":
		return c.literal(n, LitString)

	case "template_string":
		return c.literal(n, LitTemplate)

	case "regex":
		return c.literal(n, LitRegExp)

	case "member_expression", "subscript_expression":
		return c.member(n)

	case "call_expression":
		return c.call(n)

	case "binary_expression":
		return c.binary(n)

	case "parenthesized_expression":
		return c.paren(n)

	case "non_null_expression":
		return &NonNullExpr{X: c.expr(n.NamedChild(0)), EndPos: c.end(n)}

	case "as_expression", "satisfies_expression":
		return c.as(n)

	case "new_expression":
		return c.newExpr(n)

	case "object":
		return c.object(n)

	case "array":
		return c.array(n)

	case "arrow_function", "function_expression", "function":
		return c.funcLit(n)

	default:
		return c.other(n)
	}
}

func (c *converter) literal(n *sitter.Node, kind LitKind) *Literal {
	return &Literal{ValuePos: c.start(n), ValueEnd: c.end(n), LitKind: kind, Value: c.text(n)}
}

// optionalChain returns the "?." token of a member access or call, or nil.
func optionalChain(n *sitter.Node) *sitter.Node {
	if o := n.ChildByFieldName("optional_chain"); o != nil {
		return o
	}

	for i := range int(n.ChildCount()) {
		if ch := n.Child(i); ch != nil && (ch.Type() == "optional_chain" || ch.Type() == "?.") {
			return ch
		}
	}

	return nil
}

func (c *converter) member(n *sitter.Node) Node {
	object := n.ChildByFieldName("object")
	if object == nil {
		return c.other(n)
	}

	m := &MemberExpr{X: c.link(object), EndPos: c.end(n)}
	if m.X == nil {
		return c.other(n)
	}

	if opt := optionalChain(n); opt != nil {
		m.Optional, m.Opt = true, c.start(opt)
	}

	if n.Type() == "subscript_expression" {
		m.Computed = true

		for i := range int(n.ChildCount()) {
			if ch := n.Child(i); ch != nil && ch.Type() == "[" {
				m.Lbrack = c.start(ch)

				break
			}
		}

		m.Prop = c.expr(n.ChildByFieldName("index"))
	} else {
		m.Prop = c.link(n.ChildByFieldName("property"))
	}

	if m.Prop == nil {
		return c.other(n)
	}

	return m
}

func (c *converter) call(n *sitter.Node) Node {
	fun, args := n.ChildByFieldName("function"), n.ChildByFieldName("arguments")
	if fun == nil || args == nil || args.Type() != "arguments" {
		return c.other(n) // tagged template or recovered syntax
	}

	call := &CallExpr{
		Fun:    c.link(fun),
		Lparen: c.start(args),
		Rparen: c.end(args) - 1,
	}
	if call.Fun == nil {
		return c.other(n)
	}

	if opt := optionalChain(n); opt != nil {
		call.Optional, call.Opt = true, c.start(opt)
	}

	if targs := n.ChildByFieldName("type_arguments"); targs != nil {
		call.TypeArgs = &Other{From: c.start(targs), To: c.end(targs), Type: targs.Type()}
	}

	for i := range int(args.NamedChildCount()) {
		if arg := c.expr(args.NamedChild(i)); arg != nil {
			call.Args = append(call.Args, arg)
		}
	}

	return call
}

func (c *converter) binary(n *sitter.Node) Node {
	left, op, right := n.ChildByFieldName("left"), n.ChildByFieldName("operator"), n.ChildByFieldName("right")
	if left == nil || op == nil || right == nil {
		return c.other(n)
	}

	switch op.Type() {
	case "??", "||", "&&":
		x, y := c.expr(left), c.expr(right)
		if x == nil || y == nil {
			return c.other(n)
		}

		return &LogicalExpr{X: x, Op: op.Type(), OpPos: c.start(op), Y: y}

	default:
		return c.other(n)
	}
}

func (c *converter) paren(n *sitter.Node) Node {
	var inner Node

	for i := range int(n.NamedChildCount()) {
		if e := c.expr(n.NamedChild(i)); e != nil && inner == nil {
			inner = e
		}
	}

	if inner == nil {
		return c.other(n)
	}

	return &ParenExpr{Lparen: c.start(n), X: inner, Rparen: c.end(n) - 1}
}

func (c *converter) as(n *sitter.Node) Node {
	if n.NamedChildCount() == 0 {
		return c.other(n)
	}

	a := &AsExpr{
		X:         c.expr(n.NamedChild(0)),
		Satisfies: n.Type() == "satisfies_expression",
		EndPos:    c.end(n),
	}
	if a.X == nil {
		return c.other(n)
	}

	if n.NamedChildCount() > 1 {
		a.Type = c.typeExpr(n.NamedChild(int(n.NamedChildCount()) - 1))
	}

	return a
}

func (c *converter) newExpr(n *sitter.Node) Node {
	ctor := n.ChildByFieldName("constructor")
	if ctor == nil {
		return c.other(n)
	}

	e := &NewExpr{NewPos: c.start(n), Ctor: c.expr(ctor), EndPos: c.end(n)}

	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := range int(args.NamedChildCount()) {
			if arg := c.expr(args.NamedChild(i)); arg != nil {
				e.Args = append(e.Args, arg)
			}
		}
	}

	return e
}

func (c *converter) object(n *sitter.Node) Node {
	o := &ObjectLit{Lbrace: c.start(n), Rbrace: c.end(n) - 1}

	for i := range int(n.NamedChildCount()) {
		ch := n.NamedChild(i)

		switch ch.Type() {
		case "pair":
			key, value := ch.ChildByFieldName("key"), ch.ChildByFieldName("value")
			if key == nil || value == nil {
				continue
			}

			v := c.expr(value)
			if v == nil {
				continue
			}

			if name, ok := c.propertyName(key); ok {
				o.Props = append(o.Props, Property{Name: name, Value: v})
			} else {
				o.Others = append(o.Others, c.expr(key), v)
			}

		case "shorthand_property_identifier":
			id := &Ident{NamePos: c.start(ch), Name: c.text(ch)}
			o.Props = append(o.Props, Property{Name: id.Name, Value: id})

		default:
			if e := c.expr(ch); e != nil {
				o.Others = append(o.Others, e)
			}
		}
	}

	return o
}

// propertyName returns the static name of a property key.
func (c *converter) propertyName(key *sitter.Node) (string, bool) {
	switch key.Type() {
	case "property_identifier", "identifier", "number", "private_property_identifier":
		return c.text(key), true

	case "string":
		return unquote(c.text(key)), true
	}

	return "", false
}

func (c *converter) array(n *sitter.Node) Node {
	a := &ArrayLit{Lbrack: c.start(n), Rbrack: c.end(n) - 1}

	for i := range int(n.NamedChildCount()) {
		if e := c.expr(n.NamedChild(i)); e != nil {
			a.Elems = append(a.Elems, e)
		}
	}

	return a
}

func (c *converter) funcLit(n *sitter.Node) Node {
	f := &FuncLit{From: c.start(n), To: c.end(n)}

	c.scopes = append(c.scopes, c.span(n))
	defer func() { c.scopes = c.scopes[:len(c.scopes)-1] }()

	c.typeParams(n, c.scope())

	if params := n.ChildByFieldName("parameters"); params != nil {
		f.Params, _ = c.params(params)
	} else if param := n.ChildByFieldName("parameter"); param != nil {
		f.Params = []Param{{Name: c.text(param)}}
		c.declare(&Decl{Kind: DeclParam, Name: c.text(param), NamePos: c.start(param), Scope: c.scope()})
	}

	f.Result = c.typeExpr(n.ChildByFieldName("return_type"))

	if body := n.ChildByFieldName("body"); body != nil {
		f.Block = body.Type() == "statement_block"
		f.Body = c.expr(body)
	}

	return f
}

// other converts a node without a dedicated representation, recording declarations and comments.
func (c *converter) other(n *sitter.Node) Node {
	o := &Other{From: c.start(n), To: c.end(n), Type: n.Type()}

	switch n.Type() {
	case "variable_declarator":
		o.Children = append(o.Children, c.variable(n)...)

		return o

	case "import_statement":
		c.imports(n)

		return o

	case "function_declaration", "generator_function_declaration", "function_signature",
		"method_definition", "method_signature", "abstract_method_signature":
		c.function(n)

		c.scopes = append(c.scopes, c.span(n))
		defer func() { c.scopes = c.scopes[:len(c.scopes)-1] }()

		c.typeParams(n, c.scope())

		if params := n.ChildByFieldName("parameters"); params != nil {
			_, defaults := c.params(params)
			o.Children = append(o.Children, defaults...)
		}

		if body := n.ChildByFieldName("body"); body != nil {
			if b := c.expr(body); b != nil {
				o.Children = append(o.Children, b)
			}
		}

		return o

	case "type_alias_declaration":
		c.typeParams(n, c.span(n))

		if name := n.ChildByFieldName("name"); name != nil {
			c.declare(&Decl{
				Kind: DeclTypeAlias, Name: c.text(name), NamePos: c.start(name), Scope: c.scope(),
				Type: c.typeExpr(n.ChildByFieldName("value")),
			})
		}

		return o

	case "interface_declaration":
		c.typeParams(n, c.span(n))

		if name := n.ChildByFieldName("name"); name != nil {
			c.declare(&Decl{
				Kind: DeclInterface, Name: c.text(name), NamePos: c.start(name), Scope: c.scope(),
				Members: c.members(n.ChildByFieldName("body")),
			})
		}

		return o

	case "class_declaration", "abstract_class_declaration", "class":
		c.typeParams(n, c.span(n))

		if name := n.ChildByFieldName("name"); name != nil {
			c.declare(&Decl{
				Kind: DeclClass, Name: c.text(name), NamePos: c.start(name), Scope: c.scope(),
				Members: c.members(n.ChildByFieldName("body")),
			})
		}

	case "statement_block", "class_body", "for_statement", "switch_body":
		c.scopes = append(c.scopes, c.span(n))
		defer func() { c.scopes = c.scopes[:len(c.scopes)-1] }()

	case "for_in_statement", "catch_clause":
		c.scopes = append(c.scopes, c.span(n))
		defer func() { c.scopes = c.scopes[:len(c.scopes)-1] }()

		// defaults in the pattern are converted with the children below
		binding := n.ChildByFieldName("left")
		if n.Type() == "catch_clause" {
			binding = n.ChildByFieldName("parameter")
		}

		c.bindings(binding, DeclVar, nil)

	case "ERROR":
		c.file.HasErrors = true
	}

	for i := range int(n.NamedChildCount()) {
		ch := n.NamedChild(i)
		if ch == nil || isTypePosition(n, i) {
			continue
		}

		if e := c.expr(ch); e != nil {
			o.Children = append(o.Children, e)
		}
	}

	return o
}

// isTypePosition reports whether the i-th named child of n is a type annotation that holds no expressions.
func isTypePosition(n *sitter.Node, i int) bool {
	switch n.NamedChild(i).Type() {
	case "type_annotation", "type_parameters", "type_arguments", "accessibility_modifier", "override_modifier":
		return true
	}

	return false
}

func (c *converter) comment(n *sitter.Node) {
	c.file.Comments = append(c.file.Comments, Comment{Slash: c.start(n), Text: c.text(n)})
}

// variable records a variable declaration and returns its converted initializer
// and destructuring defaults.
func (c *converter) variable(n *sitter.Node) []Node {
	var init Node
	if value := n.ChildByFieldName("value"); value != nil {
		init = c.expr(value)
	}

	var nodes []Node
	if init != nil {
		nodes = append(nodes, init)
	}

	name := n.ChildByFieldName("name")
	if name == nil {
		return nodes
	}

	if name.Type() != "identifier" {
		for _, d := range c.bindings(name, DeclVar, nil) {
			if e := c.expr(d); e != nil {
				nodes = append(nodes, e)
			}
		}

		return nodes
	}

	d := &Decl{
		Kind:    DeclVar,
		Name:    c.text(name),
		NamePos: c.start(name),
		Scope:   c.scope(),
		Type:    c.typeExpr(n.ChildByFieldName("type")),
		Init:    init,
	}

	if parent := n.Parent(); parent != nil && parent.ChildCount() > 0 {
		d.Const = parent.Child(0).Type() == "const"
	}

	c.declare(d)

	return nodes
}

func (c *converter) function(n *sitter.Node) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return
	}

	d := &Decl{
		Kind:    DeclFunc,
		Name:    c.text(name),
		NamePos: c.start(name),
		Scope:   c.scope(),
		Result:  c.typeExpr(n.ChildByFieldName("return_type")),
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		d.Params = c.paramList(params)
	}

	if n.Type() == "method_definition" || n.Type() == "method_signature" || n.Type() == "abstract_method_signature" {
		return // members are recorded with their class or interface
	}

	for _, prev := range c.file.Decls {
		if prev.Kind == DeclFunc && prev.Name == d.Name && prev.Scope == d.Scope {
			prev.Overloaded, d.Overloaded = true, true
		}
	}

	c.declare(d)
}

// params records parameter declarations in the current scope and returns the converted default values.
func (c *converter) params(n *sitter.Node) ([]Param, []Node) {
	ps := c.paramList(n)

	var defaults []Node

	for i := range int(n.NamedChildCount()) {
		ch := n.NamedChild(i)

		if value := ch.ChildByFieldName("value"); value != nil {
			if e := c.expr(value); e != nil {
				defaults = append(defaults, e)
			}
		}

		pattern := ch.ChildByFieldName("pattern")
		if pattern == nil {
			continue
		}

		if pattern.Type() != "identifier" {
			for _, d := range c.bindings(pattern, DeclParam, nil) {
				if e := c.expr(d); e != nil {
					defaults = append(defaults, e)
				}
			}

			continue
		}

		c.declare(&Decl{
			Kind:     DeclParam,
			Name:     c.text(pattern),
			NamePos:  c.start(pattern),
			Scope:    c.scope(),
			Optional: ch.Type() == "optional_parameter",
			Type:     c.typeExpr(ch.ChildByFieldName("type")),
		})
	}

	return ps, defaults
}

// bindings declares the names bound by a destructuring pattern. Their types are not
// tracked, so the declarations shadow outer names and resolve to unknown.
// It returns the default value expressions in the pattern, appended to defaults.
func (c *converter) bindings(n *sitter.Node, kind DeclKind, defaults []*sitter.Node) []*sitter.Node {
	if n == nil {
		return defaults
	}

	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		c.declare(&Decl{Kind: kind, Name: c.text(n), NamePos: c.start(n), Scope: c.scope()})

	case "pair_pattern":
		return c.bindings(n.ChildByFieldName("value"), kind, defaults)

	case "assignment_pattern", "object_assignment_pattern":
		defaults = c.bindings(n.ChildByFieldName("left"), kind, defaults)
		if right := n.ChildByFieldName("right"); right != nil {
			defaults = append(defaults, right)
		}

	case "object_pattern", "array_pattern", "rest_pattern":
		for i := range int(n.NamedChildCount()) {
			defaults = c.bindings(n.NamedChild(i), kind, defaults)
		}
	}

	return defaults
}

// typeParams declares the type parameters of the generic declaration n, visible in scope.
func (c *converter) typeParams(n *sitter.Node, scope Span) {
	tps := n.ChildByFieldName("type_parameters")
	if tps == nil {
		return
	}

	for i := range int(tps.NamedChildCount()) {
		tp := tps.NamedChild(i)
		if tp.Type() != "type_parameter" {
			continue
		}

		name := tp.ChildByFieldName("name")
		if name == nil && tp.NamedChildCount() > 0 {
			name = tp.NamedChild(0)
		}

		if name != nil {
			c.declare(&Decl{Kind: DeclTypeParam, Name: c.text(name), NamePos: c.start(name), Scope: scope})
		}
	}
}

// imports declares the bindings of an import statement.
func (c *converter) imports(n *sitter.Node) {
	for i := range int(n.NamedChildCount()) {
		ch := n.NamedChild(i)

		switch ch.Type() {
		case "import_clause", "named_imports", "namespace_import", "import_require_clause":
			c.imports(ch)

		case "import_specifier":
			name := ch.ChildByFieldName("alias")
			if name == nil {
				name = ch.ChildByFieldName("name")
			}

			if name != nil {
				c.declare(&Decl{Kind: DeclImport, Name: c.text(name), NamePos: c.start(name), Scope: c.scope()})
			}

		case "identifier":
			c.declare(&Decl{Kind: DeclImport, Name: c.text(ch), NamePos: c.start(ch), Scope: c.scope()})
		}
	}
}

// paramList converts formal parameters without declaring them.
func (c *converter) paramList(n *sitter.Node) []Param {
	var ps []Param

	for i := range int(n.NamedChildCount()) {
		ch := n.NamedChild(i)

		switch ch.Type() {
		case "required_parameter", "optional_parameter":
		default:
			continue
		}

		p := Param{Optional: ch.Type() == "optional_parameter", Type: c.typeExpr(ch.ChildByFieldName("type"))}

		if pattern := ch.ChildByFieldName("pattern"); pattern != nil {
			if pattern.Type() == "rest_pattern" {
				p.Rest = true
				p.Name = strings.TrimPrefix(c.text(pattern), "...")
			} else {
				p.Name = c.text(pattern)
			}
		}

		ps = append(ps, p)
	}

	return ps
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'' || s[0] == '`') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}
