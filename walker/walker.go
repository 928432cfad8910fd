// Copyright 2026 The rmslint Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package walker performs the pre-order traversal that drives the lint
// engine (spec section 4.4). It maintains the lexical state stack, updates
// the symbol table for `#define`/`#const` before lints observe them, and
// resolves `Compatibility: …` marker comments as it passes over them.
//
// The walk is conservative: both arms of an `if`/`elseif`/`else` chain are
// always entered, matching the source tool's behavior (spec section 9).
package walker

import (
	"strconv"

	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/symtab"
)

// DefinitionResult reports what happened the last time the walker recorded
// a #define or #const, so a lint reacting to that node's BeforeNode
// callback can tell a fresh definition from a redefinition or a shadow of
// a built-in.
type DefinitionResult struct {
	Redefines      bool
	ShadowsBuiltin bool
}

// FrameKind identifies the shape of one entry in the lexical state stack.
type FrameKind int8

const (
	TopLevel FrameKind = iota
	InSection
	InCommandBlock
	InIf
	InRandom
)

// Frame is one entry in the state stack (spec section 3, "Lexical state
// stack").
type Frame struct {
	Kind        FrameKind
	Name        string // section or command name, depending on Kind
	BranchIndex int    // for InIf/InRandom; -1 for a RandomChain's fallback segment
	GuardKind   string // "if", "elseif", or "else", for InIf
}

// Visitor is implemented by a lint (or a bundle of lints) that wants
// before/after callbacks as the walker descends the tree.
type Visitor interface {
	BeforeNode(w *Walker, n ast.Node)
	AfterNode(w *Walker, n ast.Node)
}

// Walker drives one pre-order traversal of a parsed file.
type Walker struct {
	table    *symtab.Table
	visitors []Visitor

	section Frame   // TopLevel or InSection; replaced as section headers pass by
	stack   []Frame // nested frames below the current section

	lastDef DefinitionResult
}

// New creates a Walker over table, which the caller owns and may inspect
// afterward.
func New(table *symtab.Table, visitors ...Visitor) *Walker {
	return &Walker{table: table, visitors: visitors, section: Frame{Kind: TopLevel}}
}

// Table returns the symbol table being maintained by this walk.
func (w *Walker) Table() *symtab.Table { return w.table }

// Level returns the compatibility level active at the current point in the
// walk.
func (w *Walker) Level() compat.Level { return w.table.Level() }

// Stack returns the full lexical state stack, outermost frame first: the
// current section frame, followed by every nested frame the walker has
// pushed to reach the node currently being visited.
func (w *Walker) Stack() []Frame {
	out := make([]Frame, 0, len(w.stack)+1)
	out = append(out, w.section)
	out = append(out, w.stack...)
	return out
}

// LastDefinition reports the outcome of the most recent #define or #const
// the walker recorded. Valid only from within the BeforeNode/AfterNode
// callbacks for that same *ast.Define or *ast.Const node.
func (w *Walker) LastDefinition() DefinitionResult { return w.lastDef }

// InSectionNamed reports the name of the enclosing section, if any.
func (w *Walker) InSectionNamed() (string, bool) {
	if w.section.Kind == InSection {
		return w.section.Name, true
	}
	return "", false
}

func (w *Walker) pushFrame(f Frame)  { w.stack = append(w.stack, f) }
func (w *Walker) popFrame()          { w.stack = w.stack[:len(w.stack)-1] }

func (w *Walker) before(n ast.Node) {
	for _, v := range w.visitors {
		v.BeforeNode(w, n)
	}
}

func (w *Walker) after(n ast.Node) {
	for _, v := range w.visitors {
		v.AfterNode(w, n)
	}
}

// Walk runs the traversal over every top-level node of file.
func (w *Walker) Walk(file *ast.File) {
	w.walkTop(file.Nodes)
}

func (w *Walker) walkTop(nodes []ast.Node) {
	for _, n := range nodes {
		if sh, ok := n.(*ast.SectionHeader); ok {
			w.before(n)
			w.after(n)
			w.section = Frame{Kind: InSection, Name: sh.Name()}
			continue
		}
		w.walkNode(n)
	}
}

func (w *Walker) walkNodes(nodes []ast.Node) {
	for _, n := range nodes {
		w.walkNode(n)
	}
}

func (w *Walker) walkNode(n ast.Node) {
	switch v := n.(type) {
	case *ast.Define:
		redefines, shadows := w.table.DefineFlag(symtab.Definition{
			Name: v.Name.Text,
			Span: v.Name.Span,
		})
		w.lastDef = DefinitionResult{Redefines: redefines, ShadowsBuiltin: shadows}
		w.before(n)
		w.after(n)

	case *ast.Const:
		val, _ := strconv.ParseInt(v.Value.Text, 10, 32)
		redefines, shadows := w.table.DefineConst(symtab.Definition{
			Name:  v.Name.Text,
			Span:  v.Name.Span,
			Value: int32(val),
		})
		w.lastDef = DefinitionResult{Redefines: redefines, ShadowsBuiltin: shadows}
		w.before(n)
		w.after(n)

	case *ast.CommentNode:
		if v.Atom.Kind == ast.Comment {
			if lvl, ok := compat.Marker(v.Atom.Contents()); ok {
				w.table.SetLevel(lvl)
			}
		}
		w.before(n)
		w.after(n)

	case *ast.Command:
		w.before(n)
		if v.Block != nil {
			w.pushFrame(Frame{Kind: InCommandBlock, Name: v.Name.Text})
			for _, attr := range v.Block.Statements {
				w.before(attr)
				w.after(attr)
			}
			w.popFrame()
		}
		w.after(n)

	case *ast.IfChain:
		w.before(n)
		for i, b := range v.Branches {
			guardKind := "elseif"
			if i == 0 {
				guardKind = "if"
			}
			if b.Guard == nil {
				guardKind = "else"
			}
			w.pushFrame(Frame{Kind: InIf, BranchIndex: i, GuardKind: guardKind})
			w.walkNodes(b.Body)
			w.popFrame()
		}
		w.after(n)

	case *ast.RandomChain:
		w.before(n)
		if len(v.Fallback) > 0 {
			w.pushFrame(Frame{Kind: InRandom, BranchIndex: -1})
			w.walkNodes(v.Fallback)
			w.popFrame()
		}
		for i, b := range v.Branches {
			w.pushFrame(Frame{Kind: InRandom, BranchIndex: i})
			w.walkNodes(b.Body)
			w.popFrame()
		}
		w.after(n)

	default:
		// SectionHeader (only reachable here if nested, which the grammar
		// disallows), Include, CommentNode handled above: no children.
		w.before(n)
		w.after(n)
	}
}
