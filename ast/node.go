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

package ast

import "github.com/rms-tools/rmslint/source"

// Node is implemented by every element of the parse tree. A node's Span is
// always the union of the spans of its constituent atoms and child nodes;
// nodes never overlap except by strict containment.
//
// User code should not implement Node; the concrete types in this package
// are the only valid implementations.
type Node interface {
	Span() source.Span
	node() // seals the interface to this package
}

// File is the root of a parsed document: an ordered sequence of top-level
// nodes plus every trivia (whitespace and comment) atom the lexer produced,
// kept so a caller can reconstruct the source exactly.
type File struct {
	Name  string
	Nodes []Node
	Atoms []Atom // the complete, unfiltered atom stream, in source order
}

// SectionHeader is a top-level `<NAME>` declaration. A section's body is
// implicit: it runs from just after the header to the next SectionHeader
// or end of file, so SectionHeader itself carries no children.
type SectionHeader struct {
	Header Atom
}

func (n *SectionHeader) Span() source.Span { return n.Header.Span }
func (*SectionHeader) node()               {}

// Name returns the section name with the angle brackets stripped.
func (n *SectionHeader) Name() string {
	t := n.Header.Text
	if len(t) >= 2 && t[0] == '<' && t[len(t)-1] == '>' {
		return t[1 : len(t)-1]
	}
	return t
}

// Block is the brace-delimited attribute block that may follow a command.
type Block struct {
	Open       Atom
	Statements []*Attribute
	Close      *Atom // nil if the closing brace was never found (recovered)
}

func (n *Block) Span() source.Span {
	end := n.Open.Span
	if n.Close != nil {
		end = source.Union(end, n.Close.Span)
	} else if len(n.Statements) > 0 {
		end = source.Union(end, n.Statements[len(n.Statements)-1].Span())
	}
	return end
}
func (*Block) node() {}

// Attribute is a single statement inside a command's attribute block: a
// name followed by zero or more argument atoms.
type Attribute struct {
	Name Atom
	Args []Atom
}

func (n *Attribute) Span() source.Span {
	s := n.Name.Span
	for _, a := range n.Args {
		s = source.Union(s, a.Span)
	}
	return s
}
func (*Attribute) node() {}

// Command is a top-level (or section-level) command: a name, its arguments,
// and an optional attribute block.
type Command struct {
	Name  Atom
	Args  []Atom
	Block *Block // nil if the command has no attribute block
}

func (n *Command) Span() source.Span {
	s := n.Name.Span
	for _, a := range n.Args {
		s = source.Union(s, a.Span)
	}
	if n.Block != nil {
		s = source.Union(s, n.Block.Span())
	}
	return s
}
func (*Command) node() {}

// CommentNode is a standalone comment that the parser did not attribute to
// any other node (e.g. one that sits between top-level constructs).
type CommentNode struct {
	Atom Atom
}

func (n *CommentNode) Span() source.Span { return n.Atom.Span }
func (*CommentNode) node()               {}

// Include is an `#include_drs` or `#include` preprocessor directive.
type Include struct {
	Keyword Atom
	Args    []Atom
}

func (n *Include) Span() source.Span {
	s := n.Keyword.Span
	for _, a := range n.Args {
		s = source.Union(s, a.Span)
	}
	return s
}
func (*Include) node() {}

// Define is a `#define NAME` preprocessor directive introducing a flag.
type Define struct {
	Keyword Atom
	Name    Atom
}

func (n *Define) Span() source.Span { return source.Union(n.Keyword.Span, n.Name.Span) }
func (*Define) node()               {}

// Const is a `#const NAME VALUE` preprocessor directive binding an integer.
type Const struct {
	Keyword Atom
	Name    Atom
	Value   Atom
}

func (n *Const) Span() source.Span { return source.Union(n.Keyword.Span, n.Value.Span) }
func (*Const) node()               {}

// IfBranch is one arm of an [IfChain]: `if`/`elseif` carry a Guard flag
// name, `else` does not.
type IfBranch struct {
	Keyword Atom // If, ElseIf, or Else
	Guard   *Atom
	Body    []Node
}

func (b *IfBranch) Span() source.Span {
	s := b.Keyword.Span
	if b.Guard != nil {
		s = source.Union(s, b.Guard.Span)
	}
	for _, n := range b.Body {
		s = source.Union(s, n.Span())
	}
	return s
}

// IfChain is an `if`/`elseif`/`else`/`endif` conditional. Conservative
// analysis (walker.Walker) visits every branch regardless of guard value.
type IfChain struct {
	Branches []*IfBranch
	EndIf    *Atom // nil if recovery synthesized a missing endif
}

func (n *IfChain) Span() source.Span {
	s := n.Branches[0].Span()
	for _, b := range n.Branches[1:] {
		s = source.Union(s, b.Span())
	}
	if n.EndIf != nil {
		s = source.Union(s, n.EndIf.Span)
	}
	return s
}
func (*IfChain) node() {}

// ChanceBranch is one `percent_chance N` arm of a [RandomChain].
type ChanceBranch struct {
	Keyword Atom
	Percent *Atom // nil if the percentage argument is missing
	Body    []Node
}

func (b *ChanceBranch) Span() source.Span {
	s := b.Keyword.Span
	if b.Percent != nil {
		s = source.Union(s, b.Percent.Span)
	}
	for _, n := range b.Body {
		s = source.Union(s, n.Span())
	}
	return s
}

// RandomChain is a `start_random`/`percent_chance`/`end_random` block.
// Fallback holds any statements preceding the first `percent_chance`
// branch: commands that run regardless of which branch is chosen.
// Anything after the last branch up to `end_random` belongs to that
// branch's own Body, not to Fallback.
type RandomChain struct {
	Start    Atom
	Branches []*ChanceBranch
	Fallback []Node
	End      *Atom // nil if recovery synthesized a missing end_random
}

func (n *RandomChain) Span() source.Span {
	s := n.Start.Span
	for _, b := range n.Branches {
		s = source.Union(s, b.Span())
	}
	for _, f := range n.Fallback {
		s = source.Union(s, f.Span())
	}
	if n.End != nil {
		s = source.Union(s, n.End.Span)
	}
	return s
}
func (*RandomChain) node() {}
