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

// Package ast defines the atom stream and node tree produced by lexing and
// parsing a random-map-script file.
//
// Atoms are the smallest source-preserving lexical unit: every byte of the
// input is covered by exactly one atom, including whitespace and comments,
// so concatenating atom text in order reconstructs the original source
// exactly (the round-trip law). Nodes group atoms into the shapes the
// language defines: sections, commands, conditional and random chains.
//
// Position information lives entirely in [source.Span] values carried by
// atoms and nodes; neither atoms nor nodes hold a reference back to the
// tree that produced them, so a span remains meaningful after the tree
// itself has been discarded.
package ast

import "github.com/rms-tools/rmslint/source"

// Kind identifies what an [Atom] represents.
type Kind int

const (
	// Whitespace is a run of space, tab, newline, or carriage-return bytes.
	Whitespace Kind = iota
	// Comment is a /* ... */ run, text including the delimiters is kept in
	// the atom's Text but Contents strips them.
	Comment
	// Section is a `<NAME>` section header.
	Section
	// Command is a bare word naming a command or, inside a block, an
	// attribute statement.
	Command
	// OpenBlock is the `{` that begins a command's attribute block.
	OpenBlock
	// CloseBlock is the `}` that ends a command's attribute block.
	CloseBlock
	// Number is an integer literal argument, optionally signed.
	Number
	// Word is a bare identifier used as a command or attribute argument.
	Word
	// Define is the `#define` preprocessor word.
	Define
	// Const is the `#const` preprocessor word.
	Const
	// Include is the `#include_drs` (or `#include`) preprocessor word.
	Include
	// If is the `if` keyword.
	If
	// ElseIf is the `elseif` keyword.
	ElseIf
	// Else is the `else` keyword.
	Else
	// EndIf is the `endif` keyword.
	EndIf
	// StartRandom is the `start_random` keyword.
	StartRandom
	// PercentChance is the `percent_chance` keyword.
	PercentChance
	// EndRandom is the `end_random` keyword.
	EndRandom
	// Other is anything the lexer could not classify, including the tail
	// of the file following an unterminated block comment.
	Other
	// EOF marks end of input. Every atom stream ends with exactly one.
	EOF
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case Comment:
		return "Comment"
	case Section:
		return "Section"
	case Command:
		return "Command"
	case OpenBlock:
		return "OpenBlock"
	case CloseBlock:
		return "CloseBlock"
	case Number:
		return "Number"
	case Word:
		return "Word"
	case Define:
		return "Define"
	case Const:
		return "Const"
	case Include:
		return "Include"
	case If:
		return "If"
	case ElseIf:
		return "ElseIf"
	case Else:
		return "Else"
	case EndIf:
		return "EndIf"
	case StartRandom:
		return "StartRandom"
	case PercentChance:
		return "PercentChance"
	case EndRandom:
		return "EndRandom"
	case Other:
		return "Other"
	case EOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Atom is the smallest source-preserving lexical unit. Text is the verbatim
// source bytes covered by Span; for Comment atoms this includes the /* */
// delimiters (see [Atom.Contents]).
type Atom struct {
	Kind Kind
	Span source.Span
	Text string
}

// Contents returns a Comment atom's text with the delimiters trimmed. It
// panics if called on a non-Comment atom, mirroring the teacher's AST node
// constructors that reject malformed callers rather than return a zero
// value that would silently mislead a lint.
func (a Atom) Contents() string {
	if a.Kind != Comment {
		panic("ast: Contents called on non-Comment atom")
	}
	text := a.Text
	if len(text) >= 4 && text[:2] == "/*" && text[len(text)-2:] == "*/" {
		return text[2 : len(text)-2]
	}
	return text
}

// IsTrivia reports whether the atom is whitespace or a comment: the kinds
// the parser skips over when looking for the next meaningful atom, but
// which the fixer and a future formatter still need to reproduce losslessly.
func (a Atom) IsTrivia() bool {
	return a.Kind == Whitespace || a.Kind == Comment
}

// IsPreproc reports whether the atom begins a preprocessor construct.
func (a Atom) IsPreproc() bool {
	switch a.Kind {
	case Define, Const, Include:
		return true
	default:
		return false
	}
}
