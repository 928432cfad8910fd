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

// Package lexer streams a random-map-script source file as a sequence of
// [ast.Atom]s carrying byte-accurate spans. There are no operators and no
// string literals in the language, so the lexer's job is simpler than a
// general-purpose one: classify whitespace, comments, the small fixed set
// of keywords, braces, a `<section>` header, and bare words/numbers.
//
// The lexer never aborts: a malformed atom is recovered as an [ast.Other]
// atom plus an error [diag.Warning]. For an unterminated block comment the
// Other atom spans to end of file and the stream ends there; a `<` with no
// `>` on its line becomes a one-byte Other atom and lexing continues.
// This mirrors the teacher's runeReader, which always produces a rune or a
// definitive io.EOF/error rather than leaving the caller in an ambiguous
// state.
package lexer

import (
	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/source"
)

var keywords = map[string]ast.Kind{
	"if":             ast.If,
	"elseif":         ast.ElseIf,
	"else":           ast.Else,
	"endif":          ast.EndIf,
	"start_random":   ast.StartRandom,
	"percent_chance": ast.PercentChance,
	"end_random":     ast.EndRandom,
}

var preprocKeywords = map[string]ast.Kind{
	"#define":      ast.Define,
	"#const":       ast.Const,
	"#include_drs": ast.Include,
	"#include":     ast.Include,
}

// command-promoting predecessor kinds: a bare Word atom is promoted to
// Kind Command when it is the first token of a new statement, which the
// lexer recognizes two ways: it follows one of these boundary kinds
// (regardless of an intervening newline), or a newline was crossed since
// the last meaningful atom at all. Either way, the one exception is the
// guard word directly after `if`/`elseif`, which is always a Word.
func isBoundaryKind(k ast.Kind) bool {
	switch k {
	case ast.Section, ast.OpenBlock, ast.CloseBlock, ast.EndIf, ast.EndRandom, ast.Else:
		return true
	default:
		return false
	}
}

// Lexer scans one file's text into atoms, one at a time.
type Lexer struct {
	file string
	text string
	pos  int

	lastMeaningful ast.Kind
	sawMeaningful  bool
	pendingNewline bool     // a newline was seen since the last meaningful atom
	expectGuard    bool     // the next Word atom is an if/elseif guard, not a command

	bag  diag.Bag
	done bool
}

// New creates a Lexer over text from the named file.
func New(file, text string) *Lexer {
	return &Lexer{file: file, text: text}
}

// Next returns the next atom in the stream, or ok == false once the EOF
// atom has already been returned.
func (l *Lexer) Next() (a ast.Atom, ok bool) {
	if l.done {
		return ast.Atom{}, false
	}

	switch {
	case l.pos >= len(l.text):
		a = ast.Atom{Kind: ast.EOF, Span: l.span(l.pos, l.pos), Text: ""}
		l.done = true
		return a, true
	case isSpace(l.text[l.pos]):
		a = l.lexWhitespace()
	case l.text[l.pos] == '/' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '*':
		a = l.lexComment()
	case l.text[l.pos] == '<':
		a = l.lexSection()
	case l.text[l.pos] == '{':
		a = l.single(ast.OpenBlock)
	case l.text[l.pos] == '}':
		a = l.single(ast.CloseBlock)
	case l.text[l.pos] == '#':
		a = l.lexPreproc()
	case isNumberStart(l.text, l.pos):
		a = l.lexNumber()
	default:
		a = l.lexWord()
	}

	switch a.Kind {
	case ast.Whitespace:
		// handled inside lexWhitespace, which sets pendingNewline directly
	case ast.Comment:
		// comments don't reset pendingNewline or count as a boundary
	default:
		if a.Kind == ast.If || a.Kind == ast.ElseIf {
			l.expectGuard = true
		} else if l.expectGuard {
			l.expectGuard = false
		}
		l.lastMeaningful = a.Kind
		l.sawMeaningful = true
		l.pendingNewline = false
	}
	return a, true
}

// Bag returns the warnings accumulated while scanning (currently only
// malformed-atom recoveries; lints against well-formed atoms live in the
// lint engine, not here).
func (l *Lexer) Bag() *diag.Bag { return &l.bag }

// LexAll drains a Lexer into a complete atom slice plus its warning bag.
// The round-trip law (spec section 8, property 1) holds over this slice:
// concatenating every atom's Text reproduces the input exactly.
func LexAll(file, text string) ([]ast.Atom, *diag.Bag) {
	l := New(file, text)
	var atoms []ast.Atom
	for {
		a, ok := l.Next()
		if !ok {
			break
		}
		atoms = append(atoms, a)
		if a.Kind == ast.EOF {
			break
		}
	}
	return atoms, l.Bag()
}

func (l *Lexer) span(start, end int) source.Span {
	return source.Span{File: l.file, Start: start, End: end}
}

func (l *Lexer) single(k ast.Kind) ast.Atom {
	start := l.pos
	l.pos++
	return ast.Atom{Kind: k, Span: l.span(start, l.pos), Text: l.text[start:l.pos]}
}

func (l *Lexer) lexWhitespace() ast.Atom {
	start := l.pos
	for l.pos < len(l.text) && isSpace(l.text[l.pos]) {
		if l.text[l.pos] == '\n' {
			l.pendingNewline = true
		}
		l.pos++
	}
	return ast.Atom{Kind: ast.Whitespace, Span: l.span(start, l.pos), Text: l.text[start:l.pos]}
}

// lexComment scans a /* ... */ run. Nesting is not supported: the first
// */ closes the comment, per spec section 4.1. An unterminated comment
// consumes the rest of the file as an Other atom and records an error.
func (l *Lexer) lexComment() ast.Atom {
	start := l.pos
	l.pos += 2 // "/*"
	for l.pos < len(l.text) {
		if l.text[l.pos] == '*' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '/' {
			l.pos += 2
			return ast.Atom{Kind: ast.Comment, Span: l.span(start, l.pos), Text: l.text[start:l.pos]}
		}
		l.pos++
	}
	// unterminated: recover by treating the remainder of the file as Other.
	end := len(l.text)
	sp := l.span(start, end)
	l.bag.Add(diag.Warning{
		Severity: diag.Error,
		Code:     "unterminated-comment",
		Message:  "block comment is never closed with `*/`",
		Labels:   []diag.Label{{Span: sp, Message: "comment starts here", Role: diag.Primary}},
	})
	l.pos = end
	return ast.Atom{Kind: ast.Other, Span: sp, Text: l.text[start:end]}
}

// lexSection scans a `<NAME>` header. A `<` that never finds a matching
// `>` before end of line or end of file is recovered as an Other atom
// covering just the `<`; the rest of the line is re-lexed normally so a
// single stray `<` does not swallow the remainder of the file.
func (l *Lexer) lexSection() ast.Atom {
	start := l.pos
	i := l.pos + 1
	for i < len(l.text) && l.text[i] != '>' && l.text[i] != '\n' {
		i++
	}
	if i < len(l.text) && l.text[i] == '>' {
		l.pos = i + 1
		return ast.Atom{Kind: ast.Section, Span: l.span(start, l.pos), Text: l.text[start:l.pos]}
	}
	l.pos = start + 1
	sp := l.span(start, l.pos)
	l.bag.Add(diag.Warning{
		Severity: diag.Error,
		Code:     "unterminated-section",
		Message:  "`<` is never closed with `>` on this line",
		Labels:   []diag.Label{{Span: sp, Message: "here", Role: diag.Primary}},
	})
	return ast.Atom{Kind: ast.Other, Span: sp, Text: l.text[start:l.pos]}
}

func (l *Lexer) lexPreproc() ast.Atom {
	start := l.pos
	i := l.pos + 1
	for i < len(l.text) && isIdentByte(l.text[i]) {
		i++
	}
	word := l.text[start:i]
	l.pos = i
	kind, ok := preprocKeywords[word]
	if !ok {
		kind = ast.Other
	}
	return ast.Atom{Kind: kind, Span: l.span(start, l.pos), Text: word}
}

func (l *Lexer) lexNumber() ast.Atom {
	start := l.pos
	if l.text[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.text) && isDigit(l.text[l.pos]) {
		l.pos++
	}
	return ast.Atom{Kind: ast.Number, Span: l.span(start, l.pos), Text: l.text[start:l.pos]}
}

func (l *Lexer) lexWord() ast.Atom {
	start := l.pos
	for l.pos < len(l.text) && isIdentByte(l.text[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		// A single byte the lexer has no rule for (punctuation the
		// language doesn't define); consume it as Other and carry on.
		l.pos++
		return ast.Atom{Kind: ast.Other, Span: l.span(start, l.pos), Text: l.text[start:l.pos]}
	}
	word := l.text[start:l.pos]
	sp := l.span(start, l.pos)
	if kind, ok := keywords[word]; ok {
		return ast.Atom{Kind: kind, Span: sp, Text: word}
	}
	if l.expectGuard {
		return ast.Atom{Kind: ast.Word, Span: sp, Text: word}
	}
	if !l.sawMeaningful || l.pendingNewline || isBoundaryKind(l.lastMeaningful) {
		return ast.Atom{Kind: ast.Command, Span: sp, Text: word}
	}
	return ast.Atom{Kind: ast.Word, Span: sp, Text: word}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || isDigit(b)
}

func isNumberStart(text string, pos int) bool {
	if isDigit(text[pos]) {
		return true
	}
	if text[pos] == '-' && pos+1 < len(text) && isDigit(text[pos+1]) {
		return true
	}
	return false
}
