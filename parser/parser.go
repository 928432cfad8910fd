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

// Package parser folds the atom stream produced by package lexer into a
// tree of [ast.Node]s. It is a single forward pass: the parser never
// backtracks and it never aborts, no matter how malformed the input is
// (spec section 4.2, section 7, "Totality"). Recovery is always local:
// a missing closer is synthesized, a stray closer is dropped, and parsing
// continues from the next atom.
package parser

import (
	"fmt"

	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/lexer"
	"github.com/rms-tools/rmslint/source"
)

// Parser holds the state of one parse.
type Parser struct {
	file   string
	atoms  []ast.Atom
	pos    int
	bag    *diag.Bag
	length int
}

// Parse lexes and parses text from the named file in one call, returning
// the resulting tree and the combined lex+parse warning bag.
func Parse(file, text string) (*ast.File, *diag.Bag) {
	atoms, bag := lexer.LexAll(file, text)
	p := &Parser{file: file, atoms: atoms, bag: bag, length: len(text)}
	nodes := p.parseTop()
	return &ast.File{Name: file, Nodes: nodes, Atoms: atoms}, bag
}

// eofSpan is the zero-width span at end of file, where autofixes that
// insert a missing closer anchor their replacement.
func (p *Parser) eofSpan() source.Span {
	return source.Span{File: p.file, Start: p.length, End: p.length}
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.atoms) || p.atoms[p.pos].Kind == ast.EOF
}

// skipWS advances past Whitespace atoms only; Comment atoms are left in
// place, since at every call site a Comment is itself a meaningful thing
// (either a standalone node, or something collectArgs chooses to skip).
func (p *Parser) skipWS() {
	for p.pos < len(p.atoms) && p.atoms[p.pos].Kind == ast.Whitespace {
		p.pos++
	}
}

// peekKind returns the kind of the next non-whitespace atom without
// consuming it.
func (p *Parser) peekKind() (ast.Kind, bool) {
	p.skipWS()
	if p.atEnd() {
		return ast.EOF, false
	}
	return p.atoms[p.pos].Kind, true
}

func (p *Parser) peek() ast.Atom {
	p.skipWS()
	if p.pos >= len(p.atoms) {
		return ast.Atom{Kind: ast.EOF, Span: p.eofSpan()}
	}
	return p.atoms[p.pos]
}

// advance consumes and returns the current non-whitespace atom.
func (p *Parser) advance() ast.Atom {
	a := p.peek()
	if p.pos < len(p.atoms) && p.atoms[p.pos].Kind != ast.EOF {
		p.pos++
	}
	return a
}

// takeArgAtom consumes the next atom if it is a Word or Number (the only
// kinds the grammar ever uses as an argument), skipping any comments in
// between. It reports ok == false, without consuming anything, if the
// next meaningful atom is not an argument shape.
func (p *Parser) takeArgAtom() (ast.Atom, bool) {
	for {
		p.skipWS()
		if p.atEnd() {
			return ast.Atom{}, false
		}
		if p.atoms[p.pos].Kind == ast.Comment {
			p.pos++
			continue
		}
		break
	}
	a := p.atoms[p.pos]
	if a.Kind != ast.Word && a.Kind != ast.Number {
		return ast.Atom{}, false
	}
	p.pos++
	return a, true
}

// collectArgs gathers every consecutive argument atom (spec: "0-N argument
// atoms"), skipping interleaved comments, stopping at the first atom that
// isn't itself an argument.
func (p *Parser) collectArgs() []ast.Atom {
	var args []ast.Atom
	for {
		a, ok := p.takeArgAtom()
		if !ok {
			return args
		}
		args = append(args, a)
	}
}

func (p *Parser) stray(code string, a ast.Atom, what string) {
	p.bag.Add(diag.Warning{
		Severity: diag.Error,
		Code:     code,
		Message:  fmt.Sprintf("stray `%s` with no matching opener", what),
		Labels:   []diag.Label{{Span: a.Span, Message: "here", Role: diag.Primary}},
	})
}

// parseTop parses the root sequence of top-level nodes.
func (p *Parser) parseTop() []ast.Node {
	return p.parseBody(nil)
}

// parseBody parses a sequence of statements until end of input or until
// stop reports true for the upcoming atom's kind (stop may be nil at the
// top level, where nothing but EOF ends the sequence).
func (p *Parser) parseBody(stop func(ast.Kind) bool) []ast.Node {
	var nodes []ast.Node
	for {
		k, ok := p.peekKind()
		if !ok {
			return nodes
		}
		if stop != nil && stop(k) {
			return nodes
		}
		if n := p.parseOne(); n != nil {
			nodes = append(nodes, n)
		}
	}
}

func (p *Parser) parseOne() ast.Node {
	a := p.peek()
	switch a.Kind {
	case ast.Comment:
		p.pos++
		return &ast.CommentNode{Atom: a}
	case ast.Section:
		p.pos++
		return &ast.SectionHeader{Header: a}
	case ast.Define:
		return p.parseDefine()
	case ast.Const:
		return p.parseConst()
	case ast.Include:
		return p.parseInclude()
	case ast.If:
		return p.parseIfChain()
	case ast.StartRandom:
		return p.parseRandomChain()
	case ast.Command, ast.Word:
		return p.parseCommand()
	case ast.ElseIf:
		p.pos++
		p.stray("stray-elseif", a, "elseif")
		return nil
	case ast.Else:
		p.pos++
		p.stray("stray-else", a, "else")
		return nil
	case ast.EndIf:
		p.pos++
		p.stray("stray-endif", a, "endif")
		return nil
	case ast.PercentChance:
		p.pos++
		p.stray("stray-percent-chance", a, "percent_chance")
		return nil
	case ast.EndRandom:
		p.pos++
		p.stray("stray-end-random", a, "end_random")
		return nil
	case ast.CloseBlock:
		p.pos++
		p.bag.Add(diag.Warning{
			Severity: diag.Error,
			Code:     "unbalanced-block",
			Message:  "stray `}` with no matching `{`",
			Labels:   []diag.Label{{Span: a.Span, Message: "here", Role: diag.Primary}},
		})
		return nil
	default:
		// Number, Other, OpenBlock, EOF in an unexpected position.
		p.pos++
		p.bag.Add(diag.Warning{
			Severity: diag.Error,
			Code:     "unexpected-atom",
			Message:  fmt.Sprintf("unexpected %s here", a.Kind),
			Labels:   []diag.Label{{Span: a.Span, Message: "here", Role: diag.Primary}},
		})
		return nil
	}
}

func (p *Parser) parseCommand() ast.Node {
	name := p.advance()
	args := p.collectArgs()
	var block *ast.Block
	if k, ok := p.peekKind(); ok && k == ast.OpenBlock {
		block = p.parseBlock()
	}
	return &ast.Command{Name: name, Args: args, Block: block}
}

func (p *Parser) parseBlock() *ast.Block {
	open := p.advance()
	var stmts []*ast.Attribute
	for {
		p.skipWS()
		if p.atEnd() {
			p.bag.Add(diag.Warning{
				Severity: diag.Error,
				Code:     "unbalanced-block",
				Message:  "`{` is missing a matching `}`",
				Labels:   []diag.Label{{Span: open.Span, Message: "block opened here", Role: diag.Primary}},
			})
			return &ast.Block{Open: open, Statements: stmts, Close: nil}
		}
		k := p.atoms[p.pos].Kind
		if k == ast.Comment {
			p.pos++
			continue
		}
		if k == ast.CloseBlock {
			close := p.advance()
			return &ast.Block{Open: open, Statements: stmts, Close: &close}
		}
		// Anything other than a well-formed attribute statement still
		// gets consumed as one, permissively: the lint layer flags
		// disallowed attributes, the parser just builds structure.
		attrName := p.advance()
		attrArgs := p.collectArgs()
		stmts = append(stmts, &ast.Attribute{Name: attrName, Args: attrArgs})
	}
}

func (p *Parser) parseDefine() ast.Node {
	kw := p.advance()
	name, ok := p.takeArgAtom()
	if !ok {
		p.bag.Add(diag.Warning{
			Severity: diag.Error,
			Code:     "missing-define-name",
			Message:  "`#define` is missing the flag name to define",
			Labels:   []diag.Label{{Span: kw.Span, Message: "here", Role: diag.Primary}},
		})
		name = ast.Atom{Kind: ast.Other, Span: source.Span{File: p.file, Start: kw.Span.End, End: kw.Span.End}}
	}
	return &ast.Define{Keyword: kw, Name: name}
}

func (p *Parser) parseConst() ast.Node {
	kw := p.advance()
	name, ok := p.takeArgAtom()
	if !ok {
		p.bag.Add(diag.Warning{
			Severity: diag.Error,
			Code:     "missing-const-name",
			Message:  "`#const` is missing the constant name to define",
			Labels:   []diag.Label{{Span: kw.Span, Message: "here", Role: diag.Primary}},
		})
		name = ast.Atom{Kind: ast.Other, Span: source.Span{File: p.file, Start: kw.Span.End, End: kw.Span.End}}
	}
	value, ok := p.takeArgAtom()
	if !ok {
		p.bag.Add(diag.Warning{
			Severity: diag.Error,
			Code:     "missing-const-value",
			Message:  "`#const` is missing the integer value to bind",
			Labels:   []diag.Label{{Span: name.Span, Message: "constant named here", Role: diag.Primary}},
		})
		value = ast.Atom{Kind: ast.Other, Span: source.Span{File: p.file, Start: name.Span.End, End: name.Span.End}}
	}
	return &ast.Const{Keyword: kw, Name: name, Value: value}
}

func (p *Parser) parseInclude() ast.Node {
	kw := p.advance()
	args := p.collectArgs()
	return &ast.Include{Keyword: kw, Args: args}
}

func isIfBoundary(k ast.Kind) bool {
	return k == ast.ElseIf || k == ast.Else || k == ast.EndIf
}

func (p *Parser) parseIfChain() ast.Node {
	kw := p.advance()
	guard, ok := p.takeArgAtom()
	var guardPtr *ast.Atom
	if ok {
		guardPtr = &guard
	} else {
		p.bag.Add(diag.Warning{
			Severity: diag.Error,
			Code:     "missing-if-guard",
			Message:  "`if` is missing the flag it tests",
			Labels:   []diag.Label{{Span: kw.Span, Message: "here", Role: diag.Primary}},
		})
	}
	body := p.parseBody(isIfBoundary)
	chain := &ast.IfChain{Branches: []*ast.IfBranch{{Keyword: kw, Guard: guardPtr, Body: body}}}

	sawElse := false
	for {
		k, ok := p.peekKind()
		if !ok {
			break
		}
		switch k {
		case ast.ElseIf:
			kw2 := p.advance()
			g, ok2 := p.takeArgAtom()
			var gPtr *ast.Atom
			if ok2 {
				gPtr = &g
			} else {
				p.bag.Add(diag.Warning{
					Severity: diag.Error,
					Code:     "missing-if-guard",
					Message:  "`elseif` is missing the flag it tests",
					Labels:   []diag.Label{{Span: kw2.Span, Message: "here", Role: diag.Primary}},
				})
			}
			body2 := p.parseBody(isIfBoundary)
			chain.Branches = append(chain.Branches, &ast.IfBranch{Keyword: kw2, Guard: gPtr, Body: body2})
			continue
		case ast.Else:
			kw2 := p.advance()
			sawElse = true
			body2 := p.parseBody(isIfBoundary)
			chain.Branches = append(chain.Branches, &ast.IfBranch{Keyword: kw2, Body: body2})
			continue
		case ast.EndIf:
			end := p.advance()
			chain.EndIf = &end
			return chain
		}
		break
	}
	_ = sawElse // dead-branch detection happens in the lint layer, not here.

	sp := p.eofSpan()
	p.bag.Add(diag.Warning{
		Severity: diag.Error,
		Code:     "unbalanced-if",
		Message:  "`if` is missing a matching `endif`",
		Labels:   []diag.Label{{Span: chain.Branches[0].Keyword.Span, Message: "if opened here", Role: diag.Primary}},
		AutoFix: &diag.Suggestion{
			Message:      "insert missing `endif`",
			Replacements: []diag.Replacement{{Span: sp, NewText: "\nendif\n"}},
		},
	})
	return chain
}

func isRandomBoundary(k ast.Kind) bool {
	return k == ast.PercentChance || k == ast.EndRandom
}

func (p *Parser) parseRandomChain() ast.Node {
	start := p.advance()
	chain := &ast.RandomChain{Start: start}
	chain.Fallback = p.parseBody(isRandomBoundary)

	for {
		k, ok := p.peekKind()
		if !ok {
			break
		}
		switch k {
		case ast.PercentChance:
			kw := p.advance()
			pct, ok2 := p.takeArgAtom()
			var pctPtr *ast.Atom
			if ok2 {
				pctPtr = &pct
			} else {
				p.bag.Add(diag.Warning{
					Severity: diag.Error,
					Code:     "missing-percent-chance-value",
					Message:  "`percent_chance` is missing its percentage",
					Labels:   []diag.Label{{Span: kw.Span, Message: "here", Role: diag.Primary}},
				})
			}
			body := p.parseBody(isRandomBoundary)
			chain.Branches = append(chain.Branches, &ast.ChanceBranch{Keyword: kw, Percent: pctPtr, Body: body})
			continue
		case ast.EndRandom:
			end := p.advance()
			chain.End = &end
			return chain
		}
		break
	}

	sp := p.eofSpan()
	p.bag.Add(diag.Warning{
		Severity: diag.Error,
		Code:     "unbalanced-random",
		Message:  "`start_random` is missing a matching `end_random`",
		Labels:   []diag.Label{{Span: chain.Start.Span, Message: "start_random opened here", Role: diag.Primary}},
		AutoFix: &diag.Suggestion{
			Message:      "insert missing `end_random`",
			Replacements: []diag.Replacement{{Span: sp, NewText: "\nend_random\n"}},
		},
	})
	return chain
}
