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

// Package lint implements the fixed, close-ended set of checks described
// in spec section 4.5, plus the `rmslint-disable`/`rmslint-enable`
// suppression-comment mechanism. Each [Lint] is a stateless callback
// bundle; any per-document state lives on the [walker.Walker] or the
// [Engine] itself, never on the Lint value (spec: "any per-document state
// is held by the engine and passed to callbacks").
package lint

import (
	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/symtab"
	"github.com/rms-tools/rmslint/walker"
)

// Lint is one named, independently-toggleable check. ID doubles as the
// warning code and the suppression-comment identifier.
type Lint interface {
	ID() string
	BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag)
	AfterNode(w *walker.Walker, n ast.Node, r *diag.Bag)
}

// Base is embedded by lints that only need one of the two callbacks, so
// they don't have to write an empty stub for the other.
type Base struct{}

func (Base) BeforeNode(*walker.Walker, ast.Node, *diag.Bag) {}
func (Base) AfterNode(*walker.Walker, ast.Node, *diag.Bag)  {}

// All returns every lint the engine knows about, in the order of spec
// section 4.5's table (plus number-out-of-range, named in section 4.1).
func All() []Lint {
	return []Lint{
		unknownCommand{},
		argCount{},
		argType{},
		numberOutOfRange{},
		unknownAttribute{},
		sumOfChances{},
		actorOutsideSection{},
		incompatibleFeature{},
		redefinedSymbol{},
		shadowBuiltin{},
		unknownSymbol{},
		commentContents{},
		deadBranch{},
	}
}

// visitorAdapter lets an Engine register each Lint as a walker.Visitor
// while still giving every lint direct access to the engine's Bag.
type visitorAdapter struct {
	lint Lint
	bag  *diag.Bag
}

func (a visitorAdapter) BeforeNode(w *walker.Walker, n ast.Node) { a.lint.BeforeNode(w, n, a.bag) }
func (a visitorAdapter) AfterNode(w *walker.Walker, n ast.Node)  { a.lint.AfterNode(w, n, a.bag) }

// Engine runs a set of enabled lints over one parsed file, merging their
// findings with whatever lex/parse warnings already live in parseBag, and
// dropping anything silenced by a suppression comment.
type Engine struct {
	lints []Lint
}

// NewEngine builds an engine over lints, or over [All] if lints is empty.
func NewEngine(lints ...Lint) *Engine {
	if len(lints) == 0 {
		lints = All()
	}
	return &Engine{lints: lints}
}

// Run walks file's nodes with every configured lint attached, then returns
// parseBag's existing warnings plus the lints' findings, combined and
// filtered through file's suppression comments. It returns the walker so
// the caller can inspect final state (e.g. the compatibility level in
// effect at end of file).
func (e *Engine) Run(file *ast.File, table *symtab.Table, parseBag *diag.Bag) (*diag.Bag, *walker.Walker) {
	lintBag := &diag.Bag{}
	visitors := make([]walker.Visitor, 0, len(e.lints))
	for _, l := range e.lints {
		visitors = append(visitors, visitorAdapter{lint: l, bag: lintBag})
	}
	w := walker.New(table, visitors...)
	w.Walk(file)

	suppressions := buildSuppressions(file.Atoms)

	out := &diag.Bag{}
	for _, warn := range parseBag.All() {
		if !isSuppressed(suppressions, warn.Code, warn.PrimarySpan().Start) {
			out.Add(warn)
		}
	}
	for _, warn := range lintBag.All() {
		if !isSuppressed(suppressions, warn.Code, warn.PrimarySpan().Start) {
			out.Add(warn)
		}
	}
	return out, w
}
