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

// Package symtab holds the two user-writable tables a random-map-script can
// populate (`#define` flags, `#const` integer bindings) plus read-only
// access to the active compatibility level's built-in constants (spec
// section 3, "Symbol table").
//
// Scope is file-wide and linear from the point of definition: there is no
// block scoping, and — per spec section 9's design note — a definition
// inside an unreachable `if` branch still takes effect, because the walker
// is conservative and visits both branches unconditionally (spec section
// 9, "Symbol table across conditional branches"). Table does not implement
// that policy itself; it just records whatever the walker tells it to,
// in the order it's told.
package symtab

import (
	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/source"
)

// Definition records where a flag or constant was (re)defined, so a lint
// can point a redefined-symbol warning at both the original and the new
// definition.
type Definition struct {
	Name  string
	Span  source.Span
	Value int32 // meaningful only for Consts entries
}

// Table is the live symbol table for one walk. It is not safe for
// concurrent use; the walker owns it exclusively for the duration of one
// parse+lint pass (spec section 5).
type Table struct {
	level compat.Level

	flags  map[string][]Definition // history of every #define of this name, in order
	consts map[string][]Definition // history of every #const of this name, in order
}

// New creates an empty Table for the given initial compatibility level.
func New(level compat.Level) *Table {
	return &Table{
		level:  level,
		flags:  make(map[string][]Definition),
		consts: make(map[string][]Definition),
	}
}

// SetLevel updates the active compatibility level (the compat resolver
// calls this as it walks past marker comments).
func (t *Table) SetLevel(l compat.Level) { t.level = l }

// Level returns the currently active compatibility level.
func (t *Table) Level() compat.Level { return t.level }

// DefineFlag records a #define. It reports whether this redefines a flag
// already in the table (the caller — the walker — uses this to decide
// whether to emit redefined-symbol) and whether it shadows a built-in
// constant of the same name (shadow-builtin).
func (t *Table) DefineFlag(d Definition) (redefines, shadowsBuiltin bool) {
	_, shadowsBuiltin = compat.BuiltinConst(t.level, d.Name)
	if existing, ok := t.flags[d.Name]; ok && len(existing) > 0 {
		redefines = true
	}
	t.flags[d.Name] = append(t.flags[d.Name], d)
	return
}

// DefineConst records a #const. Same reporting contract as DefineFlag.
func (t *Table) DefineConst(d Definition) (redefines, shadowsBuiltin bool) {
	_, shadowsBuiltin = compat.BuiltinConst(t.level, d.Name)
	if existing, ok := t.consts[d.Name]; ok && len(existing) > 0 {
		redefines = true
	}
	t.consts[d.Name] = append(t.consts[d.Name], d)
	return
}

// HasFlag reports whether name has been #defined at any point observed so
// far (flags accumulate monotonically; there is no #undef in the language).
func (t *Table) HasFlag(name string) bool {
	return len(t.flags[name]) > 0
}

// ConstValue returns the most recently assigned value for a user #const,
// falling back to the active built-in table, in that order (a user
// definition always wins once it has occurred, matching the "shadowing
// permitted" rule in spec section 3).
func (t *Table) ConstValue(name string) (int32, bool) {
	if defs, ok := t.consts[name]; ok && len(defs) > 0 {
		return defs[len(defs)-1].Value, true
	}
	return compat.BuiltinConst(t.level, name)
}

// KnownSymbol reports whether name resolves to anything at all: a flag, a
// user constant, or a built-in constant at the active level. Used by the
// unknown-symbol lint.
func (t *Table) KnownSymbol(name string) bool {
	if t.HasFlag(name) {
		return true
	}
	if _, ok := t.ConstValue(name); ok {
		return true
	}
	return false
}
