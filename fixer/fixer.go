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

// Package fixer applies non-conflicting suggestions to source text in a
// single pass (spec section 4.6). Replacements are ordered with
// github.com/tidwall/btree rather than sort.Slice, mirroring the teacher's
// use of an ordered interval structure (internal/interval) to keep spans
// in a deterministic, queryable order.
package fixer

import (
	"strings"

	"github.com/tidwall/btree"

	"github.com/rms-tools/rmslint/diag"
)

// edit is one replacement plus the order it was offered in, used only to
// break ties between replacements that start at the same offset.
type edit struct {
	diag.Replacement
	order int
}

func less(a, b edit) bool {
	if a.Span.Start != b.Span.Start {
		return a.Span.Start < b.Span.Start
	}
	return a.order < b.order
}

// Result is the outcome of one fixer pass.
type Result struct {
	Text    string
	Applied []diag.Replacement
	Dropped []diag.Replacement
}

// Apply builds the replacement set from every warning's AutoFix plus every
// suggestion in accepted (additional suggestions the caller has chosen to
// apply, e.g. from a code action), sorts them, and emits rewritten text.
// Conflicting replacements — those starting before the high-water mark left
// by an earlier one — are dropped (spec section 4.6, step 3).
func Apply(text string, warnings []diag.Warning, accepted []diag.Suggestion) Result {
	tree := btree.NewBTreeG(less)
	order := 0
	add := func(s diag.Suggestion) {
		for _, rep := range s.Replacements {
			tree.Set(edit{Replacement: rep, order: order})
			order++
		}
	}
	for _, w := range warnings {
		if w.AutoFix != nil {
			add(*w.AutoFix)
		}
	}
	for _, s := range accepted {
		add(s)
	}

	var b strings.Builder
	cursor := 0
	highWater := 0
	var applied, dropped []diag.Replacement

	tree.Scan(func(e edit) bool {
		rep := e.Replacement
		if rep.Span.Start < highWater || rep.Span.Start < 0 || rep.Span.End > len(text) || rep.Span.Start > rep.Span.End {
			dropped = append(dropped, rep)
			return true
		}
		if rep.Span.Start > cursor {
			b.WriteString(text[cursor:rep.Span.Start])
		}
		b.WriteString(rep.NewText)
		cursor = rep.Span.End
		highWater = rep.Span.End
		applied = append(applied, rep)
		return true
	})
	if cursor < len(text) {
		b.WriteString(text[cursor:])
	}

	return Result{Text: b.String(), Applied: applied, Dropped: dropped}
}
