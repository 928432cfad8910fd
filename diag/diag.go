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

// Package diag models the warnings the analysis pipeline produces: values,
// never Go errors, that carry enough source information (spans, labels,
// suggestions) to survive the parse that produced them.
//
// The split mirrors the teacher's reporter/report2 packages: [Warning] here
// plays the role of report2.Diagnostic, and [Bag] plays the role of
// reporter.Handler, except a Bag never aborts a pass — lex/parse/lint
// errors are always recoverable (spec section 7).
package diag

import (
	"fmt"

	"github.com/rms-tools/rmslint/source"
)

// Severity is how serious a warning is.
type Severity int8

const (
	Hint Severity = 1 + iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Hint:
		return "hint"
	case Warn:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Role distinguishes a [Label] that points at the crux of a warning from
// one that merely provides supporting context.
type Role int8

const (
	Primary Role = 1 + iota
	Secondary
)

// Label attaches a short message to a span within a warning.
type Label struct {
	Span    source.Span
	Message string
	Role    Role
}

// Replacement is a single span-and-text edit. Replacements within one
// Suggestion must be pairwise non-overlapping.
type Replacement struct {
	Span    source.Span
	NewText string
}

// Suggestion is a human-readable proposal plus the edits that would apply
// it. An auto-fix is a Suggestion the fixer applies without confirmation.
type Suggestion struct {
	Message      string
	Replacements []Replacement
}

// Warning is one finding from the lint engine (or a lex/parse recovery).
// Code is the lint id (spec 4.5) used both in the JSON wire format and in
// `rmslint-disable` suppression comments.
type Warning struct {
	Severity    Severity
	Code        string
	Message     string
	Labels      []Label
	Suggestions []Suggestion
	AutoFix     *Suggestion
}

// PrimarySpan returns the warning's primary label span, falling back to the
// first label's span, or the zero Span if it has no labels at all (which should not happen for a well-formed warning, but callers
// that render warnings should not panic on one that does).
func (w Warning) PrimarySpan() source.Span {
	for _, l := range w.Labels {
		if l.Role == Primary {
			return l.Span
		}
	}
	if len(w.Labels) > 0 {
		return w.Labels[0].Span
	}
	return source.Span{}
}

func (w Warning) String() string {
	return fmt.Sprintf("%s[%s]: %s", w.Severity, w.Code, w.Message)
}

// Conflicts reports whether two suggestions from different warnings touch
// the same byte range anywhere in their replacement sets.
func Conflicts(a, b Suggestion) bool {
	for _, ra := range a.Replacements {
		for _, rb := range b.Replacements {
			if ra.Span.Overlaps(rb.Span) {
				return true
			}
		}
	}
	return false
}
