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

package diag

import "github.com/rms-tools/rmslint/source"

// Position is the JSON wire shape for one side of a span: byte offset is
// authoritative, line/column are 1-based convenience fields for tooling
// that doesn't want to re-index the file itself (spec section 6).
type Position struct {
	Line   int `json:"line"`
	Col    int `json:"col"`
	Offset int `json:"offset"`
}

// WireEdit is one replacement in wire form.
type WireEdit struct {
	Start   Position `json:"start"`
	End     Position `json:"end"`
	NewText string   `json:"new_text"`
}

// WireSuggestion is one Suggestion in wire form.
type WireSuggestion struct {
	Message string     `json:"message"`
	Edits   []WireEdit `json:"edits"`
}

// WireLabel is one Label in wire form.
type WireLabel struct {
	Span    WireSpan `json:"span"`
	Message string   `json:"message"`
	Role    string   `json:"role"`
}

// WireSpan is a span rendered with both offsets and line/column.
type WireSpan struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// WireWarning is the JSON shape emitted by `rmslint check --json` and
// consumed by editor tooling (spec section 6).
type WireWarning struct {
	Severity    string           `json:"severity"`
	Code        string           `json:"code"`
	Message     string           `json:"message"`
	File        string           `json:"file"`
	Start       Position         `json:"start"`
	End         Position         `json:"end"`
	Labels      []WireLabel      `json:"labels"`
	Suggestions []WireSuggestion `json:"suggestions"`
}

// ToWire renders w using idx to resolve line/column for every span. idx
// must have been built over the same file w's spans point into.
func (w Warning) ToWire(idx *source.Index) WireWarning {
	primary := w.PrimarySpan()
	out := WireWarning{
		Severity: w.Severity.String(),
		Code:     w.Code,
		Message:  w.Message,
		File:     primary.File,
		Start:    position(idx, primary.Start),
		End:      position(idx, primary.End),
	}
	for _, l := range w.Labels {
		role := "secondary"
		if l.Role == Primary {
			role = "primary"
		}
		out.Labels = append(out.Labels, WireLabel{
			Span: WireSpan{
				Start: position(idx, l.Span.Start),
				End:   position(idx, l.Span.End),
			},
			Message: l.Message,
			Role:    role,
		})
	}
	suggestions := w.Suggestions
	if w.AutoFix != nil {
		suggestions = append([]Suggestion{*w.AutoFix}, suggestions...)
	}
	for _, s := range suggestions {
		ws := WireSuggestion{Message: s.Message}
		for _, r := range s.Replacements {
			ws.Edits = append(ws.Edits, WireEdit{
				Start:   position(idx, r.Span.Start),
				End:     position(idx, r.Span.End),
				NewText: r.NewText,
			})
		}
		out.Suggestions = append(out.Suggestions, ws)
	}
	return out
}

func position(idx *source.Index, offset int) Position {
	loc := idx.Locate(offset)
	return Position{Line: loc.Line, Col: loc.Column, Offset: loc.Offset}
}
