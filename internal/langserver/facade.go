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

package langserver

import (
	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/source"
)

// FoldingRange is one collapsible region, 0-based lines inclusive, the
// shape the LSP foldingRange request wants.
type FoldingRange struct {
	StartLine int
	EndLine   int
}

// FoldingRanges returns one range per top-level section and each brace
// block in uri's most recently computed parse tree (spec section 4.7).
func (s *Store) FoldingRanges(uri string) []FoldingRange {
	result, ok := s.Result(uri)
	if !ok {
		return nil
	}
	text, _ := s.Text(uri)
	idx := source.NewIndex(source.File{Name: uri, Text: text})

	var ranges []FoldingRange
	nodes := result.File.Nodes
	for i, n := range nodes {
		if sh, ok := n.(*ast.SectionHeader); ok {
			start := idx.Locate(sh.Span().Start).Line - 1
			// The section runs to the line before the next section
			// header, or to end of file for the last one.
			end := idx.Locate(len(text)).Line - 1
			for _, next := range nodes[i+1:] {
				if _, isHeader := next.(*ast.SectionHeader); isHeader {
					end = idx.Locate(next.Span().Start).Line - 2
					break
				}
			}
			if end > start {
				ranges = append(ranges, FoldingRange{StartLine: start, EndLine: end})
			}
		}
		collectBlockFolds(n, idx, &ranges)
	}
	return ranges
}

func collectBlockFolds(n ast.Node, idx *source.Index, out *[]FoldingRange) {
	switch v := n.(type) {
	case *ast.Command:
		if v.Block != nil && v.Block.Close != nil {
			start := idx.Locate(v.Block.Open.Span.Start).Line - 1
			end := idx.Locate(v.Block.Close.Span.End).Line - 1
			if end > start {
				*out = append(*out, FoldingRange{StartLine: start, EndLine: end})
			}
		}
	case *ast.IfChain:
		for _, b := range v.Branches {
			for _, child := range b.Body {
				collectBlockFolds(child, idx, out)
			}
		}
	case *ast.RandomChain:
		for _, child := range v.Fallback {
			collectBlockFolds(child, idx, out)
		}
		for _, b := range v.Branches {
			for _, child := range b.Body {
				collectBlockFolds(child, idx, out)
			}
		}
	}
}

// CodeAction is one quick-fix: a human-readable title plus the edits it
// would apply.
type CodeAction struct {
	Title string
	Edits []diag.Replacement
}

// CodeActions returns one action per suggestion (including an auto-fix,
// which the façade offers as a regular quick-fix rather than applying it
// silently) carried by a warning whose primary span overlaps [start, end).
func (s *Store) CodeActions(uri string, start, end int) []CodeAction {
	result, ok := s.Result(uri)
	if !ok {
		return nil
	}
	rng := source.Span{File: uri, Start: start, End: end}

	var actions []CodeAction
	for _, w := range result.Warnings {
		if !w.PrimarySpan().Overlaps(rng) && !rng.Overlaps(w.PrimarySpan()) {
			continue
		}
		suggestions := w.Suggestions
		if w.AutoFix != nil {
			suggestions = append([]diag.Suggestion{*w.AutoFix}, suggestions...)
		}
		for _, sug := range suggestions {
			actions = append(actions, CodeAction{Title: sug.Message, Edits: sug.Replacements})
		}
	}
	return actions
}

// lspSeverity maps an internal Severity to the LSP DiagnosticSeverity
// integer (1=Error, 2=Warning, 3=Information, 4=Hint).
func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.Error:
		return 1
	case diag.Warn:
		return 2
	case diag.Hint:
		return 4
	default:
		return 3
	}
}

// Diagnostic is the subset of an LSP Diagnostic this façade fills in.
type Diagnostic struct {
	Line      int
	Character int
	EndLine   int
	EndChar   int
	Severity  int
	Code      string
	Message   string
}

// ToDiagnostics renders warnings against idx into LSP-shaped Diagnostics.
func ToDiagnostics(warnings []diag.Warning, idx *source.Index) []Diagnostic {
	out := make([]Diagnostic, 0, len(warnings))
	for _, w := range warnings {
		span := w.PrimarySpan()
		start := idx.Locate(span.Start)
		end := idx.Locate(span.End)
		out = append(out, Diagnostic{
			Line:      start.Line - 1,
			Character: start.UTF16,
			EndLine:   end.Line - 1,
			EndChar:   end.UTF16,
			Severity:  lspSeverity(w.Severity),
			Code:      w.Code,
			Message:   w.Message,
		})
	}
	return out
}
