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

package lint

import (
	"strings"

	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/walker"
)

// commentContents flags the classic nested-comment trap: a comment whose
// contents contain another `/*`, which a reader might expect to nest but
// which the lexer does not (spec section 4.1: the first `*/` closes).
type commentContents struct{ Base }

func (commentContents) ID() string { return "comment-contents" }

func (l commentContents) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	c, ok := n.(*ast.CommentNode)
	if !ok || c.Atom.Kind != ast.Comment {
		return
	}
	contents := c.Atom.Contents()
	idx := strings.Index(contents, "/*")
	if idx < 0 {
		return
	}
	// +2 to skip the outer comment's own opening delimiter.
	at := c.Atom.Span.Start + 2 + idx
	closeSpan := c.Atom.Span
	closeSpan.Start = at
	closeSpan.End = at

	r.Add(diag.Warning{
		Severity: diag.Warn,
		Code:     l.ID(),
		Message:  "comment contains `/*`, which does not start a nested comment",
		Labels:   []diag.Label{{Span: c.Atom.Span, Message: "comment starts here", Role: diag.Primary}},
		AutoFix: &diag.Suggestion{
			Message: "close the outer comment before this point",
			Replacements: []diag.Replacement{
				{Span: closeSpan, NewText: "*/"},
			},
		},
	})
}
