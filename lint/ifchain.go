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
	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/walker"
)

// deadBranch flags an `elseif`/`else` that structurally follows an `else`
// within the same chain. The parser accepts these permissively (spec
// section 4.2); this lint is what actually calls it out, so the two
// concerns stay separate: structure vs. reachability.
type deadBranch struct{ Base }

func (deadBranch) ID() string { return "dead-branch" }

func (l deadBranch) AfterNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	chain, ok := n.(*ast.IfChain)
	if !ok {
		return
	}
	sawElse := false
	for _, b := range chain.Branches {
		if !sawElse {
			if b.Guard == nil {
				sawElse = true
			}
			continue
		}
		r.Add(diag.Warning{
			Severity: diag.Warn,
			Code:     l.ID(),
			Message:  "branch can never run: it follows an `else`",
			Labels:   []diag.Label{{Span: b.Span(), Message: "dead branch", Role: diag.Primary}},
			AutoFix: &diag.Suggestion{
				Message:      "drop this branch",
				Replacements: []diag.Replacement{{Span: b.Span(), NewText: ""}},
			},
		})
	}
}
