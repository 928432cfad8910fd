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
	"fmt"

	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/walker"
)

// actorOutsideSection flags a section-only command used at top level.
type actorOutsideSection struct{ Base }

func (actorOutsideSection) ID() string { return "actor-outside-section" }

func (l actorOutsideSection) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	cmd, ok := n.(*ast.Command)
	if !ok {
		return
	}
	entry, ok := compat.Command(w.Level(), cmd.Name.Text)
	if !ok || !entry.SectionOnly {
		return
	}
	if _, inSection := w.InSectionNamed(); inSection {
		return
	}
	r.Add(diag.Warning{
		Severity: diag.Warn,
		Code:     l.ID(),
		Message:  fmt.Sprintf("`%s` is only valid inside a <section>", cmd.Name.Text),
		Labels:   []diag.Label{{Span: cmd.Name.Span, Message: "here", Role: diag.Primary}},
	})
}

// incompatibleFeature flags a command (or the attribute of one) that
// exists in the command table but not at the currently active
// compatibility level.
type incompatibleFeature struct{ Base }

func (incompatibleFeature) ID() string { return "incompatible-feature" }

func (l incompatibleFeature) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	switch v := n.(type) {
	case *ast.Command:
		rng, ok := compat.CommandRawRange(v.Name.Text)
		if !ok || rng.Supports(w.Level()) {
			return
		}
		r.Add(diag.Warning{
			Severity: diag.Warn,
			Code:     l.ID(),
			Message:  fmt.Sprintf("`%s` requires a higher compatibility level than %s", v.Name.Text, w.Level()),
			Labels:   []diag.Label{{Span: v.Name.Span, Message: "here", Role: diag.Primary}},
		})
	case *ast.Attribute:
		frame, ok := currentCommandBlock(w)
		if !ok {
			return
		}
		rng, ok := compat.AttributeRawRange(frame, v.Name.Text)
		if !ok || rng.Supports(w.Level()) {
			return
		}
		r.Add(diag.Warning{
			Severity: diag.Warn,
			Code:     l.ID(),
			Message:  fmt.Sprintf("`%s` requires a higher compatibility level than %s", v.Name.Text, w.Level()),
			Labels:   []diag.Label{{Span: v.Name.Span, Message: "here", Role: diag.Primary}},
		})
	}
}
