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
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/source"
	"github.com/rms-tools/rmslint/walker"
)

// redefinedSymbol flags a #define/#const that redefines a name the user
// already introduced earlier in the file.
type redefinedSymbol struct{ Base }

func (redefinedSymbol) ID() string { return "redefined-symbol" }

func (l redefinedSymbol) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	name, span, ok := definitionName(n)
	if !ok {
		return
	}
	if !w.LastDefinition().Redefines {
		return
	}
	r.Add(diag.Warning{
		Severity: diag.Warn,
		Code:     l.ID(),
		Message:  fmt.Sprintf("`%s` redefines a symbol already defined earlier in this file", name),
		Labels:   []diag.Label{{Span: span, Message: "redefined here", Role: diag.Primary}},
	})
}

// shadowBuiltin flags a #define/#const that shadows a built-in constant of
// the active compatibility level.
type shadowBuiltin struct{ Base }

func (shadowBuiltin) ID() string { return "shadow-builtin" }

func (l shadowBuiltin) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	name, span, ok := definitionName(n)
	if !ok {
		return
	}
	if !w.LastDefinition().ShadowsBuiltin {
		return
	}
	r.Add(diag.Warning{
		Severity: diag.Hint,
		Code:     l.ID(),
		Message:  fmt.Sprintf("`%s` shadows a built-in constant", name),
		Labels:   []diag.Label{{Span: span, Message: "here", Role: diag.Primary}},
	})
}

func definitionName(n ast.Node) (name string, span source.Span, ok bool) {
	switch v := n.(type) {
	case *ast.Define:
		return v.Name.Text, v.Name.Span, true
	case *ast.Const:
		return v.Name.Text, v.Name.Span, true
	}
	return "", source.Span{}, false
}

// unknownSymbol flags an if/elseif guard that references a name that is
// neither #defined or #const-bound up to that point in the file nor a
// built-in constant of the active compatibility level (spec section 8's
// seed scenario).
type unknownSymbol struct{ Base }

func (unknownSymbol) ID() string { return "unknown-symbol" }

func (l unknownSymbol) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	chain, ok := n.(*ast.IfChain)
	if !ok {
		return
	}
	for _, b := range chain.Branches {
		if b.Guard == nil {
			continue
		}
		if w.Table().KnownSymbol(b.Guard.Text) {
			continue
		}
		r.Add(diag.Warning{
			Severity: diag.Warn,
			Code:     l.ID(),
			Message:  fmt.Sprintf("`%s` is never #defined", b.Guard.Text),
			Labels:   []diag.Label{{Span: b.Guard.Span, Message: "here", Role: diag.Primary}},
		})
	}
}
