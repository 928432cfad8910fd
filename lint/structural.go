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
	"strconv"

	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/walker"
)

// unknownCommand flags a command name the active compatibility level has
// never heard of at all. A name that exists at a *different* level is left
// to incompatibleFeature instead.
type unknownCommand struct{ Base }

func (unknownCommand) ID() string { return "unknown-command" }

func (l unknownCommand) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	cmd, ok := n.(*ast.Command)
	if !ok {
		return
	}
	if _, ok := compat.Command(w.Level(), cmd.Name.Text); ok {
		return
	}
	if _, existsSomewhere := compat.CommandRawRange(cmd.Name.Text); existsSomewhere {
		return
	}
	r.Add(diag.Warning{
		Severity: diag.Warn,
		Code:     l.ID(),
		Message:  fmt.Sprintf("unknown command `%s`", cmd.Name.Text),
		Labels:   []diag.Label{{Span: cmd.Name.Span, Message: "here", Role: diag.Primary}},
	})
}

// argCount flags a command invoked with the wrong number of bare
// arguments for its known arity.
type argCount struct{ Base }

func (argCount) ID() string { return "arg-count" }

func (l argCount) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	cmd, ok := n.(*ast.Command)
	if !ok {
		return
	}
	entry, ok := compat.Command(w.Level(), cmd.Name.Text)
	if !ok {
		return
	}
	numArgs := len(cmd.Args)
	if numArgs < entry.MinArgs || (entry.MaxArgs >= 0 && numArgs > entry.MaxArgs) {
		r.Add(diag.Warning{
			Severity: diag.Error,
			Code:     l.ID(),
			Message:  fmt.Sprintf("`%s` takes %s, got %d", cmd.Name.Text, arityDescription(entry), numArgs),
			Labels:   []diag.Label{{Span: cmd.Span(), Message: "here", Role: diag.Primary}},
		})
	}
}

func arityDescription(entry compat.CommandArity) string {
	if entry.MaxArgs < 0 {
		return fmt.Sprintf("at least %d argument(s)", entry.MinArgs)
	}
	if entry.MinArgs == entry.MaxArgs {
		return fmt.Sprintf("%d argument(s)", entry.MinArgs)
	}
	return fmt.Sprintf("between %d and %d argument(s)", entry.MinArgs, entry.MaxArgs)
}

// argType flags an argument whose atom kind doesn't match what the
// command's table says that position expects (spec section 4.5): a
// numeric slot filled by a word that isn't a known constant, or a word
// slot filled by a bare number.
type argType struct{ Base }

func (argType) ID() string { return "arg-type" }

func (l argType) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	cmd, ok := n.(*ast.Command)
	if !ok {
		return
	}
	entry, ok := compat.Command(w.Level(), cmd.Name.Text)
	if !ok || entry.ArgKinds == nil {
		return
	}
	for i, expected := range entry.ArgKinds {
		if i >= len(cmd.Args) {
			break
		}
		actual := cmd.Args[i]
		switch expected {
		case compat.NumberArg:
			if actual.Kind == ast.Word && !w.Table().KnownSymbol(actual.Text) {
				r.Add(diag.Warning{
					Severity: diag.Error,
					Code:     l.ID(),
					Message:  fmt.Sprintf("`%s` expects a number in this position; `%s` is not a known constant", cmd.Name.Text, actual.Text),
					Labels:   []diag.Label{{Span: actual.Span, Message: "here", Role: diag.Primary}},
				})
			}
		case compat.WordArg:
			if actual.Kind == ast.Number {
				r.Add(diag.Warning{
					Severity: diag.Error,
					Code:     l.ID(),
					Message:  fmt.Sprintf("`%s` expects a name in this position, got a bare number", cmd.Name.Text),
					Labels:   []diag.Label{{Span: actual.Span, Message: "here", Role: diag.Primary}},
				})
			}
		}
	}
}

// numberOutOfRange flags an integer literal that doesn't fit a signed
// 32-bit integer (spec section 4.1).
type numberOutOfRange struct{ Base }

func (numberOutOfRange) ID() string { return "number-out-of-range" }

func (l numberOutOfRange) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	var atoms []ast.Atom
	switch v := n.(type) {
	case *ast.Command:
		atoms = v.Args
	case *ast.Attribute:
		atoms = v.Args
	case *ast.Const:
		atoms = []ast.Atom{v.Value}
	case *ast.RandomChain:
		for _, b := range v.Branches {
			if b.Percent != nil {
				atoms = append(atoms, *b.Percent)
			}
		}
	default:
		return
	}
	for _, a := range atoms {
		if a.Kind != ast.Number {
			continue
		}
		if _, err := strconv.ParseInt(a.Text, 10, 32); err != nil {
			r.Add(diag.Warning{
				Severity: diag.Warn,
				Code:     l.ID(),
				Message:  fmt.Sprintf("`%s` does not fit a signed 32-bit integer", a.Text),
				Labels:   []diag.Label{{Span: a.Span, Message: "here", Role: diag.Primary}},
			})
		}
	}
}

// unknownAttribute flags an attribute-block statement not permitted for
// the enclosing command.
type unknownAttribute struct{ Base }

func (unknownAttribute) ID() string { return "unknown-attribute" }

func (l unknownAttribute) BeforeNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	attr, ok := n.(*ast.Attribute)
	if !ok {
		return
	}
	frame, ok := currentCommandBlock(w)
	if !ok {
		return
	}
	if !compat.HasAttributeTable(frame) {
		return
	}
	if compat.Attribute(w.Level(), frame, attr.Name.Text) {
		return
	}
	if _, existsAtOtherLevel := compat.AttributeRawRange(frame, attr.Name.Text); existsAtOtherLevel {
		// incompatibleFeature reports this case instead.
		return
	}
	r.Add(diag.Warning{
		Severity: diag.Warn,
		Code:     l.ID(),
		Message:  fmt.Sprintf("`%s` is not a recognized attribute of `%s`", attr.Name.Text, frame),
		Labels:   []diag.Label{{Span: attr.Name.Span, Message: "here", Role: diag.Primary}},
	})
}

// currentCommandBlock returns the command name of the innermost
// InCommandBlock frame, if the walker is currently inside one.
func currentCommandBlock(w *walker.Walker) (string, bool) {
	stack := w.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Kind == walker.InCommandBlock {
			return stack[i].Name, true
		}
	}
	return "", false
}
