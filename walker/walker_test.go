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

package walker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/parser"
	"github.com/rms-tools/rmslint/symtab"
)

// recorder is a Visitor that snapshots the lexical state stack and the
// current definition-table level at every BeforeNode call, tagged with the
// visited node's kind.
type recorder struct {
	visits []visit
}

type visit struct {
	kind  string
	stack []Frame
	level compat.Level
}

func nodeKind(n ast.Node) string {
	switch n.(type) {
	case *ast.Command:
		return "command"
	case *ast.Define:
		return "define"
	case *ast.Const:
		return "const"
	case *ast.IfChain:
		return "if"
	case *ast.RandomChain:
		return "random"
	case *ast.Attribute:
		return "attribute"
	case *ast.CommentNode:
		return "comment"
	case *ast.SectionHeader:
		return "section"
	default:
		return "other"
	}
}

func (r *recorder) BeforeNode(w *Walker, n ast.Node) {
	r.visits = append(r.visits, visit{kind: nodeKind(n), stack: append([]Frame{}, w.Stack()...), level: w.Level()})
}
func (r *recorder) AfterNode(w *Walker, n ast.Node) {}

func walkText(t *testing.T, text string, level compat.Level) (*recorder, *symtab.Table) {
	t.Helper()
	file, _ := parser.Parse("f", text)
	tab := symtab.New(level)
	rec := &recorder{}
	w := New(tab, rec)
	w.Walk(file)
	return rec, tab
}

func TestWalkVisitsBothIfBranches(t *testing.T) {
	rec, _ := walkText(t, "if A\ncreate_land\nelse\ncreate_terrain GRASS\nendif\n", compat.Conquerors)

	var commands int
	for _, v := range rec.visits {
		if v.kind == "command" {
			commands++
		}
	}
	require.Equal(t, 2, commands, "both branches of the if chain are visited regardless of guard value")
}

func TestWalkFrameStackInsideIfBranch(t *testing.T) {
	rec, _ := walkText(t, "if A\ncreate_land\nendif\n", compat.Conquerors)

	var cmdVisit *visit
	for i := range rec.visits {
		if rec.visits[i].kind == "command" {
			cmdVisit = &rec.visits[i]
		}
	}
	require.NotNil(t, cmdVisit)
	require.Len(t, cmdVisit.stack, 2)
	require.Equal(t, TopLevel, cmdVisit.stack[0].Kind)
	require.Equal(t, InIf, cmdVisit.stack[1].Kind)
	require.Equal(t, "if", cmdVisit.stack[1].GuardKind)
	require.Equal(t, 0, cmdVisit.stack[1].BranchIndex)
}

func TestWalkRandomFallbackUsesBranchIndexMinusOne(t *testing.T) {
	rec, _ := walkText(t, "start_random\ncreate_player_lands\npercent_chance 100\ncreate_land\nend_random\n", compat.Conquerors)

	var fallbackVisit, branchVisit *visit
	for i := range rec.visits {
		if rec.visits[i].kind != "command" {
			continue
		}
		f := rec.visits[i].stack[len(rec.visits[i].stack)-1]
		if f.BranchIndex == -1 {
			fallbackVisit = &rec.visits[i]
		} else {
			branchVisit = &rec.visits[i]
		}
	}
	require.NotNil(t, fallbackVisit)
	require.NotNil(t, branchVisit)
	require.Equal(t, InRandom, fallbackVisit.stack[len(fallbackVisit.stack)-1].Kind)
	require.Equal(t, 0, branchVisit.stack[len(branchVisit.stack)-1].BranchIndex)
}

func TestWalkEntersCommandBlockFrameForAttributes(t *testing.T) {
	rec, _ := walkText(t, "create_land {\n  base_size 10\n}\n", compat.Conquerors)

	var attrVisit *visit
	for i := range rec.visits {
		if rec.visits[i].kind == "attribute" {
			attrVisit = &rec.visits[i]
		}
	}
	require.NotNil(t, attrVisit)
	top := attrVisit.stack[len(attrVisit.stack)-1]
	require.Equal(t, InCommandBlock, top.Kind)
	require.Equal(t, "create_land", top.Name)
}

func TestWalkSectionFrameAppliesToFollowingNodes(t *testing.T) {
	rec, _ := walkText(t, "<PLAYER_SETUP>\ncreate_player_lands\n", compat.Conquerors)

	var cmdVisit *visit
	for i := range rec.visits {
		if rec.visits[i].kind == "command" {
			cmdVisit = &rec.visits[i]
		}
	}
	require.NotNil(t, cmdVisit)
	require.Equal(t, InSection, cmdVisit.stack[0].Kind)
	require.Equal(t, "PLAYER_SETUP", cmdVisit.stack[0].Name)
}

func TestWalkDefineRecordsIntoSymbolTable(t *testing.T) {
	_, tab := walkText(t, "#define MY_FLAG\n", compat.Conquerors)
	require.True(t, tab.HasFlag("MY_FLAG"))
}

func TestWalkDefineInsideUnreachableBranchStillTakesEffect(t *testing.T) {
	// Conservative walking means both if-branches run, so a #define guarded
	// by a flag that is never set still lands in the table.
	_, tab := walkText(t, "if NEVER_SET\n#define ONLY_IN_DEAD_BRANCH\nendif\n", compat.Conquerors)
	require.True(t, tab.HasFlag("ONLY_IN_DEAD_BRANCH"))
}

func TestWalkCompatibilityMarkerCommentChangesLevel(t *testing.T) {
	_, tab := walkText(t, "/* Compatibility: HD */\ncreate_land\n", compat.Conquerors)
	require.Equal(t, compat.HDEdition, tab.Level())
}

func TestLastDefinitionReflectsRedefinitionAndShadow(t *testing.T) {
	file, _ := parser.Parse("f", "#define GRASS\n#define GRASS\n")
	tab := symtab.New(compat.Conquerors)
	var results []DefinitionResult
	rec := recorderFunc{after: func(w *Walker, n ast.Node) {
		if _, ok := n.(*ast.Define); ok {
			results = append(results, w.LastDefinition())
		}
	}}
	w := New(tab, rec)
	w.Walk(file)

	require.Len(t, results, 2)
	require.False(t, results[0].Redefines)
	require.True(t, results[0].ShadowsBuiltin)
	require.True(t, results[1].Redefines)
	require.True(t, results[1].ShadowsBuiltin)
}

type recorderFunc struct {
	after func(w *Walker, n ast.Node)
}

func (r recorderFunc) BeforeNode(w *Walker, n ast.Node) {}
func (r recorderFunc) AfterNode(w *Walker, n ast.Node)  { r.after(w, n) }
