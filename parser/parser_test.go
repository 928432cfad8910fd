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

package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rms-tools/rmslint/ast"
)

func atomTexts(file *ast.File) []string {
	texts := make([]string, len(file.Atoms))
	for i, a := range file.Atoms {
		texts[i] = a.Text
	}
	return texts
}

func roundTrips(t *testing.T, text string) *ast.File {
	t.Helper()
	file, _ := Parse("f", text)
	var b strings.Builder
	for _, a := range file.Atoms {
		b.WriteString(a.Text)
	}
	require.Equal(t, text, b.String())
	return file
}

func TestParseNeverAborts(t *testing.T) {
	// A grab-bag of malformed input: the parser must always return a
	// non-nil tree and never panic (spec section 7, "Totality").
	inputs := []string{
		"",
		"}",
		"endif",
		"percent_chance 50",
		"if",
		"#define",
		"#const FOO",
		"start_random percent_chance 50 end_random",
		"<SECTION create_land { base_size",
		"/* unterminated",
	}
	for _, in := range inputs {
		file := roundTrips(t, in)
		require.NotNil(t, file)
	}
}

func TestParseSimpleCommandWithBlock(t *testing.T) {
	file := roundTrips(t, "create_land {\n  base_size 10\n}\n")
	require.Len(t, file.Nodes, 1)
	cmd, ok := file.Nodes[0].(*ast.Command)
	require.True(t, ok)
	require.Equal(t, "create_land", cmd.Name.Text)
	require.NotNil(t, cmd.Block)
	require.NotNil(t, cmd.Block.Close)
	require.Len(t, cmd.Block.Statements, 1)
	require.Equal(t, "base_size", cmd.Block.Statements[0].Name.Text)
}

func TestParseMissingEndifRecovers(t *testing.T) {
	file, bag := Parse("f", "if FOO\ncreate_land\n")
	require.Len(t, file.Nodes, 1)
	chain, ok := file.Nodes[0].(*ast.IfChain)
	require.True(t, ok)
	require.Nil(t, chain.EndIf)

	warnings := bag.All()
	require.Len(t, warnings, 1)
	require.Equal(t, "unbalanced-if", warnings[0].Code)
	require.NotNil(t, warnings[0].AutoFix)
	require.Equal(t, "\nendif\n", warnings[0].AutoFix.Replacements[0].NewText)
}

func TestParseMissingEndRandomRecovers(t *testing.T) {
	file, bag := Parse("f", "start_random\npercent_chance 100\ncreate_land\n")
	chain, ok := file.Nodes[0].(*ast.RandomChain)
	require.True(t, ok)
	require.Nil(t, chain.End)

	warnings := bag.All()
	require.Len(t, warnings, 1)
	require.Equal(t, "unbalanced-random", warnings[0].Code)
}

func TestParsePermitsBranchesAfterElse(t *testing.T) {
	// The parser accepts this structurally; flagging it is the lint
	// layer's job (lint.deadBranch), not the parser's.
	file, bag := Parse("f", "if A\nelse\ncreate_land\nelseif B\ncreate_terrain GRASS\nendif\n")
	chain, ok := file.Nodes[0].(*ast.IfChain)
	require.True(t, ok)
	require.Len(t, chain.Branches, 3)
	require.Empty(t, bag.All())
}

func TestParseStrayClosersRecordErrorsAndDropNode(t *testing.T) {
	file, bag := Parse("f", "endif\ncreate_land\n")
	require.Len(t, file.Nodes, 1) // the stray endif produces no node
	_, ok := file.Nodes[0].(*ast.Command)
	require.True(t, ok)

	warnings := bag.All()
	require.Len(t, warnings, 1)
	require.Equal(t, "stray-endif", warnings[0].Code)
}

func TestRandomChainFallbackIsOnlyLeadingStatements(t *testing.T) {
	file, _ := Parse("f", "start_random\ncreate_player_lands\npercent_chance 100\ncreate_land\nend_random\n")
	chain, ok := file.Nodes[0].(*ast.RandomChain)
	require.True(t, ok)
	require.Len(t, chain.Fallback, 1)
	require.Len(t, chain.Branches, 1)
	require.Len(t, chain.Branches[0].Body, 1)
}

func TestDefineAndConst(t *testing.T) {
	file := roundTrips(t, "#define FOO\n#const BAR 5\n")
	require.Len(t, file.Nodes, 2)
	def, ok := file.Nodes[0].(*ast.Define)
	require.True(t, ok)
	require.Equal(t, "FOO", def.Name.Text)
	c, ok := file.Nodes[1].(*ast.Const)
	require.True(t, ok)
	require.Equal(t, "BAR", c.Name.Text)
	require.Equal(t, "5", c.Value.Text)
}

func TestParseIsDeterministicAcrossRuns(t *testing.T) {
	text := "if FOO\ncreate_land {\n  base_size 10\n}\nelse\ncreate_terrain GRASS\nendif\n"
	first, _ := Parse("f", text)
	second, _ := Parse("f", text)
	if diff := cmp.Diff(atomTexts(first), atomTexts(second)); diff != "" {
		t.Errorf("parsing the same input twice produced different atom streams (-first +second):\n%s", diff)
	}
}

func TestMissingDefineNameRecovers(t *testing.T) {
	file, bag := Parse("f", "#define\n")
	def, ok := file.Nodes[0].(*ast.Define)
	require.True(t, ok)
	require.Equal(t, "", def.Name.Text)
	require.Equal(t, "missing-define-name", bag.All()[0].Code)
}
