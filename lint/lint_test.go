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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/parser"
	"github.com/rms-tools/rmslint/symtab"
)

func run(t *testing.T, text string, level compat.Level, lints ...Lint) []diag.Warning {
	t.Helper()
	file, parseBag := parser.Parse("f", text)
	tab := symtab.New(level)
	eng := NewEngine(lints...)
	bag, _ := eng.Run(file, tab, parseBag)
	return bag.All()
}

func codes(warnings []diag.Warning) []string {
	var out []string
	for _, w := range warnings {
		out = append(out, w.Code)
	}
	return out
}

func TestUnknownCommandFlagsNeverHeardOfName(t *testing.T) {
	warnings := run(t, "frobnicate_terrain\n", compat.Conquerors, unknownCommand{})
	require.Contains(t, codes(warnings), "unknown-command")
}

func TestUnknownCommandDoesNotDoubleReportWithIncompatibleFeature(t *testing.T) {
	// create_radial_pattern exists, just not before DefinitiveEdition:
	// this should be incompatible-feature, never unknown-command.
	warnings := run(t, "create_radial_pattern\n", compat.Conquerors, unknownCommand{}, incompatibleFeature{})
	require.NotContains(t, codes(warnings), "unknown-command")
	require.Contains(t, codes(warnings), "incompatible-feature")
}

func TestArgCountFlagsWrongArity(t *testing.T) {
	warnings := run(t, "create_terrain\n", compat.Conquerors, argCount{})
	require.Contains(t, codes(warnings), "arg-count")
}

func TestArgCountAcceptsCorrectArity(t *testing.T) {
	warnings := run(t, "create_terrain GRASS\n", compat.Conquerors, argCount{})
	require.NotContains(t, codes(warnings), "arg-count")
}

func TestArgTypeFlagsNumberWhereWordExpected(t *testing.T) {
	warnings := run(t, "create_terrain 5\n", compat.Conquerors, argType{})
	require.Contains(t, codes(warnings), "arg-type")
}

func TestArgTypeFlagsUnknownWordWhereNumberExpected(t *testing.T) {
	warnings := run(t, "create_elevation SOME_UNDEFINED_NAME\n", compat.Conquerors, argType{})
	require.Contains(t, codes(warnings), "arg-type")
}

func TestArgTypeAcceptsKnownConstantInNumberSlot(t *testing.T) {
	warnings := run(t, "#const MY_HEIGHT 5\ncreate_elevation MY_HEIGHT\n", compat.Conquerors, argType{})
	require.NotContains(t, codes(warnings), "arg-type")
}

func TestNumberOutOfRangeFlagsOverflow(t *testing.T) {
	warnings := run(t, "create_elevation 99999999999\n", compat.Conquerors, numberOutOfRange{})
	require.Contains(t, codes(warnings), "number-out-of-range")
}

func TestUnknownAttributeFlagsUnrecognizedName(t *testing.T) {
	warnings := run(t, "create_land {\n  not_a_real_attribute 5\n}\n", compat.Conquerors, unknownAttribute{})
	require.Contains(t, codes(warnings), "unknown-attribute")
}

func TestUnknownAttributeIgnoresCommandsWithNoAttributeTable(t *testing.T) {
	warnings := run(t, "create_player_lands {\n  anything 5\n}\n", compat.Conquerors, unknownAttribute{})
	require.NotContains(t, codes(warnings), "unknown-attribute")
}

func TestUnknownAttributeDoesNotDoubleReportWithIncompatibleFeature(t *testing.T) {
	warnings := run(t, "create_land {\n  border_fuzziness 1\n}\n", compat.Conquerors, unknownAttribute{}, incompatibleFeature{})
	require.NotContains(t, codes(warnings), "unknown-attribute")
	require.Contains(t, codes(warnings), "incompatible-feature")
}

func TestSumOfChancesFlagsNonHundredTotal(t *testing.T) {
	warnings := run(t, "start_random\npercent_chance 40\ncreate_land\npercent_chance 40\ncreate_terrain GRASS\nend_random\n", compat.Conquerors, sumOfChances{})
	require.Contains(t, codes(warnings), "sum-of-chances")
}

func TestSumOfChancesAcceptsExactHundred(t *testing.T) {
	warnings := run(t, "start_random\npercent_chance 60\ncreate_land\npercent_chance 40\ncreate_terrain GRASS\nend_random\n", compat.Conquerors, sumOfChances{})
	require.NotContains(t, codes(warnings), "sum-of-chances")
}

func TestActorOutsideSectionFlagsTopLevelUse(t *testing.T) {
	warnings := run(t, "create_land\n", compat.Conquerors, actorOutsideSection{})
	require.Contains(t, codes(warnings), "actor-outside-section")
}

func TestActorOutsideSectionAllowsUseInsideSection(t *testing.T) {
	warnings := run(t, "<PLAYER_SETUP>\ncreate_land\n", compat.Conquerors, actorOutsideSection{})
	require.NotContains(t, codes(warnings), "actor-outside-section")
}

func TestRedefinedSymbolFlagsSecondDefine(t *testing.T) {
	warnings := run(t, "#define MY_FLAG\n#define MY_FLAG\n", compat.Conquerors, redefinedSymbol{})
	require.Len(t, codes(warnings), 1)
	require.Equal(t, "redefined-symbol", warnings[0].Code)
}

func TestShadowBuiltinFlagsDefineOfBuiltinName(t *testing.T) {
	warnings := run(t, "#define GRASS\n", compat.Conquerors, shadowBuiltin{})
	require.Contains(t, codes(warnings), "shadow-builtin")
	require.Equal(t, diag.Hint, warnings[0].Severity)
}

func TestUnknownSymbolFlagsNeverDefinedGuard(t *testing.T) {
	warnings := run(t, "if NEVER_DEFINED\ncreate_land\nendif\n", compat.Conquerors, unknownSymbol{})
	require.Contains(t, codes(warnings), "unknown-symbol")
}

func TestUnknownSymbolAcceptsPreviouslyDefinedGuard(t *testing.T) {
	warnings := run(t, "#define MY_FLAG\nif MY_FLAG\ncreate_land\nendif\n", compat.Conquerors, unknownSymbol{})
	require.NotContains(t, codes(warnings), "unknown-symbol")
}

func TestUnknownSymbolAcceptsBuiltinConstantGuard(t *testing.T) {
	// A guard naming a built-in constant (never user-#defined) is legal
	// (DESIGN Open Question 3) and must not be flagged.
	warnings := run(t, "if GRASS\ncreate_land\nendif\n", compat.Conquerors, unknownSymbol{})
	require.NotContains(t, codes(warnings), "unknown-symbol")
}

func TestCommentContentsFlagsNestedOpener(t *testing.T) {
	warnings := run(t, "/* outer /* inner */\n", compat.Conquerors, commentContents{})
	require.Contains(t, codes(warnings), "comment-contents")
	require.NotNil(t, warnings[0].AutoFix)
}

func TestDeadBranchFlagsBranchAfterElse(t *testing.T) {
	warnings := run(t, "if A\ncreate_land\nelse\ncreate_terrain GRASS\nelseif B\ncreate_player_lands\nendif\n", compat.Conquerors, deadBranch{})
	require.Len(t, codes(warnings), 1)
	require.Equal(t, "dead-branch", warnings[0].Code)
}

func TestDeadBranchAllowsPlainIfElse(t *testing.T) {
	warnings := run(t, "if A\ncreate_land\nelse\ncreate_terrain GRASS\nendif\n", compat.Conquerors, deadBranch{})
	require.Empty(t, codes(warnings))
}

func TestSuppressionSilencesMatchingCode(t *testing.T) {
	text := "/* rmslint-disable unknown-command */\nfrobnicate_terrain\n/* rmslint-enable unknown-command */\n"
	warnings := run(t, text, compat.Conquerors, unknownCommand{})
	require.Empty(t, warnings)
}

func TestSuppressionLeavesOtherCodesAlone(t *testing.T) {
	text := "/* rmslint-disable arg-count */\nfrobnicate_terrain\n"
	warnings := run(t, text, compat.Conquerors, unknownCommand{}, argCount{})
	require.Contains(t, codes(warnings), "unknown-command")
}

func TestBareDisableSilencesEverything(t *testing.T) {
	text := "/* rmslint-disable */\nfrobnicate_terrain\ncreate_terrain\n/* rmslint-enable */\n"
	warnings := run(t, text, compat.Conquerors, unknownCommand{}, argCount{})
	require.Empty(t, warnings)
}

func TestSuppressionEndsAtEnableComment(t *testing.T) {
	text := "/* rmslint-disable unknown-command */\nfrobnicate_terrain\n/* rmslint-enable unknown-command */\nfrobnicate_more\n"
	warnings := run(t, text, compat.Conquerors, unknownCommand{})
	require.Len(t, warnings, 1, "only the second, unsuppressed occurrence should be reported")
}
