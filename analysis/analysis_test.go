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

package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/lint"
)

// onlyID is a no-op lint used to isolate Analyze's lint selection from the
// full default set.
type onlyID struct{ lint.Base }

func (onlyID) ID() string { return "only-id" }

func TestAnalyzeCleanFileHasNoWarnings(t *testing.T) {
	result := Analyze("f", "<PLAYER_SETUP>\ncreate_land\n", Options{InitialLevel: compat.Conquerors})
	require.Empty(t, result.Warnings)
	require.Equal(t, compat.Conquerors, result.FinalLevel)
}

func TestAnalyzeFlagsUnknownCommand(t *testing.T) {
	result := Analyze("f", "frobnicate_terrain\n", Options{InitialLevel: compat.Conquerors})
	var found bool
	for _, w := range result.Warnings {
		if w.Code == "unknown-command" {
			found = true
		}
	}
	require.True(t, found)
}

func TestAnalyzeFinalLevelReflectsMarkerComment(t *testing.T) {
	result := Analyze("f", "/* Compatibility: HD */\ncreate_land\n", Options{InitialLevel: compat.Conquerors})
	require.Equal(t, compat.HDEdition, result.FinalLevel)
}

func TestAnalyzeNeverFailsOnMalformedInput(t *testing.T) {
	result := Analyze("f", "if\n#define\nstart_random\n", Options{InitialLevel: compat.Conquerors})
	require.NotNil(t, result.File)
	require.NotEmpty(t, result.Warnings)
}

func TestCountAtLeast(t *testing.T) {
	result := Result{Warnings: []diag.Warning{
		{Severity: diag.Hint},
		{Severity: diag.Warn},
		{Severity: diag.Warn},
		{Severity: diag.Error},
	}}
	require.Equal(t, 4, result.CountAtLeast(diag.Hint))
	require.Equal(t, 3, result.CountAtLeast(diag.Warn))
	require.Equal(t, 1, result.CountAtLeast(diag.Error))
}

func TestAnalyzeRespectsLintsOverride(t *testing.T) {
	// Overriding to a lint set that doesn't include unknown-command means
	// an otherwise-flagged file comes back without that warning.
	result := Analyze("f", "frobnicate_terrain\n", Options{
		InitialLevel: compat.Conquerors,
		Lints:        []lint.Lint{onlyID{}},
	})
	for _, w := range result.Warnings {
		require.NotEqual(t, "unknown-command", w.Code)
	}
}
