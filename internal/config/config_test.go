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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "aoc", cfg.Compatibility)
	require.False(t, cfg.AutoFix)
	require.False(t, cfg.Cache)
	require.Empty(t, cfg.DisabledLints)
}

func TestLoadFallsBackToDefaultWhenNoFileExists(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadReadsRmslintYaml(t *testing.T) {
	dir := t.TempDir()
	content := "compatibility: de\ndisabled_lints:\n  - unknown-command\nauto_fix: true\ncache: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rmslint.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "de", cfg.Compatibility)
	require.Equal(t, []string{"unknown-command"}, cfg.DisabledLints)
	require.True(t, cfg.AutoFix)
	require.True(t, cfg.Cache)
}

func TestLoadPrefersRmslintYamlOverDotted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rmslint.yaml"), []byte("compatibility: hd\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rmslint.yaml"), []byte("compatibility: wk\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "hd", cfg.Compatibility)
}

func TestLoadFallsBackToDottedName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rmslint.yaml"), []byte("compatibility: wk\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "wk", cfg.Compatibility)
}

func TestLoadReturnsErrorOnMalformedYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rmslint.yaml"), []byte("not: [valid: yaml"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}
