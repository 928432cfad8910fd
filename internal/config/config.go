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

// Package config loads the project-level rmslint.yaml (or .rmslint.yaml)
// file: the default compatibility level, the set of disabled lint ids, and
// fix-mode settings. This is ambient configuration, not part of the
// analysis core — the CLI and the language server both load one of these
// before calling into package analysis.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Names the config file is searched for, in order, in the working directory.
var CandidateNames = []string{"rmslint.yaml", ".rmslint.yaml"}

// Config is the decoded project configuration.
type Config struct {
	// Compatibility names the default compatibility level (one of
	// "aoc", "up14", "up15", "wk", "hd", "de"); empty means "aoc".
	Compatibility string `yaml:"compatibility"`
	// DisabledLints lists lint ids to turn off project-wide, in addition
	// to whatever `rmslint-disable` comments appear in individual files.
	DisabledLints []string `yaml:"disabled_lints"`
	// AutoFix, when true, makes `rmslint check` apply safe auto-fixes
	// before reporting remaining warnings.
	AutoFix bool `yaml:"auto_fix"`
	// Cache enables the workspace SQLite cache (internal/cache) that
	// persists the last-used compatibility level and document list
	// between language-server sessions.
	Cache bool `yaml:"cache"`
}

// Default returns the configuration used when no config file is found.
func Default() Config {
	return Config{Compatibility: "aoc"}
}

// Load reads and decodes the first candidate config file found in dir,
// falling back to Default if none exists.
func Load(dir string) (Config, error) {
	for _, name := range CandidateNames {
		path := dir + string(os.PathSeparator) + name
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Config{}, err
		}
		cfg := Default()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return Default(), nil
}
