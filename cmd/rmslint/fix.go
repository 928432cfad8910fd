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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rms-tools/rmslint/analysis"
	"github.com/rms-tools/rmslint/fixer"
)

func newFixCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "Apply every non-conflicting auto-fix to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(args[0], write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing to stdout")
	return cmd
}

func runFix(path string, write bool) error {
	cfg, err := loadConfig()
	if err != nil {
		exitCode = exitInvalidUsage
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := resolveCompat(cfg)
	if err != nil {
		exitCode = exitInvalidUsage
		return err
	}
	lints := filterLints(cfg.DisabledLints)

	raw, err := os.ReadFile(path)
	if err != nil {
		exitCode = exitInvalidUsage
		return fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(raw)

	result := analysis.Analyze(path, text, analysis.Options{InitialLevel: level, Lints: lints})
	outcome := fixer.Apply(text, result.Warnings, nil)

	if len(outcome.Dropped) > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d conflicting fix(es) dropped\n", path, len(outcome.Dropped))
	}

	if write {
		if err := os.WriteFile(path, []byte(outcome.Text), 0o644); err != nil {
			exitCode = exitErrorsFound
			return fmt.Errorf("writing %s: %w", path, err)
		}
	} else {
		fmt.Print(outcome.Text)
	}

	exitCode = exitClean
	return nil
}
