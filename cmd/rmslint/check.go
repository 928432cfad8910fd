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
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rms-tools/rmslint/analysis"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/fixer"
	"github.com/rms-tools/rmslint/source"
)

func newCheckCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Lint one or more random-map-script files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckFiles(args, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the warning stream as JSON")
	return cmd
}

// runCheck backs the default (no subcommand) invocation: `rmslint <file>`.
func runCheck(cmd *cobra.Command, args []string) error {
	return runCheckFiles(args, false)
}

// fileResult pairs one file's path with its analysis, computed
// concurrently across files via errgroup (mirrors the teacher's
// multi-file compile fan-out).
type fileResult struct {
	path   string
	text   string
	result analysis.Result
}

func runCheckFiles(paths []string, jsonOut bool) error {
	logger := newLogger()
	defer logger.Sync()

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

	results := make([]fileResult, len(paths))
	g, _ := errgroup.WithContext(context.Background())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			logger.Debug("analyzing", zap.String("file", path))
			body := string(text)
			result := analysis.Analyze(path, body, analysis.Options{InitialLevel: level, Lints: lints})
			if cfg.AutoFix {
				outcome := fixer.Apply(body, result.Warnings, nil)
				body = outcome.Text
				result = analysis.Analyze(path, body, analysis.Options{InitialLevel: level, Lints: lints})
			}
			results[i] = fileResult{path: path, text: body, result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		exitCode = exitInvalidUsage
		return err
	}

	worst := exitClean
	for _, fr := range results {
		idx := source.NewIndex(source.File{Name: fr.path, Text: fr.text})
		for _, w := range fr.result.Warnings {
			if jsonOut {
				printWireWarning(w.ToWire(idx))
			} else {
				printWarning(fr.path, w, idx)
			}
			switch w.Severity {
			case diag.Error:
				worst = exitErrorsFound
			case diag.Warn:
				if worst < exitWarningsFound {
					worst = exitWarningsFound
				}
			}
		}
	}
	exitCode = worst
	return nil
}

func printWarning(path string, w diag.Warning, idx *source.Index) {
	loc := idx.Locate(w.PrimarySpan().Start)
	fmt.Printf("%s:%d:%d: %s[%s]: %s\n", path, loc.Line, loc.Column, w.Severity, w.Code, w.Message)
}

func printWireWarning(w diag.WireWarning) {
	data, err := json.Marshal(w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding warning: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
