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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/internal/config"
	"github.com/rms-tools/rmslint/lint"
)

// Exit codes (spec section 6).
const (
	exitClean         = 0
	exitWarningsFound = 1
	exitErrorsFound   = 2
	exitInvalidUsage  = 3
)

var compatFlagNames = []string{"aoc", "up14", "up15", "wk", "hd", "de"}

type rootFlags struct {
	aoc, up14, up15, wk, hd, de bool
	verbose                     bool
}

var flags rootFlags

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if flags.verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		// zap itself failed to construct; fall back to a bare logger
		// rather than leave the CLI with a nil one.
		return zap.NewNop()
	}
	return logger
}

// compatFlagExplicit reports whether the user passed one of the --aoc/
// --up14/.../--de flags, as opposed to relying on file config or the
// built-in default.
func compatFlagExplicit() bool {
	return flags.aoc || flags.up14 || flags.up15 || flags.wk || flags.hd || flags.de
}

// resolveCompat applies the one default-compatibility flag the user set. If
// none was given, it falls back to cfg's Compatibility, and finally to
// Conquerors (AoC): CLI flags override file config, file config overrides
// the built-in default.
func resolveCompat(cfg config.Config) (compat.Level, error) {
	set := 0
	lvl := compat.Conquerors
	check := func(b bool, name string, l compat.Level) {
		if b {
			set++
			lvl = l
		}
	}
	check(flags.aoc, "aoc", compat.Conquerors)
	check(flags.up14, "up14", compat.UserPatch14)
	check(flags.up15, "up15", compat.UserPatch15)
	check(flags.wk, "wk", compat.WololoKingdoms)
	check(flags.hd, "hd", compat.HDEdition)
	check(flags.de, "de", compat.DefinitiveEdition)
	if set > 1 {
		return lvl, fmt.Errorf("at most one of --%v may be given", compatFlagNames)
	}
	if set == 1 {
		return lvl, nil
	}
	if parsed, ok := compat.Parse(cfg.Compatibility); ok {
		return parsed, nil
	}
	return lvl, nil
}

// loadConfig reads the project's rmslint.yaml (or .rmslint.yaml) from the
// current directory, falling back to config.Default when neither exists.
func loadConfig() (config.Config, error) {
	return config.Load(".")
}

// filterLints returns lint.All() with every id named in disabled removed,
// so rmslint.yaml's disabled_lints augments whatever `rmslint-disable`
// comments a file already carries. A nil/empty disabled list leaves the
// default lint set (nil) for lint.NewEngine to expand into lint.All().
func filterLints(disabled []string) []lint.Lint {
	if len(disabled) == 0 {
		return nil
	}
	skip := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		skip[id] = true
	}
	kept := make([]lint.Lint, 0, len(lint.All()))
	for _, l := range lint.All() {
		if !skip[l.ID()] {
			kept = append(kept, l)
		}
	}
	return kept
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rmslint [file]",
		Short: "Static analyzer and language server for random-map-script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCheck(cmd, args)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&flags.aoc, "aoc", false, "target The Conquerors compatibility")
	root.PersistentFlags().BoolVar(&flags.up14, "up14", false, "target UserPatch 1.4 compatibility")
	root.PersistentFlags().BoolVar(&flags.up15, "up15", false, "target UserPatch 1.5 compatibility")
	root.PersistentFlags().BoolVar(&flags.wk, "wk", false, "target WololoKingdoms compatibility")
	root.PersistentFlags().BoolVar(&flags.hd, "hd", false, "target HD Edition compatibility")
	root.PersistentFlags().BoolVar(&flags.de, "de", false, "target Definitive Edition compatibility")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newFixCmd())
	root.AddCommand(newFormatCmd())
	root.AddCommand(newPackCmd())
	root.AddCommand(newUnpackCmd())
	root.AddCommand(newServerCmd())
	return root
}
