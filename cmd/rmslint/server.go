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
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/internal/cache"
	"github.com/rms-tools/rmslint/internal/langserver"
)

// cacheFileName is the workspace cache database's path, relative to the
// directory the server is run from (mirrors rmslint.yaml's own
// current-directory lookup in loadConfig).
const cacheFileName = ".rmslint-cache.sqlite"

func newServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run an LSP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				exitCode = exitInvalidUsage
				return err
			}

			level, err := resolveCompat(cfg)
			if err != nil {
				exitCode = exitInvalidUsage
				return err
			}
			logger := newLogger()
			defer logger.Sync()

			var store *cache.Store
			if cfg.Cache {
				store, err = cache.Open(cacheFileName)
				if err != nil {
					logger.Warn("workspace cache unavailable, continuing without persistence", zap.Error(err))
					store = nil
				} else {
					defer store.Close()
					// Restore the last compat level only if the user didn't
					// explicitly pin one on this invocation.
					if !compatFlagExplicit() {
						if name, ok, err := store.Compatibility(); err == nil && ok {
							if parsed, ok := compat.Parse(name); ok {
								level = parsed
							}
						}
					}
					if err := store.SetCompatibility(level.String()); err != nil {
						logger.Warn("persisting compatibility level failed", zap.Error(err))
					}
				}
			}

			transport := langserver.NewTransport(os.Stdin, os.Stdout)
			server := langserver.NewServer(transport, level, logger)
			if store != nil {
				server.SetCache(store)
			}
			if err := server.Serve(context.Background()); err != nil {
				exitCode = exitErrorsFound
				return err
			}
			exitCode = exitClean
			return nil
		},
	}
	return cmd
}
