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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rms-tools/rmslint/internal/format"
)

func newFormatCmd() *cobra.Command {
	var delegate string
	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Run an external formatter over a file (formatting itself is out of scope)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(args[0], delegate)
		},
	}
	cmd.Flags().StringVar(&delegate, "with", "", "external formatter command to pipe the file through")
	cmd.MarkFlagRequired("with")
	return cmd
}

func runFormat(path, delegate string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		exitCode = exitInvalidUsage
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := format.Delegate(context.Background(), delegate, string(raw))
	if err != nil {
		exitCode = exitErrorsFound
		return err
	}

	fmt.Print(out)
	exitCode = exitClean
	return nil
}
