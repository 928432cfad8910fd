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

	"github.com/rms-tools/rmslint/internal/zipfmt"
)

func newPackCmd() *cobra.Command {
	var include string
	cmd := &cobra.Command{
		Use:   "pack <folder> <out.zip>",
		Short: "Package an RMS folder into a single ZIP-RMS archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := zipfmt.Pack(args[0], args[1], include)
			if err != nil {
				exitCode = exitErrorsFound
				return err
			}
			fmt.Printf("packed %d file(s) into %s\n", n, args[1])
			exitCode = exitClean
			return nil
		},
	}
	cmd.Flags().StringVar(&include, "include", zipfmt.DefaultInclude, "doublestar glob of files to include")
	return cmd
}

func newUnpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack <in.zip> <folder>",
		Short: "Extract a ZIP-RMS archive into a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := zipfmt.Unpack(args[0], args[1])
			if err != nil {
				exitCode = exitErrorsFound
				return err
			}
			fmt.Printf("unpacked %d file(s) into %s\n", n, args[1])
			exitCode = exitClean
			return nil
		},
	}
	return cmd
}
