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

// Command rmslint is the CLI surface over the analysis core (spec section
// 6): `check`, `fix`, `format`, `pack`, `unpack`, and `server` (an LSP
// server over stdio).
package main

import (
	"fmt"
	"os"
)

// exitCode is set by whichever subcommand ran, then applied by main after
// cobra returns. A cobra-level error (bad flags, unknown subcommand) always
// wins with exitInvalidUsage.
var exitCode = exitClean

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == exitClean {
			exitCode = exitInvalidUsage
		}
	}
	os.Exit(exitCode)
}
