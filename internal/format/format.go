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

// Package format is a thin delegate to an external formatter binary. The
// formatter itself is out of scope for this module (spec section 1); this
// package only knows how to hand text to one and report a clear error if
// none is configured, so `rmslint format` has something to call. The
// language server does not use this package and offers no document
// formatting.
package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Delegate runs an external formatter command over text and returns its
// stdout. command is looked up on PATH; a typical value is "rms-fmt".
func Delegate(ctx context.Context, command string, text string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("format: no external formatter configured")
	}
	cmd := exec.CommandContext(ctx, command)
	cmd.Stdin = bytes.NewBufferString(text)
	var out bytes.Buffer
	cmd.Stdout = &out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("format: %s: %w: %s", command, err, stderr.String())
	}
	return out.String(), nil
}
