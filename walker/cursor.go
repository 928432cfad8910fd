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

package walker

import "github.com/rms-tools/rmslint/ast"

// ArgCursor lets a lint peek forward and backward among the argument atoms
// of the command or attribute currently being visited, without consuming
// them (spec section 4.4, "a token iterator for peeking forward/backward
// within the current command").
type ArgCursor struct {
	atoms []ast.Atom
	pos   int
}

// NewArgCursor creates a cursor positioned before the first of atoms.
func NewArgCursor(atoms []ast.Atom) *ArgCursor {
	return &ArgCursor{atoms: atoms}
}

// Len reports the total number of argument atoms.
func (c *ArgCursor) Len() int { return len(c.atoms) }

// Peek returns the atom offset positions ahead of the cursor (offset may be
// negative to look behind), and whether that position exists.
func (c *ArgCursor) Peek(offset int) (ast.Atom, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.atoms) {
		return ast.Atom{}, false
	}
	return c.atoms[i], true
}

// Next returns the atom at the cursor and advances it by one.
func (c *ArgCursor) Next() (ast.Atom, bool) {
	a, ok := c.Peek(0)
	if ok {
		c.pos++
	}
	return a, ok
}

// Reset returns the cursor to its initial position.
func (c *ArgCursor) Reset() { c.pos = 0 }
