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

package diag

import (
	"fmt"
	"sort"
)

// Bag accumulates warnings from a single lex+parse+lint pass. Unlike the
// teacher's reporter.Handler, a Bag never aborts: every entry point that
// takes one is total (spec section 7), so Add can never refuse a warning.
type Bag struct {
	warnings []Warning
}

// Add appends w to the bag.
func (b *Bag) Add(w Warning) {
	b.warnings = append(b.warnings, w)
}

// Errorf is a convenience for appending a severity-Error warning with the
// given code, a single label, and a formatted message.
func (b *Bag) Errorf(code string, label Label, format string, args ...any) {
	b.Add(Warning{
		Severity: Error,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Labels:   []Label{label},
	})
}

// All returns every warning in the bag, ordered by the byte offset of each
// warning's primary span (ties broken by insertion order), which is the
// order the language server façade and the CLI both want to present them.
func (b *Bag) All() []Warning {
	out := make([]Warning, len(b.warnings))
	copy(out, b.warnings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PrimarySpan().Start < out[j].PrimarySpan().Start
	})
	return out
}

// Len reports how many warnings are in the bag.
func (b *Bag) Len() int { return len(b.warnings) }

// CountAtLeast reports how many warnings have severity >= min.
func (b *Bag) CountAtLeast(min Severity) int {
	n := 0
	for _, w := range b.warnings {
		if w.Severity >= min {
			n++
		}
	}
	return n
}
