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

package lint

import (
	"strings"

	"github.com/rms-tools/rmslint/ast"
)

// suppressRange silences one lint id (or every lint, when id is "*")
// across [start, end).
type suppressRange struct {
	id         string
	start, end int
}

// buildSuppressions scans every comment atom in atoms for
// `rmslint-disable`/`rmslint-enable` markers and returns the resulting
// silenced ranges. A disable with no ids silences every lint; a bare
// `rmslint-enable` re-enables everything currently disabled.
func buildSuppressions(atoms []ast.Atom) []suppressRange {
	open := map[string]int{}
	var ranges []suppressRange
	fileEnd := 0

	for _, a := range atoms {
		if a.Kind == ast.EOF {
			fileEnd = a.Span.End
			continue
		}
		if a.Kind != ast.Comment {
			continue
		}
		text := strings.TrimSpace(a.Contents())
		if ids, all, ok := parseDirective(text, "rmslint-disable"); ok {
			for _, id := range normalizeIDs(ids, all) {
				if _, exists := open[id]; !exists {
					open[id] = a.Span.End
				}
			}
			continue
		}
		if ids, all, ok := parseDirective(text, "rmslint-enable"); ok {
			targets := normalizeIDs(ids, all)
			if all {
				for id, start := range open {
					ranges = append(ranges, suppressRange{id: id, start: start, end: a.Span.Start})
				}
				open = map[string]int{}
				continue
			}
			for _, id := range targets {
				if start, exists := open[id]; exists {
					ranges = append(ranges, suppressRange{id: id, start: start, end: a.Span.Start})
					delete(open, id)
				}
			}
		}
	}
	for id, start := range open {
		ranges = append(ranges, suppressRange{id: id, start: start, end: fileEnd})
	}
	return ranges
}

// parseDirective checks whether text begins with keyword and, if so,
// returns the comma-separated ids that follow (all == true if none were
// given, meaning "every lint").
func parseDirective(text, keyword string) (ids []string, all bool, ok bool) {
	if !strings.HasPrefix(text, keyword) {
		return nil, false, false
	}
	rest := strings.TrimSpace(text[len(keyword):])
	if rest == "" {
		return nil, true, true
	}
	for _, part := range strings.Split(rest, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, false, true
}

func normalizeIDs(ids []string, all bool) []string {
	if all {
		return []string{"*"}
	}
	return ids
}

func isSuppressed(ranges []suppressRange, code string, offset int) bool {
	for _, r := range ranges {
		if (r.id == "*" || r.id == code) && offset >= r.start && offset < r.end {
			return true
		}
	}
	return false
}
