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
	"fmt"
	"strconv"

	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/walker"
)

// sumOfChances flags a start_random/end_random chain whose percent_chance
// values don't sum to exactly 100.
type sumOfChances struct{ Base }

func (sumOfChances) ID() string { return "sum-of-chances" }

func (l sumOfChances) AfterNode(w *walker.Walker, n ast.Node, r *diag.Bag) {
	chain, ok := n.(*ast.RandomChain)
	if !ok || len(chain.Branches) == 0 {
		return
	}
	sum := 0
	for _, b := range chain.Branches {
		if b.Percent == nil {
			continue
		}
		v, err := strconv.Atoi(b.Percent.Text)
		if err != nil {
			continue
		}
		sum += v
	}
	if sum == 100 {
		return
	}
	r.Add(diag.Warning{
		Severity: diag.Warn,
		Code:     l.ID(),
		Message:  fmt.Sprintf("percent_chance branches sum to %d, not 100", sum),
		Labels:   []diag.Label{{Span: chain.Start.Span, Message: "random chain starts here", Role: diag.Primary}},
	})
}
