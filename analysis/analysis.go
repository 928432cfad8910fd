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

// Package analysis ties the pipeline together: lex, parse, walk, lint.
// It plays the role the teacher's compiler.go facade played for protobuf
// compilation, except a Result is always total (spec section 7) — there is
// no failure mode, only a Result with more or fewer warnings in it.
package analysis

import (
	"github.com/rms-tools/rmslint/ast"
	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/lint"
	"github.com/rms-tools/rmslint/parser"
	"github.com/rms-tools/rmslint/symtab"
)

// Result is everything one analysis pass over a file produces.
type Result struct {
	File       *ast.File
	Warnings   []diag.Warning
	FinalLevel compat.Level
}

// Options configures one Analyze call.
type Options struct {
	// InitialLevel is the compatibility level in effect before any
	// `Compatibility: …` marker comment is encountered (spec section 4.3).
	InitialLevel compat.Level
	// Lints overrides the default lint set (lint.All()); primarily for
	// tests that want to isolate a single check.
	Lints []lint.Lint
}

// Analyze runs the full pipeline over text from the named file.
func Analyze(file, text string, opts Options) Result {
	tree, parseBag := parser.Parse(file, text)

	table := symtab.New(opts.InitialLevel)
	engine := lint.NewEngine(opts.Lints...)
	bag, w := engine.Run(tree, table, parseBag)

	return Result{
		File:       tree,
		Warnings:   bag.All(),
		FinalLevel: w.Level(),
	}
}

// CountAtLeast reports how many of r's warnings have severity >= min.
func (r Result) CountAtLeast(min diag.Severity) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Severity >= min {
			n++
		}
	}
	return n
}
