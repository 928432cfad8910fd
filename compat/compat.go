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

// Package compat models the compatibility-level total order the analyzer
// targets, and the comment marker that lets a script change it mid-file
// (spec sections 3 and 4.3). Built-in command and constant tables are
// compile-time data indexed by Level (spec section 9, "Design Notes");
// no reflection or external data file is involved.
package compat

import (
	"regexp"
	"strings"
)

// Level is a point in the total order Conquerors < UserPatch14 < UserPatch15
// < WololoKingdoms < HDEdition < DefinitiveEdition.
type Level int8

const (
	Conquerors Level = iota
	UserPatch14
	UserPatch15
	WololoKingdoms
	HDEdition
	DefinitiveEdition
)

func (l Level) String() string {
	switch l {
	case Conquerors:
		return "AoC"
	case UserPatch14:
		return "UP14"
	case UserPatch15:
		return "UP15"
	case WololoKingdoms:
		return "WK"
	case HDEdition:
		return "HD"
	case DefinitiveEdition:
		return "DE"
	default:
		return "unknown"
	}
}

// names maps every accepted spelling (CLI flag, config file, marker comment)
// to a Level, case-insensitively.
var names = map[string]Level{
	"aoc":  Conquerors,
	"up14": UserPatch14,
	"up15": UserPatch15,
	"wk":   WololoKingdoms,
	"hd":   HDEdition,
	"de":   DefinitiveEdition,
}

// Parse resolves one of the accepted spellings (case-insensitive) to a
// Level. ok is false for anything else.
func Parse(s string) (Level, bool) {
	l, ok := names[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// marker matches a compatibility comment's trimmed contents, e.g.
// "Compatibility: DE" (spec section 6, "Compatibility marker syntax").
var marker = regexp.MustCompile(`(?i)^\s*Compatibility:\s*(AoC|UP14|UP15|WK|HD|DE)\s*$`)

// Marker reports the Level named by a comment's contents, if any. Contents
// should already have the `/* */` delimiters stripped (see [ast.Atom.Contents]).
func Marker(contents string) (Level, bool) {
	m := marker.FindStringSubmatch(contents)
	if m == nil {
		return 0, false
	}
	return Parse(m[1])
}

// Range is the inclusive span of levels at which a construct (a command, an
// attribute, a built-in constant) is available. With HasMax false there is
// no upper bound: the construct survives into every later level.
type Range struct {
	Min Level
	Max Level // zero value (Conquerors) is only meaningful when HasMax is true
	HasMax bool
}

// Supports reports whether lvl falls within r.
func (r Range) Supports(lvl Level) bool {
	if lvl < r.Min {
		return false
	}
	if r.HasMax && lvl > r.Max {
		return false
	}
	return true
}

// Since returns a Range with no upper bound.
func Since(min Level) Range { return Range{Min: min} }

// Between returns a Range bounded on both ends.
func Between(min, max Level) Range { return Range{Min: min, Max: max, HasMax: true} }
