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

// Package source models source files, byte spans, and the line/column
// bookkeeping needed to translate a byte offset into something a human (or
// an editor) can point at.
//
// A [Span] is a half-open byte interval `[Start, End)` into a single [File].
// Spans are the currency the whole analysis pipeline trades in: atoms,
// nodes, and warnings all carry spans rather than pointers into a parse
// tree, so that a [Span] remains meaningful even after the tree that
// produced it has been discarded.
package source

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rivo/uniseg"
)

// File identifies a single source file by name, paired with its full text.
// Two Files are the same file if their Name matches; Text is carried
// alongside so callers can compute Locations without a side lookup.
type File struct {
	Name string
	Text string
}

// Span is a half-open byte interval `[Start, End)` into a named file.
// A zero-width span (Start == End) is valid and denotes an insertion point.
type Span struct {
	File  string
	Start int
	End   int
}

// Len reports the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether s contains other (same file, other's range a
// subset of s's range; equal ranges count as contained).
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether s and other share any byte, in the same file.
// Two spans that merely touch at an endpoint (s.End == other.Start) do not
// overlap.
func (s Span) Overlaps(other Span) bool {
	if s.File != other.File {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// Union returns the smallest span containing both s and other. Both must
// name the same file.
func Union(a, b Span) Span {
	if a.File != b.File {
		panic(fmt.Sprintf("source: cannot union spans from different files %q and %q", a.File, b.File))
	}
	u := a
	if b.Start < u.Start {
		u.Start = b.Start
	}
	if b.End > u.End {
		u.End = b.End
	}
	return u
}

// Location is a human-displayable position within a file: a 1-based line
// and column plus the byte offset it was derived from. The UTF16 field
// mirrors the offset expressed in UTF-16 code units from the start of its
// line, which is what the Language Server Protocol wants for positions.
type Location struct {
	Offset int
	Line   int
	Column int
	UTF16  int
}

// Index is a line index over a [File]'s text, built lazily on first use,
// that turns byte offsets into [Location]s in O(log n) time.
type Index struct {
	file File

	once       sync.Once
	lineStarts []int // byte offset of the first byte of each line
	utf16Start []int // UTF-16 code units consumed by all prior lines
}

// NewIndex constructs a line index for the given file. Building the index
// is deferred until the first call to Locate.
func NewIndex(file File) *Index {
	return &Index{file: file}
}

func (idx *Index) build() {
	idx.once.Do(func() {
		idx.lineStarts = []int{0}
		idx.utf16Start = []int{0}
		text := idx.file.Text
		byteOff, utf16Off := 0, 0
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' {
				byteOff = i + 1
				idx.lineStarts = append(idx.lineStarts, byteOff)
				idx.utf16Start = append(idx.utf16Start, utf16Off+utf16Len(text[idx.lineStarts[len(idx.lineStarts)-2]:byteOff]))
				utf16Off = idx.utf16Start[len(idx.utf16Start)-1]
			}
		}
	})
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Locate computes the Location for a byte offset into the indexed file.
// Offsets past end-of-file clamp to the last valid position.
func (idx *Index) Locate(offset int) Location {
	idx.build()
	if offset < 0 {
		offset = 0
	}
	if offset > len(idx.file.Text) {
		offset = len(idx.file.Text)
	}

	line := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}

	lineStart := idx.lineStarts[line]
	chunk := idx.file.Text[lineStart:offset]

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: graphemeWidth(chunk) + 1,
		UTF16:  utf16Len(chunk),
	}
}

// Offset is the inverse of Locate: given a 1-based line and a column
// expressed in UTF-16 code units from the start of that line (the unit an
// LSP client's positions use), it returns the corresponding byte offset.
// An out-of-range line clamps to the nearest valid one; an out-of-range
// column clamps to the line's end.
func (idx *Index) Offset(line, utf16Col int) int {
	idx.build()
	if line < 1 {
		line = 1
	}
	i := line - 1
	if i >= len(idx.lineStarts) {
		return len(idx.file.Text)
	}
	lineStart := idx.lineStarts[i]
	lineEnd := len(idx.file.Text)
	if i+1 < len(idx.lineStarts) {
		lineEnd = idx.lineStarts[i+1]
	}

	consumed := 0
	for byteOff, r := range idx.file.Text[lineStart:lineEnd] {
		if consumed >= utf16Col {
			return lineStart + byteOff
		}
		if r > 0xFFFF {
			consumed += 2
		} else {
			consumed++
		}
	}
	return lineEnd
}

// graphemeWidth counts the number of user-perceived characters (grapheme
// clusters) in s, so that multi-byte runes and combined emoji sequences
// each count as a single column the way an editor's cursor would.
func graphemeWidth(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n++
	}
	return n
}
