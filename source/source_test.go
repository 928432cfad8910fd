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

package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexLocate(t *testing.T) {
	text := "abc\ndef\nghi"
	idx := NewIndex(File{Name: "f", Text: text})

	loc := idx.Locate(0)
	require.Equal(t, 1, loc.Line)
	require.Equal(t, 1, loc.Column)

	loc = idx.Locate(4) // 'd'
	require.Equal(t, 2, loc.Line)
	require.Equal(t, 1, loc.Column)

	loc = idx.Locate(len(text))
	require.Equal(t, 3, loc.Line)
	require.Equal(t, 4, loc.Column)
}

func TestIndexLocateClampsOutOfRange(t *testing.T) {
	idx := NewIndex(File{Name: "f", Text: "abc"})
	require.Equal(t, idx.Locate(100), idx.Locate(3))
	require.Equal(t, idx.Locate(0), idx.Locate(-5))
}

func TestIndexOffsetRoundTrip(t *testing.T) {
	text := "hello\nworld\n"
	idx := NewIndex(File{Name: "f", Text: text})
	for _, offset := range []int{0, 3, 6, 9, len(text)} {
		loc := idx.Locate(offset)
		got := idx.Offset(loc.Line, loc.UTF16)
		require.Equal(t, offset, got, "offset %d round-tripped through line %d col %d", offset, loc.Line, loc.UTF16)
	}
}

func TestSpanOverlapsAndContains(t *testing.T) {
	a := Span{File: "f", Start: 0, End: 10}
	b := Span{File: "f", Start: 5, End: 15}
	c := Span{File: "f", Start: 10, End: 20}

	require.True(t, a.Overlaps(b))
	require.False(t, a.Overlaps(c), "touching spans do not overlap")
	require.True(t, a.Contains(Span{File: "f", Start: 2, End: 8}))
	require.False(t, a.Contains(b))
}

func TestUnion(t *testing.T) {
	a := Span{File: "f", Start: 5, End: 10}
	b := Span{File: "f", Start: 0, End: 7}
	u := Union(a, b)
	require.Equal(t, Span{File: "f", Start: 0, End: 10}, u)
}

func TestUnionPanicsOnDifferentFiles(t *testing.T) {
	require.Panics(t, func() {
		Union(Span{File: "a"}, Span{File: "b"})
	})
}

func TestGraphemeAwareColumn(t *testing.T) {
	// "e" followed by a combining acute accent (U+0301) is two code points
	// but one user-perceived character; the column count should reflect
	// that rather than counting runes.
	text := "x" + "e\u0301" + "y"
	idx := NewIndex(File{Name: "f", Text: text})
	loc := idx.Locate(len(text))
	require.Equal(t, 4, loc.Column, "x, e+accent, y should be 3 grapheme clusters plus the 1-based origin")
}
