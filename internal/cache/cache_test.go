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

package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspace.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCompatibilityRoundTrip(t *testing.T) {
	s := openTemp(t)

	_, ok, err := s.Compatibility()
	require.NoError(t, err)
	require.False(t, ok, "nothing recorded yet")

	require.NoError(t, s.SetCompatibility("de"))
	name, ok, err := s.Compatibility()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "de", name)
}

func TestSetCompatibilityOverwritesPreviousValue(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.SetCompatibility("aoc"))
	require.NoError(t, s.SetCompatibility("hd"))

	name, ok, err := s.Compatibility()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hd", name)
}

func TestTouchDocumentOrdersByMostRecent(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.TouchDocument("file:///a.rms", 1))
	require.NoError(t, s.TouchDocument("file:///b.rms", 2))
	require.NoError(t, s.TouchDocument("file:///c.rms", 3))

	uris, err := s.RecentDocuments()
	require.NoError(t, err)
	require.Equal(t, []string{"file:///c.rms", "file:///b.rms", "file:///a.rms"}, uris)
}

func TestTouchDocumentUpdatesExistingEntry(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.TouchDocument("file:///a.rms", 1))
	require.NoError(t, s.TouchDocument("file:///b.rms", 2))
	require.NoError(t, s.TouchDocument("file:///a.rms", 3))

	uris, err := s.RecentDocuments()
	require.NoError(t, err)
	require.Equal(t, []string{"file:///a.rms", "file:///b.rms"}, uris)
}

func TestRecentDocumentsEmptyInitially(t *testing.T) {
	s := openTemp(t)
	uris, err := s.RecentDocuments()
	require.NoError(t, err)
	require.Empty(t, uris)
}
