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

package langserver

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/internal/cache"
)

func newTestServer() (*Server, *bytes.Buffer) {
	var out bytes.Buffer
	transport := NewTransport(&bytes.Buffer{}, &out)
	return NewServer(transport, compat.Conquerors, nil), &out
}

func TestHandleInitializeReturnsCapabilities(t *testing.T) {
	s, _ := newTestServer()
	result, err := s.handle(context.Background(), "initialize", nil)
	require.NoError(t, err)
	caps, ok := result.(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, caps, "capabilities")
}

func TestHandleDidOpenPopulatesStore(t *testing.T) {
	s, out := newTestServer()
	params, _ := json.Marshal(map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri": "file:///a.rms", "text": "frobnicate_terrain\n", "version": 1,
		},
	})
	_, err := s.handle(context.Background(), "textDocument/didOpen", params)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, ok := s.store.Result("file:///a.rms")
		return ok
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool { return out.Len() > 0 }, time.Second, time.Millisecond)
}

func TestHandleFoldingRangeReturnsRanges(t *testing.T) {
	s, _ := newTestServer()
	openParams, _ := json.Marshal(map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri": "file:///a.rms", "text": "<PLAYER_SETUP>\ncreate_land {\n  base_size 10\n}\n", "version": 1,
		},
	})
	_, err := s.handle(context.Background(), "textDocument/didOpen", openParams)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, ok := s.store.Result("file:///a.rms")
		return ok
	}, time.Second, time.Millisecond)

	foldParams, _ := json.Marshal(map[string]interface{}{
		"textDocument": map[string]interface{}{"uri": "file:///a.rms"},
	})
	result, err := s.handle(context.Background(), "textDocument/foldingRange", foldParams)
	require.NoError(t, err)
	ranges, ok := result.([]map[string]int)
	require.True(t, ok)
	require.NotEmpty(t, ranges)
}

func TestHandleShutdownAndExit(t *testing.T) {
	s, _ := newTestServer()
	result, err := s.handle(context.Background(), "shutdown", nil)
	require.NoError(t, err)
	require.Nil(t, result)

	_, err = s.handle(context.Background(), "exit", nil)
	require.ErrorIs(t, err, ErrStop)
}

func TestHandleUnknownMethodIsANoOp(t *testing.T) {
	s, _ := newTestServer()
	result, err := s.handle(context.Background(), "textDocument/hover", nil)
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestHandleDidOpenTouchesAttachedCache(t *testing.T) {
	s, _ := newTestServer()
	store, err := cache.Open(filepath.Join(t.TempDir(), "workspace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	s.SetCache(store)

	params, _ := json.Marshal(map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri": "file:///a.rms", "text": "create_land\n", "version": 1,
		},
	})
	_, err = s.handle(context.Background(), "textDocument/didOpen", params)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		uris, err := store.RecentDocuments()
		return err == nil && len(uris) == 1
	}, time.Second, time.Millisecond)
}

func TestHandleDidOpenWithoutCacheDoesNotPanic(t *testing.T) {
	s, _ := newTestServer()
	params, _ := json.Marshal(map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri": "file:///a.rms", "text": "create_land\n", "version": 1,
		},
	})
	_, err := s.handle(context.Background(), "textDocument/didOpen", params)
	require.NoError(t, err)
}
