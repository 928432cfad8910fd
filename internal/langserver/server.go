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
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/diag"
	"github.com/rms-tools/rmslint/internal/cache"
	"github.com/rms-tools/rmslint/source"
)

// Server binds a Store to a Transport, translating the handful of
// textDocument/* notifications and requests this façade supports (spec
// section 4.7) into Store calls and diagnostic publications.
type Server struct {
	store     *Store
	transport *Transport
	log       *zap.Logger
	cache     *cache.Store
}

// SetCache attaches a workspace cache used to record recently-opened
// documents across server restarts. Passing nil (the default) disables
// this bookkeeping entirely.
func (s *Server) SetCache(c *cache.Store) {
	s.cache = c
}

// NewServer wires level as the default compatibility for documents that
// carry no marker comment of their own. Diagnostics are published back to
// the client as they become available, over transport.
func NewServer(transport *Transport, level compat.Level, log *zap.Logger) *Server {
	s := &Server{transport: transport, log: log}
	s.store = NewStore(level, s.publishDiagnostics)
	return s
}

func (s *Server) publishDiagnostics(uri string, version int, warnings []diag.Warning) {
	text, ok := s.store.Text(uri)
	if !ok {
		return
	}
	idx := source.NewIndex(source.File{Name: uri, Text: text})
	diags := ToDiagnostics(warnings, idx)
	items := make([]map[string]interface{}, 0, len(diags))
	for _, d := range diags {
		items = append(items, map[string]interface{}{
			"range": map[string]interface{}{
				"start": map[string]int{"line": d.Line, "character": d.Character},
				"end":   map[string]int{"line": d.EndLine, "character": d.EndChar},
			},
			"severity": d.Severity,
			"code":     d.Code,
			"message":  d.Message,
			"source":   "rmslint",
		})
	}
	if err := s.transport.Notify("textDocument/publishDiagnostics", map[string]interface{}{
		"uri":         uri,
		"version":     version,
		"diagnostics": items,
	}); err != nil && s.log != nil {
		s.log.Warn("publishDiagnostics failed", zap.Error(err), zap.String("uri", uri))
	}
}

// Serve blocks until ctx is cancelled or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.transport.Serve(ctx, s.handle)
}

type textDocumentIdentifier struct {
	URI string `json:"uri"`
}

type didOpenParams struct {
	TextDocument struct {
		URI     string `json:"uri"`
		Text    string `json:"text"`
		Version int    `json:"version"`
	} `json:"textDocument"`
}

type didChangeParams struct {
	TextDocument struct {
		URI     string `json:"uri"`
		Version int    `json:"version"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type didCloseParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type foldingRangeParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type codeActionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Range        struct {
		Start struct{ Line, Character int }
		End   struct{ Line, Character int }
	} `json:"range"`
}

func (s *Server) handle(ctx context.Context, method string, params json.RawMessage) (interface{}, error) {
	switch method {
	case "initialize":
		return map[string]interface{}{
			"capabilities": map[string]interface{}{
				"textDocumentSync":     1,
				"foldingRangeProvider": true,
				"codeActionProvider":   true,
			},
		}, nil

	case "textDocument/didOpen":
		var p didOpenParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
		s.store.Open(p.TextDocument.URI, p.TextDocument.Text, p.TextDocument.Version)
		if s.cache != nil {
			if err := s.cache.TouchDocument(p.TextDocument.URI, time.Now().UnixNano()); err != nil && s.log != nil {
				s.log.Warn("touching document in cache failed", zap.Error(err), zap.String("uri", p.TextDocument.URI))
			}
		}
		return nil, nil

	case "textDocument/didChange":
		var p didChangeParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
		if len(p.ContentChanges) > 0 {
			s.store.Change(p.TextDocument.URI, p.ContentChanges[0].Text, p.TextDocument.Version)
		}
		return nil, nil

	case "textDocument/didClose":
		var p didCloseParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
		s.store.Close(p.TextDocument.URI)
		return nil, nil

	case "textDocument/foldingRange":
		var p foldingRangeParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
		ranges := s.store.FoldingRanges(p.TextDocument.URI)
		out := make([]map[string]int, 0, len(ranges))
		for _, r := range ranges {
			out = append(out, map[string]int{"startLine": r.StartLine, "endLine": r.EndLine})
		}
		return out, nil

	case "textDocument/codeAction":
		var p codeActionParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
		text, ok := s.store.Text(p.TextDocument.URI)
		if !ok {
			return nil, nil
		}
		idx := source.NewIndex(source.File{Name: p.TextDocument.URI, Text: text})
		start := idx.Offset(p.Range.Start.Line+1, p.Range.Start.Character)
		end := idx.Offset(p.Range.End.Line+1, p.Range.End.Character)
		actions := s.store.CodeActions(p.TextDocument.URI, start, end)
		out := make([]map[string]interface{}, 0, len(actions))
		for _, a := range actions {
			out = append(out, map[string]interface{}{"title": a.Title})
		}
		return out, nil

	case "shutdown":
		return nil, nil

	case "exit":
		return nil, ErrStop

	default:
		return nil, nil
	}
}
