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

// Package langserver is the language-server façade (spec section 4.7): a
// document store keyed by URI, recomputed on every open/change, with
// diagnostics published in version order even though recompute happens
// off the calling goroutine.
//
// Staleness is tracked with a per-document generation token (a
// github.com/google/uuid value) rather than the version number itself,
// so a racing recompute from an *equal* version — possible if a client
// resends a notification — is still recognized as superseded by whatever
// arrived after it.
package langserver

import (
	"sync"

	"github.com/google/uuid"

	"github.com/rms-tools/rmslint/analysis"
	"github.com/rms-tools/rmslint/compat"
	"github.com/rms-tools/rmslint/diag"
)

// PublishFunc is called with a document's fresh diagnostics once a
// recompute completes without being superseded.
type PublishFunc func(uri string, version int, warnings []diag.Warning)

type document struct {
	text       string
	version    int
	generation string
	result     analysis.Result
}

// Store maps document URIs to their latest text, version, and analysis
// result. It is safe for concurrent use: the event loop calls Open/Change/
// Close from its single goroutine, but recompute happens in the
// background and reports back through publish.
type Store struct {
	mu      sync.Mutex
	pubMu   sync.Mutex // held across the staleness check and publish
	docs    map[string]*document
	level   compat.Level
	publish PublishFunc
}

// NewStore creates an empty Store. level is the initial compatibility
// level applied to documents that don't carry their own marker comment.
func NewStore(level compat.Level, publish PublishFunc) *Store {
	return &Store{docs: make(map[string]*document), level: level, publish: publish}
}

// SetLevel changes the default compatibility level for future recomputes.
// It does not retroactively recompute already-open documents.
func (s *Store) SetLevel(level compat.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
}

// Open registers a newly-opened document and kicks off its first analysis.
func (s *Store) Open(uri, text string, version int) {
	s.update(uri, text, version)
}

// Change updates a document's text and recomputes. If a subsequent Change
// arrives before this recompute finishes, this one's result is discarded
// on completion and never published (spec section 4.7, section 5).
func (s *Store) Change(uri, text string, version int) {
	s.update(uri, text, version)
}

// Close forgets a document entirely.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

func (s *Store) update(uri, text string, version int) {
	gen := uuid.NewString()

	s.mu.Lock()
	level := s.level
	doc, ok := s.docs[uri]
	if !ok {
		doc = &document{}
		s.docs[uri] = doc
	}
	doc.text = text
	doc.version = version
	doc.generation = gen
	s.mu.Unlock()

	go s.recompute(uri, text, version, gen, level)
}

func (s *Store) recompute(uri, text string, version int, gen string, level compat.Level) {
	result := analysis.Analyze(uri, text, analysis.Options{InitialLevel: level})

	// Holding pubMu until publish returns keeps a result that passed the
	// staleness check from being published after a newer generation's.
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	doc, ok := s.docs[uri]
	stale := !ok || doc.generation != gen
	if !stale {
		doc.result = result
	}
	s.mu.Unlock()

	if stale {
		return
	}
	if s.publish != nil {
		s.publish(uri, version, result.Warnings)
	}
}

// Result returns the most recently published analysis for uri, or ok ==
// false if no analysis of it has completed yet.
func (s *Store) Result(uri string) (analysis.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || doc.result.File == nil {
		return analysis.Result{}, false
	}
	return doc.result, true
}

// Text returns the current in-memory text for uri (which may be ahead of
// Result if a recompute is still in flight).
func (s *Store) Text(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.text, true
}
