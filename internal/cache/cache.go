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

// Package cache persists small pieces of workspace state — the last
// compatibility level used, and the last set of documents the language
// server had open — between sessions, backed by modernc.org/sqlite (a
// pure-Go driver, so the server binary stays cgo-free). This is entirely
// optional ambient state: losing it just means the server starts with
// defaults again.
package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS workspace_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS recent_documents (
	uri        TEXT PRIMARY KEY,
	last_seen  INTEGER NOT NULL
);
`

// Store wraps a workspace cache database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SetCompatibility persists the last compatibility level name in use.
func (s *Store) SetCompatibility(name string) error {
	_, err := s.db.Exec(
		`INSERT INTO workspace_state(key, value) VALUES ('compatibility', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, name)
	return err
}

// Compatibility returns the last-persisted compatibility level name, or
// ok == false if none has ever been recorded.
func (s *Store) Compatibility() (name string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT value FROM workspace_state WHERE key = 'compatibility'`)
	if err := row.Scan(&name); err == sql.ErrNoRows {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// TouchDocument records uri as recently seen, with seenAt as an opaque,
// monotonically increasing ordering key supplied by the caller (the cache
// package itself never calls time.Now so its behavior stays deterministic
// and testable).
func (s *Store) TouchDocument(uri string, seenAt int64) error {
	_, err := s.db.Exec(
		`INSERT INTO recent_documents(uri, last_seen) VALUES (?, ?)
		 ON CONFLICT(uri) DO UPDATE SET last_seen = excluded.last_seen`, uri, seenAt)
	return err
}

// RecentDocuments returns every tracked document URI, most recently seen
// first.
func (s *Store) RecentDocuments() ([]string, error) {
	rows, err := s.db.Query(`SELECT uri FROM recent_documents ORDER BY last_seen DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var uris []string
	for rows.Next() {
		var uri string
		if err := rows.Scan(&uri); err != nil {
			return nil, err
		}
		uris = append(uris, uri)
	}
	return uris, rows.Err()
}
