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

// Package zipfmt implements the ZIP-RMS packaging codec (spec section 1,
// "out of scope... thin adapters"): bundling a folder of .rms sources (and
// whatever else a map pack ships) into a single zip, and the reverse.
package zipfmt

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude is the glob pack uses when the caller doesn't supply one:
// every file, so a map pack can carry its .rms sources alongside whatever
// data/art assets it references.
const DefaultInclude = "**/*"

// Pack walks srcDir, adding every file matching include (a doublestar glob
// relative to srcDir) into a new zip archive at destZip.
func Pack(srcDir, destZip, include string) (files int, err error) {
	if include == "" {
		include = DefaultInclude
	}
	out, err := os.Create(destZip)
	if err != nil {
		return 0, fmt.Errorf("zipfmt: create %s: %w", destZip, err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	defer w.Close()

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		matched, err := doublestar.Match(include, rel)
		if err != nil {
			return fmt.Errorf("zipfmt: bad include pattern %q: %w", include, err)
		}
		if !matched {
			return nil
		}
		if err := addFile(w, path, rel); err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		return files, err
	}
	return files, nil
}

func addFile(w *zip.Writer, srcPath, archivePath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := w.Create(archivePath)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}

// Unpack extracts every entry in srcZip into destDir, refusing entries
// whose name would escape destDir via `..` traversal.
func Unpack(srcZip, destDir string) (files int, err error) {
	r, err := zip.OpenReader(srcZip)
	if err != nil {
		return 0, fmt.Errorf("zipfmt: open %s: %w", srcZip, err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, err
	}

	for _, entry := range r.File {
		cleaned := filepath.Clean(entry.Name)
		if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
			return files, fmt.Errorf("zipfmt: refusing to extract %q: escapes destination", entry.Name)
		}
		dest := filepath.Join(destDir, cleaned)
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return files, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return files, err
		}
		if err := extractFile(entry, dest); err != nil {
			return files, err
		}
		files++
	}
	return files, nil
}

func extractFile(entry *zip.File, dest string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}
