// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cachestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/reika0717/sparql-proxy/internal/compressor"
)

// FileStore persists entries under root using the two-level fan-out
// root/AA/BB/<key>, so no single directory ever holds more than a few
// thousand files. Writes go to a temp file in the target directory and are
// then renamed into place, so a reader never observes a partial file.
type FileStore struct {
	root string
	comp compressor.Compressor
}

// NewFileStore creates the store, ensuring root exists.
func NewFileStore(root string, comp compressor.Compressor) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("cachestore: file store root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("cachestore: create root %s: %w", root, err)
	}
	return &FileStore{root: root, comp: comp}, nil
}

func (s *FileStore) pathFor(key string) string {
	if len(key) < 4 {
		// Degenerate keys (shouldn't happen with md5-derived fingerprints)
		// still need a stable two-level path.
		key = fmt.Sprintf("%04s", key)
	}
	return filepath.Join(s.root, key[0:2], key[2:4], key)
}

func (s *FileStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	raw, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cachestore: read %s: %w", key, err)
	}
	entry, err := deserialize(s.comp, raw)
	if err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (s *FileStore) Put(ctx context.Context, key string, entry *Entry) error {
	raw, err := serialize(s.comp, entry)
	if err != nil {
		return err
	}

	dest := s.pathFor(key)
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cachestore: mkdir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", key, uuid.NewString()))
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("cachestore: write temp for %s: %w", key, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cachestore: rename into place for %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Purge(ctx context.Context) error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("cachestore: purge root %s: %w", s.root, err)
	}
	return os.MkdirAll(s.root, 0o755)
}
