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
	"sync"

	"github.com/reika0717/sparql-proxy/internal/compressor"
)

// MemoryStore keeps serialized entries in a process-local map. Reads share
// an RWMutex; concurrent Put for the same key is last-writer-wins.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	comp compressor.Compressor
}

// NewMemoryStore builds a store whose values are run through comp.
func NewMemoryStore(comp compressor.Compressor) *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
		comp: comp,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	entry, err := deserialize(s.comp, raw)
	if err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, entry *Entry) error {
	raw, err := serialize(s.comp, entry)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Purge(ctx context.Context) error {
	s.mu.Lock()
	s.data = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}
