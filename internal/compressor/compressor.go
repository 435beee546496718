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

// Package compressor implements the byte-level value transform used by the
// cache store. A Compressor is a (encode, decode) pair identified by a short
// id; the id is folded into cache keys so that switching codecs never risks
// decoding a stale entry written by a previous one.
package compressor

import "fmt"

// Compressor transforms cache-value bytes on the way in and out of a store.
type Compressor interface {
	// ID is the short identifier appended to cache keys, e.g. "raw", "deflate".
	ID() string
	Encode(p []byte) ([]byte, error)
	Decode(p []byte) ([]byte, error)
}

// Registry resolves a COMPRESSOR env selector to a Compressor instance.
type Registry struct {
	compressors map[string]Compressor
}

// NewRegistry builds the default registry containing every known variant.
func NewRegistry() *Registry {
	r := &Registry{compressors: make(map[string]Compressor, 2)}
	r.register(Raw{})
	r.register(NewDeflate(DefaultLevel))
	return r
}

func (r *Registry) register(c Compressor) {
	r.compressors[c.ID()] = c
}

// Get resolves a compressor by id. Returns an error for unknown ids so that
// a misconfigured COMPRESSOR fails fast at startup rather than silently
// falling back to raw.
func (r *Registry) Get(id string) (Compressor, error) {
	if id == "" {
		id = Raw{}.ID()
	}
	c, ok := r.compressors[id]
	if !ok {
		return nil, fmt.Errorf("compressor: unknown id %q", id)
	}
	return c, nil
}
