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

// Package cachestore implements the pluggable cache-value store used by the
// HTTP front-end: a uniform get/put/purge contract over byte blobs keyed by
// SPARQL query fingerprint, with a compression layer shared by every
// backend so individual stores only ever move opaque bytes.
package cachestore

import (
	"context"

	"github.com/reika0717/sparql-proxy/internal/compressor"
)

// Entry is the decoded cache payload: the upstream content type plus the
// raw response bytes.
type Entry struct {
	ContentType string
	Body        []byte
}

// Store is the capability set every cache backend must implement. Get
// returns (nil, false, nil) on a clean miss; any other error must not crash
// the caller — the front-end treats it as a miss after logging.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Put(ctx context.Context, key string, entry *Entry) error
	Purge(ctx context.Context) error
}

// Kind selects which Store implementation to build from CACHE_STORE.
type Kind string

const (
	KindNull   Kind = "null"
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindRedis  Kind = "redis"
)

// Options configures construction of any Store variant. Only the fields
// relevant to the selected Kind are consulted.
type Options struct {
	Kind       Kind
	FileRoot   string
	RedisAddr  string
	RedisDB    int
	Compressor compressor.Compressor
}

// New builds the Store selected by opts.Kind.
func New(opts Options) (Store, error) {
	comp := opts.Compressor
	if comp == nil {
		comp = compressor.Raw{}
	}

	switch opts.Kind {
	case "", KindNull:
		return NewNullStore(), nil
	case KindMemory:
		return NewMemoryStore(comp), nil
	case KindFile:
		return NewFileStore(opts.FileRoot, comp)
	case KindRedis:
		return NewRedisStore(opts.RedisAddr, opts.RedisDB, comp)
	default:
		return nil, &UnknownKindError{Kind: string(opts.Kind)}
	}
}

// UnknownKindError is returned by New for an unrecognized CACHE_STORE value.
type UnknownKindError struct{ Kind string }

func (e *UnknownKindError) Error() string {
	return "cachestore: unknown store kind " + e.Kind
}
