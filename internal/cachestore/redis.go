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
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/reika0717/sparql-proxy/internal/compressor"
)

// redisClienter is the minimal surface RedisStore needs from a Redis
// client, kept as an interface so tests can swap in a fake without a real
// server.
type redisClienter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	FlushDB(ctx context.Context) error
}

type goRedisClient struct{ c *redis.Client }

func (g *goRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := g.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errNotFound
	}
	return b, err
}

func (g *goRedisClient) Set(ctx context.Context, key string, value []byte) error {
	return g.c.Set(ctx, key, value, 0).Err()
}

func (g *goRedisClient) FlushDB(ctx context.Context) error {
	return g.c.FlushDB(ctx).Err()
}

var errNotFound = errors.New("cachestore: redis key not found")

// RedisStore backs the cache with a single Redis instance. It is a
// per-process convenience store, not a distributed-coherence mechanism —
// cache coherence across proxy instances remains a Non-goal even when two
// proxies happen to point at the same Redis.
type RedisStore struct {
	client redisClienter
	comp   compressor.Compressor
}

// NewRedisStore dials addr/db and wraps it behind the redisClienter seam.
func NewRedisStore(addr string, db int, comp compressor.Compressor) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("cachestore: CACHE_REDIS_ADDR must be set for CACHE_STORE=redis")
	}
	cli := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	return newRedisStore(&goRedisClient{c: cli}, comp), nil
}

func newRedisStore(client redisClienter, comp compressor.Compressor) *RedisStore {
	return &RedisStore{client: client, comp: comp}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cachestore: redis get %s: %w", key, err)
	}
	entry, err := deserialize(s.comp, raw)
	if err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, entry *Entry) error {
	raw, err := serialize(s.comp, entry)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("cachestore: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Purge(ctx context.Context) error {
	if err := s.client.FlushDB(ctx); err != nil {
		return fmt.Errorf("cachestore: redis flushdb: %w", err)
	}
	return nil
}
