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

// Package config loads the proxy's runtime configuration from the
// environment: one declared default per knob, read via os.Getenv so the
// deployment surface is environment variables only.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// Config is every environment-sourced knob the proxy needs at startup.
type Config struct {
	Port int

	SPARQLBackend string

	MaxConcurrency int
	MaxWaiting     int

	AdminUser     string
	AdminPassword string

	CacheStore     string // null, memory, file, redis
	CacheStorePath string
	CacheRedisAddr string
	CacheRedisDB   int

	Compressor string // raw, deflate

	JobTimeout            time.Duration
	DurationToKeepOldJobs time.Duration
	EnableQuerySplitting  bool
	MaxChunkLimit         int
	MaxLimit              int
	TrustProxy            bool
	QueryLogPath          string
	MetricsAddr           string
	AdminCookieSecret     string
}

// Load reads Config from the process environment, applying the declared
// default for every variable that isn't set. It returns an error only when
// SPARQL_BACKEND is unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  envInt("PORT", 3000),
		SPARQLBackend:         os.Getenv("SPARQL_BACKEND"),
		MaxConcurrency:        envInt("MAX_CONCURRENCY", 1),
		MaxWaiting:            envInt("MAX_WAITING", math.MaxInt),
		AdminUser:             envString("ADMIN_USER", "admin"),
		AdminPassword:         envString("ADMIN_PASSWORD", "password"),
		CacheStore:            envString("CACHE_STORE", "null"),
		CacheStorePath:        envString("CACHE_STORE_PATH", "/tmp/sparql-proxy/cache"),
		CacheRedisAddr:        os.Getenv("CACHE_REDIS_ADDR"),
		CacheRedisDB:          envInt("CACHE_REDIS_DB", 0),
		Compressor:            envString("COMPRESSOR", "raw"),
		JobTimeout:            envMillis("JOB_TIMEOUT", 300000),
		DurationToKeepOldJobs: envMillis("DURATION_TO_KEEP_OLD_JOBS", 300000),
		EnableQuerySplitting:  envBool("ENABLE_QUERY_SPLITTING", false),
		MaxChunkLimit:         envInt("MAX_CHUNK_LIMIT", 1000),
		MaxLimit:              envInt("MAX_LIMIT", 10000),
		TrustProxy:            envBool("TRUST_PROXY", false),
		QueryLogPath:          os.Getenv("QUERY_LOG_PATH"),
		MetricsAddr:           envString("METRICS_ADDR", ":9090"),
		AdminCookieSecret:     os.Getenv("ADMIN_COOKIE_SECRET"),
	}

	if cfg.SPARQLBackend == "" {
		return nil, fmt.Errorf("config: SPARQL_BACKEND is required")
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envMillis(key string, defMillis int) time.Duration {
	return time.Duration(envInt(key, defMillis)) * time.Millisecond
}
