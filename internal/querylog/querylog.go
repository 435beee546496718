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

// Package querylog appends one JSON line per /sparql request to an
// optional, operator-configured path (QUERY_LOG_PATH). It is a single
// *os.File guarded by a mutex so concurrent requests never interleave
// lines.
package querylog

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Entry is one logged request.
type Entry struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	ElapsedMS   int64     `json:"elapsedMs"`
	ClientIP    string    `json:"clientIp"`
	Query       string    `json:"query"`
	CacheHit    bool      `json:"cacheHit"`
	ContentType string    `json:"contentType"`
	Body        string    `json:"body"`
}

// Logger appends Entry records as JSON lines to a file. A nil *Logger is
// valid and Log is then a no-op, so callers don't need to branch on whether
// QUERY_LOG_PATH was configured.
type Logger struct {
	mu   sync.Mutex
	file *os.File
}

// Open creates or appends to path. If path is empty, Open returns (nil, nil)
// and the returned *Logger is the no-op described above.
func Open(path string) (*Logger, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{file: f}, nil
}

// Log appends e as one JSON line. The returned error is advisory: a failed
// log write never affects the response already sent to the client.
func (l *Logger) Log(e Entry) error {
	if l == nil {
		return nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	b = append(b, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.file.Write(b)
	return err
}

// Close releases the underlying file handle. Safe to call on a nil Logger.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.file.Close()
}
