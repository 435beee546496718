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

package compressor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// DefaultLevel is the flate compression level used when none is specified.
const DefaultLevel = flate.DefaultCompression

// Deflate wraps klauspost/compress/flate, a faster drop-in replacement for
// the standard library's compress/flate.
type Deflate struct {
	level int
}

// NewDeflate builds a Deflate compressor at the given level.
func NewDeflate(level int) Deflate {
	return Deflate{level: level}
}

func (Deflate) ID() string { return "deflate" }

func (d Deflate) Encode(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, d.level)
	if err != nil {
		return nil, fmt.Errorf("compressor: deflate writer: %w", err)
	}
	if _, err := w.Write(p); err != nil {
		w.Close()
		return nil, fmt.Errorf("compressor: deflate write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressor: deflate close: %w", err)
	}
	return buf.Bytes(), nil
}

func (Deflate) Decode(p []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(p))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compressor: deflate read: %w", err)
	}
	return out, nil
}
