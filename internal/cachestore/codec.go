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
	"encoding/binary"
	"fmt"

	"github.com/reika0717/sparql-proxy/internal/compressor"
)

// serialize turns an Entry into the bytes a Store persists: a
// length-prefixed content type followed by the body, run through the
// configured compressor. Every store variant shares this so none of them
// need to know about compression.
func serialize(comp compressor.Compressor, e *Entry) ([]byte, error) {
	ct := []byte(e.ContentType)
	buf := make([]byte, 4+len(ct)+len(e.Body))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(ct)))
	copy(buf[4:], ct)
	copy(buf[4+len(ct):], e.Body)

	enc, err := comp.Encode(buf)
	if err != nil {
		return nil, fmt.Errorf("cachestore: encode: %w", err)
	}
	return enc, nil
}

// deserialize inverts serialize.
func deserialize(comp compressor.Compressor, raw []byte) (*Entry, error) {
	buf, err := comp.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("cachestore: decode: %w", err)
	}
	if len(buf) < 4 {
		return nil, fmt.Errorf("cachestore: truncated entry (%d bytes)", len(buf))
	}
	ctLen := binary.BigEndian.Uint32(buf[:4])
	if uint64(4+ctLen) > uint64(len(buf)) {
		return nil, fmt.Errorf("cachestore: corrupt content-type length %d", ctLen)
	}
	ct := string(buf[4 : 4+ctLen])
	body := append([]byte(nil), buf[4+ctLen:]...)
	return &Entry{ContentType: ct, Body: body}, nil
}
