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

package sparql

import (
	"crypto/md5" //nolint:gosec // non-cryptographic content-addressing digest
	"encoding/hex"
)

// Fingerprint computes the cache-key digest: md5(canonical || 0x00 ||
// accept), rendered as lowercase hex. MD5 is used here purely as a fast,
// well-distributed digest for content addressing, not for any security
// property.
func Fingerprint(canonical, accept string) string {
	h := md5.New() //nolint:gosec
	h.Write([]byte(canonical))
	h.Write([]byte{0x00})
	h.Write([]byte(accept))
	return hex.EncodeToString(h.Sum(nil))
}
