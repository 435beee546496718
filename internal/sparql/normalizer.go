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

// Query is the immutable, per-request result of normalization: raw text,
// parsed AST, canonical re-serialization, the negotiated Accept media type,
// and the fingerprint used as the cache key's stem.
type Query struct {
	Raw         string
	Preamble    string
	AST         *AST
	Canonical   string
	Accept      string
	Fingerprint string
}

// CacheKey returns the store key for this query under the given compressor
// id: fingerprint + "." + compressorId. Folding the compressor id into the
// key means switching codecs never decodes stale entries from the old one.
func (q *Query) CacheKey(compressorID string) string {
	return q.Fingerprint + "." + compressorID
}

// Normalize runs the full pipeline: split the preamble, parse the
// remainder, gate on operation type, canonicalize, and fingerprint.
// accept defaults to "application/sparql-results+json" when empty,
// matching the SPARQL protocol's default result format.
func Normalize(raw, accept string) (*Query, error) {
	if accept == "" {
		accept = "application/sparql-results+json"
	}

	preamble, remainder, err := SplitPreamble(raw)
	if err != nil {
		return nil, err
	}

	ast, err := Parse(remainder)
	if err != nil {
		return nil, err
	}

	if !ast.Form.IsQuery() {
		return nil, &QueryTypeNotAllowedError{Form: ast.Form}
	}

	canonical := Serialize(ast)
	if preamble != "" {
		canonical = preamble + " " + canonical
	}
	fp := Fingerprint(canonical, accept)

	return &Query{
		Raw:         raw,
		Preamble:    preamble,
		AST:         ast,
		Canonical:   canonical,
		Accept:      accept,
		Fingerprint: fp,
	}, nil
}
