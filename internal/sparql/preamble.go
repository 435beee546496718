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

import "strings"

// SplitPreamble separates the leading PREFIX/BASE declarations of a raw
// query from the remainder that actually gets parsed. The preamble is kept
// verbatim (it is purely lexical scope and re-emitting it unmodified avoids
// having to resolve prefixes ourselves); only the remainder is parsed.
//
// The scanner consumes leading PREFIX/BASE clauses token by token and
// stops at the first token that doesn't start one, correctly skipping
// comments and the content of IRIREFs because it is built on the same
// Tokenize used everywhere else.
func SplitPreamble(raw string) (preamble string, remainder string, err error) {
	toks, err := Tokenize(raw)
	if err != nil {
		return "", "", err
	}

	i := 0
	end := 0 // byte offset in raw where the preamble ends
	for i < len(toks) {
		kw := toks[i].Upper()
		switch kw {
		case "PREFIX":
			// PREFIX pname: IRIREF
			if i+2 >= len(toks) {
				return "", "", &ParseError{Message: "truncated PREFIX declaration"}
			}
			if !strings.HasSuffix(toks[i+1].Text, ":") {
				return "", "", &ParseError{Message: "malformed PREFIX declaration: expected prefix ending in ':'"}
			}
			if !isIRIRef(toks[i+2].Text) {
				return "", "", &ParseError{Message: "malformed PREFIX declaration: expected IRI"}
			}
			end = toks[i+2].End
			i += 3
		case "BASE":
			if i+1 >= len(toks) {
				return "", "", &ParseError{Message: "truncated BASE declaration"}
			}
			if !isIRIRef(toks[i+1].Text) {
				return "", "", &ParseError{Message: "malformed BASE declaration: expected IRI"}
			}
			end = toks[i+1].End
			i += 2
		default:
			i = len(toks) + 1 // break outer loop
		}
		if i > len(toks) {
			break
		}
	}

	return raw[:end], raw[end:], nil
}

func isIRIRef(s string) bool {
	return len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>'
}
