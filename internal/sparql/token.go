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
	"fmt"
	"strings"
)

// Token is a single lexical unit of a SPARQL query remainder. Start/End are
// byte offsets into the scanned string, used by the preamble splitter to
// slice out verbatim text; Text is the token's exact source text (case
// preserved), used for everything else.
type Token struct {
	Text  string
	Start int
	End   int
}

// Upper returns Text upper-cased, for case-insensitive keyword comparisons.
// SPARQL keywords are case-insensitive; variable names, IRIs, and literals
// are not, so only keyword checks should use this.
func (t Token) Upper() string { return strings.ToUpper(t.Text) }

// bracePunct is the set of structural single-character tokens whose
// nesting depth the parser tracks.
const bracePunct = "{}()"

// otherPunct is emitted as standalone single-character tokens so they never
// fuse with neighbouring words.
const otherPunct = ".,;*"

// disallowedIRIChars mirrors the SPARQL IRIREF grammar: none of these may
// appear, unescaped, inside <...>.
const disallowedIRIChars = " \t\r\n<\"{}|^`\\"

// Tokenize splits a SPARQL query remainder (post-preamble) into tokens.
// It is a pragmatic scanner, not a full SPARQL lexer: the grammar inside
// WHERE/CONSTRUCT template bodies, FILTER expressions, and the like is
// never interpreted, only carried opaquely, so tokenization only needs to
// be self-consistent — the same input always yields the same tokens — not
// semantically complete. What it does need to get right is everything the
// normalizer and chunk executor actually inspect: top-level SELECT/ASK/
// CONSTRUCT/DESCRIBE/update keywords, brace and paren nesting (to find
// clause boundaries), PREFIX/BASE declarations, and LIMIT/OFFSET integers.
func Tokenize(s string) ([]Token, error) {
	var toks []Token
	i := 0
	n := len(s)

	for i < n {
		c := s[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
			continue

		case c == '#':
			for i < n && s[i] != '\n' {
				i++
			}
			continue

		case c == '<':
			if end, ok := scanIRIRef(s, i); ok {
				toks = append(toks, Token{Text: s[i : end+1], Start: i, End: end + 1})
				i = end + 1
				continue
			}
			toks = append(toks, Token{Text: "<", Start: i, End: i + 1})
			i++
			continue

		case c == '"' || c == '\'':
			end, err := scanStringLiteral(s, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Text: s[i:end], Start: i, End: end})
			i = end
			continue

		case c == '?' || c == '$':
			end := i + 1
			for end < n && isNameChar(s[end]) {
				end++
			}
			if end == i+1 {
				return nil, &ParseError{Message: fmt.Sprintf("dangling %q at offset %d", string(c), i)}
			}
			toks = append(toks, Token{Text: s[i:end], Start: i, End: end})
			i = end
			continue

		case strings.ContainsRune(bracePunct, rune(c)):
			toks = append(toks, Token{Text: s[i : i+1], Start: i, End: i + 1})
			i++
			continue

		case strings.ContainsRune(otherPunct, rune(c)):
			toks = append(toks, Token{Text: s[i : i+1], Start: i, End: i + 1})
			i++
			continue

		case c == '^' && i+1 < n && s[i+1] == '^':
			toks = append(toks, Token{Text: "^^", Start: i, End: i + 2})
			i += 2
			continue

		default:
			end := i
			for end < n && !isBoundary(s[end]) {
				end++
			}
			if end == i {
				return nil, &ParseError{Message: fmt.Sprintf("unexpected character %q at offset %d", c, i)}
			}
			toks = append(toks, Token{Text: s[i:end], Start: i, End: end})
			i = end
		}
	}

	return toks, nil
}

func isNameChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isBoundary(c byte) bool {
	if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '#' {
		return true
	}
	if strings.ContainsRune(bracePunct, rune(c)) || strings.ContainsRune(otherPunct, rune(c)) {
		return true
	}
	return c == '<' || c == '"' || c == '\'' || c == '?' || c == '$'
}

// scanIRIRef returns the index of the closing '>' for an IRIREF starting at
// start, or ok=false if no clean closing angle bracket is found before a
// disallowed character — in which case the caller treats '<' as a lone
// comparison-operator token instead.
func scanIRIRef(s string, start int) (int, bool) {
	for j := start + 1; j < len(s); j++ {
		if s[j] == '>' {
			return j, true
		}
		if strings.IndexByte(disallowedIRIChars, s[j]) >= 0 {
			return 0, false
		}
	}
	return 0, false
}

// scanStringLiteral returns the offset just past a quoted literal starting
// at start, handling both single- and triple-quoted forms and backslash
// escapes, plus an optional trailing @langtag or ^^datatype is left for the
// main loop to tokenize separately.
func scanStringLiteral(s string, start int) (int, error) {
	quote := s[start]
	triple := len(s) >= start+3 && s[start+1] == quote && s[start+2] == quote
	delim := string(quote)
	pos := start + 1
	if triple {
		delim = strings.Repeat(string(quote), 3)
		pos = start + 3
	}

	for pos < len(s) {
		if s[pos] == '\\' && pos+1 < len(s) {
			pos += 2
			continue
		}
		if strings.HasPrefix(s[pos:], delim) {
			return pos + len(delim), nil
		}
		pos++
	}
	return 0, &ParseError{Message: fmt.Sprintf("unterminated string literal starting at offset %d", start)}
}
