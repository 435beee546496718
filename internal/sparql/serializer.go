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
	"strconv"
	"strings"
)

// Serialize re-emits an AST as canonical query text (without the
// preamble — callers prepend that separately). Re-parsing the output of
// Serialize and serializing again always yields byte-identical text: every
// clause is emitted in a single fixed order regardless of the order it
// appeared in the source, tokens are joined with exactly one space, and the
// clause keywords Serialize writes itself are upper-case. Tokens inside the
// projection, body, and other clauses keep their source text and case.
func Serialize(ast *AST) string {
	var b strings.Builder

	switch ast.Form {
	case FormSelect:
		b.WriteString("SELECT")
		if ast.Modifier != "" {
			b.WriteByte(' ')
			b.WriteString(ast.Modifier)
		}
		b.WriteByte(' ')
		writeTokens(&b, ast.Projection)
		b.WriteString(" WHERE ")
		writeTokens(&b, ast.Body)
		if len(ast.GroupBy) > 0 {
			b.WriteString(" GROUP BY ")
			writeTokens(&b, ast.GroupBy)
		}
		if len(ast.Having) > 0 {
			b.WriteString(" HAVING ")
			writeTokens(&b, ast.Having)
		}
		if len(ast.OrderBy) > 0 {
			b.WriteString(" ORDER BY ")
			writeTokens(&b, ast.OrderBy)
		}
		if ast.Limit != nil {
			b.WriteString(" LIMIT ")
			b.WriteString(strconv.Itoa(*ast.Limit))
		}
		if ast.Offset != nil {
			b.WriteString(" OFFSET ")
			b.WriteString(strconv.Itoa(*ast.Offset))
		}
	case FormAsk:
		b.WriteString("ASK ")
		writeTokens(&b, ast.Opaque)
	case FormConstruct:
		b.WriteString("CONSTRUCT ")
		writeTokens(&b, ast.Opaque)
	case FormDescribe:
		b.WriteString("DESCRIBE ")
		writeTokens(&b, ast.Opaque)
	case FormUpdate:
		writeTokens(&b, ast.Opaque)
	}

	return b.String()
}

func writeTokens(b *strings.Builder, toks []Token) {
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
}
