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

// ParseError surfaces a SPARQL syntax failure. Message is shown to the
// client verbatim so callers can see what the parser choked on.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return "sparql: parse error: " + e.Message }

// QueryTypeNotAllowedError signals that the parsed AST is not one of the
// four read-only query forms (SELECT/ASK/CONSTRUCT/DESCRIBE).
type QueryTypeNotAllowedError struct {
	Form Form
}

func (e *QueryTypeNotAllowedError) Error() string {
	return "sparql: query type not allowed: " + e.Form.String()
}
