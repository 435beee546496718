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

package httpapi

import (
	"io"
	"net/http"
	"strings"

	"github.com/reika0717/sparql-proxy/internal/apierr"
)

// extractQuery pulls the query text and optional token out of the request.
// Three shapes are accepted: GET with ?query=, POST with a raw
// application/sparql-query body, and POST with a urlencoded form.
func extractQuery(r *http.Request) (query, token string, err error) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		return q.Get("query"), q.Get("token"), nil

	case http.MethodPost:
		ct := r.Header.Get("Content-Type")
		switch {
		case isSPARQLQueryContentType(ct):
			body, rerr := io.ReadAll(r.Body)
			if rerr != nil {
				return "", "", apierr.BadRequest("failed to read request body")
			}
			return string(body), r.URL.Query().Get("token"), nil

		default:
			if ferr := r.ParseForm(); ferr != nil {
				return "", "", apierr.BadRequest("failed to parse form body")
			}
			return r.PostForm.Get("query"), r.PostForm.Get("token"), nil
		}
	}
	return "", "", apierr.MethodNotAllowed()
}

func isSPARQLQueryContentType(ct string) bool {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.TrimSpace(ct) == "application/sparql-query"
}
