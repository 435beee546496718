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
	"encoding/json"
	"net/http"

	"github.com/reika0717/sparql-proxy/internal/apierr"
	"github.com/reika0717/sparql-proxy/internal/sparql"
)

// mapNormalizeError translates the normalizer's error types into the
// typed API taxonomy.
func mapNormalizeError(err error) *apierr.Error {
	switch e := err.(type) {
	case *sparql.ParseError:
		return apierr.ParseErrorf("Query parse failed", e.Message)
	case *sparql.QueryTypeNotAllowedError:
		return apierr.QueryTypeNotAllowed("Query type not allowed")
	default:
		return apierr.Internal(err.Error())
	}
}

type errorBody struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSONError(w http.ResponseWriter, ae *apierr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ae.Status)
	json.NewEncoder(w).Encode(errorBody{Message: ae.Message, Data: ae.Data})
}
