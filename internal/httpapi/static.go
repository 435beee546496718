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

import "net/http"

// handleStatic is the catch-all for the admin UI's static assets. The UI
// bundle ships separately; this keeps the document root routed so a
// reverse proxy or embedded asset dir can be added without touching
// routing.
func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}
