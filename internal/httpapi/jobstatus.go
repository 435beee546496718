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

	"github.com/gorilla/mux"
)

type jobStatusBody struct {
	State     string `json:"state"`
	CreatedAt string `json:"createdAt"`
	StartedAt string `json:"startedAt,omitempty"`
	DoneAt    string `json:"doneAt,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	summary, ok := h.Queue.JobStatus(token)
	if !ok {
		http.NotFound(w, r)
		return
	}

	body := jobStatusBody{
		State:     summary.State.String(),
		CreatedAt: summary.CreatedAt.Format(timeLayout),
	}
	if !summary.StartedAt.IsZero() {
		body.StartedAt = summary.StartedAt.Format(timeLayout)
	}
	if !summary.DoneAt.IsZero() {
		body.DoneAt = summary.DoneAt.Format(timeLayout)
	}
	if summary.Error != nil {
		body.Error = summary.Error.Message
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"
