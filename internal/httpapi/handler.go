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

// Package httpapi is the public-facing HTTP server: request parsing, cache
// lookup, enqueue, and response assembly. Handler is a struct holding its
// collaborators, with routes registered via RegisterRoutes(*mux.Router).
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/reika0717/sparql-proxy/internal/apierr"
	"github.com/reika0717/sparql-proxy/internal/backend"
	"github.com/reika0717/sparql-proxy/internal/cachestore"
	"github.com/reika0717/sparql-proxy/internal/chunk"
	"github.com/reika0717/sparql-proxy/internal/metrics"
	"github.com/reika0717/sparql-proxy/internal/querylog"
	"github.com/reika0717/sparql-proxy/internal/queue"
	"github.com/reika0717/sparql-proxy/internal/sparql"
)

// Handler wires the cache, queue, backend, and admin pieces into the HTTP
// surface.
type Handler struct {
	Store         cachestore.Store
	CompressorID  string
	Queue         *queue.Queue
	Backend       backend.Client
	ChunkConfig   chunk.Config
	JobTimeoutMs  int64
	TrustProxy    bool
	AdminUser     string
	AdminPassword string
	AdminCookie   *AdminCookie
	Logger        *logrus.Logger
	QueryLog      *querylog.Logger
}

// RegisterRoutes mounts every handler onto r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sparql", h.handleSPARQL)
	r.HandleFunc("/jobs/{token}", h.handleJobStatus).Methods(http.MethodGet)
	r.HandleFunc("/admin", h.handleAdmin).Methods(http.MethodGet)
	r.PathPrefix("/").HandlerFunc(h.handleStatic).Methods(http.MethodGet)
}

func (h *Handler) handleSPARQL(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet, http.MethodPost:
		// handled below
	default:
		writeError(w, apierr.MethodNotAllowed())
		return
	}

	start := time.Now()
	queryText, token, err := extractQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if queryText == "" {
		writeError(w, apierr.BadRequest("missing query parameter"))
		return
	}

	q, nerr := sparql.Normalize(queryText, r.Header.Get("Accept"))
	if nerr != nil {
		writeError(w, mapNormalizeError(nerr))
		return
	}

	cacheKey := q.CacheKey(h.CompressorID)
	cacheHit := false
	var result *cachestore.Entry

	if entry, hit, gerr := h.Store.Get(r.Context(), cacheKey); gerr != nil {
		h.Logger.WithError(gerr).Warn("cache get failed, treating as miss")
	} else if hit {
		result = entry
		cacheHit = true
	}

	if cacheHit {
		metrics.CacheHitsTotal.Inc()
		metrics.RequestsTotal.WithLabelValues("hit").Inc()
		writeResult(w, result.ContentType, result.Body, true)
		h.logQuery(start, r, queryText, true, result.ContentType, result.Body)
		return
	}
	metrics.CacheMissesTotal.Inc()

	job := queue.NewJob(uuid.NewString(), token, clientIP(r, h.TrustProxy), h.JobTimeoutMs, h.executorFor(q))
	jobResult, jerr := h.Queue.Enqueue(r.Context(), job)
	if jerr != nil {
		metrics.RequestsTotal.WithLabelValues("error").Inc()
		writeError(w, jerr)
		h.logQuery(start, r, queryText, false, "", nil)
		return
	}

	metrics.RequestsTotal.WithLabelValues("miss").Inc()
	writeResult(w, jobResult.ContentType, jobResult.Body, false)
	h.logQuery(start, r, queryText, false, jobResult.ContentType, jobResult.Body)

	if perr := h.Store.Put(r.Context(), cacheKey, &cachestore.Entry{
		ContentType: jobResult.ContentType,
		Body:        jobResult.Body,
	}); perr != nil {
		h.Logger.WithError(perr).Warn("cache put failed")
	}
}

func (h *Handler) executorFor(q *sparql.Query) queue.Executor {
	return func(ctx context.Context) (*queue.Result, error) {
		resp, err := chunk.Execute(ctx, h.ChunkConfig, q, h.Backend)
		if err != nil {
			return nil, err
		}
		return &queue.Result{ContentType: resp.ContentType, Body: resp.Body}, nil
	}
}

func (h *Handler) logQuery(start time.Time, r *http.Request, query string, cacheHit bool, contentType string, body []byte) {
	if h.QueryLog == nil {
		return
	}
	end := time.Now()
	h.QueryLog.Log(querylog.Entry{
		Start:       start,
		End:         end,
		ElapsedMS:   end.Sub(start).Milliseconds(),
		ClientIP:    clientIP(r, h.TrustProxy),
		Query:       query,
		CacheHit:    cacheHit,
		ContentType: contentType,
		Body:        string(body),
	})
}

func writeResult(w http.ResponseWriter, contentType string, body []byte, cacheHit bool) {
	if contentType == "" {
		contentType = "application/sparql-results+json"
	}
	w.Header().Set("Content-Type", contentType)
	if cacheHit {
		w.Header().Set("X-Cache", "hit")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeError(w http.ResponseWriter, err error) {
	ae, ok := apierr.As(err)
	if !ok {
		ae = apierr.Internal(err.Error())
	}
	writeJSONError(w, ae)
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			return strings.TrimSpace(strings.Split(xff, ",")[0])
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return xri
		}
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host
}
