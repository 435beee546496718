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

// Package live implements the admin push channel: a websocket that
// streams QueueState snapshots to connected admins and
// accepts a small set of control frames back. Authentication reuses the
// signed cookie minted by GET /admin; anyone without it never completes
// the upgrade.
package live

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/reika0717/sparql-proxy/internal/cachestore"
	"github.com/reika0717/sparql-proxy/internal/queue"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// AdminAuthenticator is the subset of httpapi.AdminCookie the live channel
// needs, kept narrow so this package doesn't import httpapi.
type AdminAuthenticator interface {
	Valid(r *http.Request) bool
}

// Handler upgrades authenticated admin connections and bridges them to the
// queue's state broadcast.
type Handler struct {
	Queue    *queue.Queue
	Cache    cachestore.Store
	Auth     AdminAuthenticator
	Logger   *logrus.Logger
	upgrader websocket.Upgrader
}

// NewHandler builds a live.Handler with permissive origin checking, since
// the admin UI is served from an operator-controlled origin, not a public
// one.
func NewHandler(q *queue.Queue, cache cachestore.Store, auth AdminAuthenticator, logger *logrus.Logger) *Handler {
	return &Handler{
		Queue:  q,
		Cache:  cache,
		Auth:   auth,
		Logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// clientFrame is any message a connected admin can send.
type clientFrame struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// stateFrame is the server->client push on every queue transition.
type stateFrame struct {
	Type string `json:"type"`
	queue.QueueState
}

// ServeHTTP implements the upgrade handshake and per-connection lifecycle.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.Auth.Valid(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.WithError(err).Warn("live: upgrade failed")
		return
	}

	sendCh := make(chan any, 8)
	done := make(chan struct{})

	go h.writeLoop(conn, sendCh, done)
	h.readLoop(r.Context(), conn, sendCh, done)
}

// writeLoop is the connection's sole writer, matching the queue's
// single-writer-goroutine discipline: gorilla/websocket connections are
// not safe for concurrent WriteMessage calls.
func (h *Handler) writeLoop(conn *websocket.Conn, sendCh <-chan any, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case msg, ok := <-sendCh:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readLoop owns the connection's subscription to queue state and dispatches
// every inbound control frame until the socket closes.
func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, sendCh chan<- any, done chan<- struct{}) {
	defer close(done)

	states, unsubscribe := h.Queue.Subscribe()
	defer unsubscribe()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case s := <-states:
				select {
				case sendCh <- stateFrame{Type: "state", QueueState: s}:
				case <-stop:
					return
				}
			case <-stop:
				return
			}
		}
	}()

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		h.handleFrame(ctx, frame)
	}
}

func (h *Handler) handleFrame(ctx context.Context, frame clientFrame) {
	switch frame.Type {
	case "purge_cache":
		if err := h.Cache.Purge(ctx); err != nil {
			h.Logger.WithError(err).Warn("live: purge_cache failed")
		}
	case "cancel_job":
		h.Queue.Cancel(frame.ID)
	default:
		h.Logger.WithField("type", frame.Type).Debug("live: unknown frame type")
	}
}
