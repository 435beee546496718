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

package live

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/reika0717/sparql-proxy/internal/cachestore"
	"github.com/reika0717/sparql-proxy/internal/compressor"
	"github.com/reika0717/sparql-proxy/internal/queue"
)

type fixedAuth struct{ ok bool }

func (f fixedAuth) Valid(*http.Request) bool { return f.ok }

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestServeHTTPRejectsUnauthenticated(t *testing.T) {
	q := queue.New(1, 1, time.Hour)
	defer q.Close()
	h := NewHandler(q, cachestore.NewMemoryStore(compressor.Raw{}), fixedAuth{ok: false}, newLogger())

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for unauthenticated connection, got %d", resp.StatusCode)
	}
}

func TestServeHTTPStreamsQueueState(t *testing.T) {
	q := queue.New(1, 1, time.Hour)
	defer q.Close()
	h := NewHandler(q, cachestore.NewMemoryStore(compressor.Raw{}), fixedAuth{ok: true}, newLogger())

	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame stateFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("expected an initial state frame: %v", err)
	}
	if frame.Type != "state" {
		t.Fatalf("expected type=state, got %q", frame.Type)
	}
}

func TestHandleFramePurgesCache(t *testing.T) {
	q := queue.New(1, 1, time.Hour)
	defer q.Close()
	store := cachestore.NewMemoryStore(compressor.Raw{})
	if err := store.Put(context.Background(), "key", &cachestore.Entry{ContentType: "text/plain", Body: []byte("x")}); err != nil {
		t.Fatalf("seed put failed: %v", err)
	}

	h := NewHandler(q, store, fixedAuth{ok: true}, newLogger())
	h.handleFrame(context.Background(), clientFrame{Type: "purge_cache"})

	if _, hit, _ := store.Get(context.Background(), "key"); hit {
		t.Fatalf("expected cache to be purged")
	}
}

func TestHandleFrameCancelsJob(t *testing.T) {
	q := queue.New(1, 1, time.Hour)
	defer q.Close()
	h := NewHandler(q, cachestore.NewMemoryStore(compressor.Raw{}), fixedAuth{ok: true}, newLogger())

	started := make(chan struct{})
	block := make(chan struct{})
	job := queue.NewJob("job-1", "tok", "127.0.0.1", 5000, func(ctx context.Context) (*queue.Result, error) {
		close(started)
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil, ctx.Err()
	})

	go q.Enqueue(context.Background(), job)
	<-started

	h.handleFrame(context.Background(), clientFrame{Type: "cancel_job", ID: "job-1"})

	summary, ok := q.JobStatus("tok")
	if !ok {
		t.Fatalf("expected job to still be tracked")
	}
	if summary.State != queue.StateCancelled && !summary.State.Terminal() {
		t.Fatalf("expected job to reach a terminal state after cancel, got %s", summary.State)
	}
}
