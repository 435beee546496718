package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExecuteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/sparql-results+json" {
			t.Errorf("unexpected accept header: %q", got)
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		w.Write([]byte(`{"head":{"vars":["s"]},"results":{"bindings":[]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Execute(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }", "application/sparql-results+json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.ContentType != "application/sparql-results+json" {
		t.Fatalf("unexpected content type: %q", resp.ContentType)
	}
}

func TestExecuteNonTwoXXReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Execute(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.Status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", se.Status)
	}
	if string(se.Body) != "upstream exploded" {
		t.Fatalf("unexpected body: %q", se.Body)
	}
}

func TestExecuteHonoursContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		close(block)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := New(srv.URL)
	go func() {
		cancel()
	}()
	_, err := c.Execute(ctx, "SELECT ?s WHERE { ?s ?p ?o }", "")
	if err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}
