package cachestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/reika0717/sparql-proxy/internal/compressor"
)

func TestNullStoreAlwaysMisses(t *testing.T) {
	s := NewNullStore()
	ctx := context.Background()

	if err := s.Put(ctx, "k", &Entry{ContentType: "text/plain", Body: []byte("x")}); err != nil {
		t.Fatalf("put: %v", err)
	}
	_, ok, err := s.Get(ctx, "k")
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if err := s.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(compressor.Raw{})

	entry := &Entry{ContentType: "application/sparql-results+json", Body: []byte(`{"head":{}}`)}
	if err := s.Put(ctx, "key1", entry); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := s.Get(ctx, "key1")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.ContentType != entry.ContentType || string(got.Body) != string(entry.Body) {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	if err := s.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "key1"); ok {
		t.Fatalf("expected miss after purge")
	}
}

func TestFileStoreRoundTripAndPurge(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "cache")
	s, err := NewFileStore(root, compressor.NewDeflate(compressor.DefaultLevel))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	entry := &Entry{ContentType: "application/sparql-results+json", Body: []byte(`{"results":{"bindings":[]}}`)}
	key := "abcd1234.deflate"
	if err := s.Put(ctx, key, entry); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.ContentType != entry.ContentType || string(got.Body) != string(entry.Body) {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	if _, ok, err := s.Get(ctx, "never-written"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, ok, _ := s.Get(ctx, key); ok {
		t.Fatalf("expected miss after purge")
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(Options{Kind: "bogus"})
	if err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	var unk *UnknownKindError
	if !asUnknownKind(err, &unk) {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}
}

func asUnknownKind(err error, target **UnknownKindError) bool {
	if e, ok := err.(*UnknownKindError); ok {
		*target = e
		return true
	}
	return false
}

func TestNewDefaultsToNull(t *testing.T) {
	s, err := New(Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := s.(*NullStore); !ok {
		t.Fatalf("expected NullStore by default, got %T", s)
	}
}
