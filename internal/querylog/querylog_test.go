package querylog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenEmptyPathIsNoOp(t *testing.T) {
	l, err := Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if l != nil {
		t.Fatalf("expected nil logger for empty path")
	}
	if err := l.Log(Entry{}); err != nil {
		t.Fatalf("log on nil logger should be a no-op, got %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close on nil logger should be a no-op, got %v", err)
	}
}

func TestLogAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.jsonl")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()

	now := time.Now()
	entries := []Entry{
		{Start: now, End: now, ElapsedMS: 5, ClientIP: "127.0.0.1", Query: "SELECT ?s WHERE { ?s ?p ?o }", CacheHit: false},
		{Start: now, End: now, ElapsedMS: 1, ClientIP: "127.0.0.1", Query: "SELECT ?s WHERE { ?s ?p ?o }", CacheHit: true},
	}
	for _, e := range entries {
		if err := l.Log(e); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open for read: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var decoded Entry
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.CacheHit {
		t.Fatalf("expected second entry to have CacheHit=true")
	}
}
