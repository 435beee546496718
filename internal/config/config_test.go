package config

import "testing"

func TestLoadFailsWithoutBackend(t *testing.T) {
	t.Setenv("SPARQL_BACKEND", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SPARQL_BACKEND is unset")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("SPARQL_BACKEND", "http://upstream.example/sparql")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.CacheStore != "null" {
		t.Errorf("expected default cache store null, got %s", cfg.CacheStore)
	}
	if cfg.MaxConcurrency != 1 {
		t.Errorf("expected default max concurrency 1, got %d", cfg.MaxConcurrency)
	}
}

func TestLoadHonoursOverrides(t *testing.T) {
	t.Setenv("SPARQL_BACKEND", "http://upstream.example/sparql")
	t.Setenv("PORT", "8080")
	t.Setenv("ENABLE_QUERY_SPLITTING", "true")
	t.Setenv("MAX_CHUNK_LIMIT", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if !cfg.EnableQuerySplitting {
		t.Errorf("expected query splitting enabled")
	}
	if cfg.MaxChunkLimit != 50 {
		t.Errorf("expected max chunk limit 50, got %d", cfg.MaxChunkLimit)
	}
}
