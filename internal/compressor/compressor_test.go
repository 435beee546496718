package compressor

import "testing"

func TestRawRoundTrip(t *testing.T) {
	c := Raw{}
	in := []byte("SELECT ?s WHERE { ?s ?p ?o }")
	enc, err := c.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	dec, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(dec) != string(in) {
		t.Fatalf("round-trip mismatch: got %q want %q", dec, in)
	}
	if c.ID() != "raw" {
		t.Fatalf("unexpected id: %s", c.ID())
	}
}

func TestDeflateRoundTrip(t *testing.T) {
	c := NewDeflate(DefaultLevel)
	in := []byte("SELECT ?s WHERE { ?s ?p ?o } ORDER BY ?s LIMIT 100")
	enc, err := c.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(enc) == 0 {
		t.Fatalf("expected non-empty encoded output")
	}
	dec, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(dec) != string(in) {
		t.Fatalf("round-trip mismatch: got %q want %q", dec, in)
	}
}

func TestRegistryResolvesKnownAndRejectsUnknown(t *testing.T) {
	r := NewRegistry()

	if c, err := r.Get(""); err != nil || c.ID() != "raw" {
		t.Fatalf("expected default raw, got %v %v", c, err)
	}
	if c, err := r.Get("deflate"); err != nil || c.ID() != "deflate" {
		t.Fatalf("expected deflate, got %v %v", c, err)
	}
	if _, err := r.Get("lz4"); err == nil {
		t.Fatalf("expected error for unknown compressor id")
	}
}
