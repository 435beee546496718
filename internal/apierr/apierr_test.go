package apierr

import (
	"net/http"
	"testing"
)

func TestDefaultStatusFromTaxonomy(t *testing.T) {
	cases := map[Kind]int{
		KindBadRequest:          http.StatusBadRequest,
		KindParseError:          http.StatusBadRequest,
		KindQueryTypeNotAllowed: http.StatusBadRequest,
		KindMethodNotAllowed:    http.StatusMethodNotAllowed,
		KindQueueFull:           http.StatusServiceUnavailable,
		KindTimeout:             http.StatusGatewayTimeout,
		KindCancelled:           http.StatusServiceUnavailable,
		KindInternal:            http.StatusInternalServerError,
	}
	for kind, want := range cases {
		e := New(kind, 0, "x", nil)
		if e.Status != want {
			t.Errorf("%s: expected status %d, got %d", kind, want, e.Status)
		}
	}
}

func TestBackendPreservesUpstreamStatus(t *testing.T) {
	e := Backend(502, []byte("bad gateway body"))
	if e.Status != 502 {
		t.Fatalf("expected status 502, got %d", e.Status)
	}
	if e.Data != "bad gateway body" {
		t.Fatalf("expected body preserved in Data, got %v", e.Data)
	}
}

func TestAsUnwrapsAPIError(t *testing.T) {
	var err error = QueueFull()
	ae, ok := As(err)
	if !ok {
		t.Fatalf("expected ok")
	}
	if ae.Kind != KindQueueFull {
		t.Fatalf("expected QueueFull, got %s", ae.Kind)
	}
}
