package api_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
)

func bytesReader(b []byte) io.Reader { return bytes.NewReader(b) }

func TestContact(t *testing.T) {
	srv := newTestServer(t)

	resp, out := srv.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Grace",
		"email":   "grace@example.com",
		"message": "Loved the goroutines lesson!",
	})
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (%v)", resp.StatusCode, out)
	}
	if out["id"] == "" {
		t.Error("response missing id")
	}

	pending, _ := srv.outbox.Pending(context.Background(), 0)
	if len(pending) != 1 || pending[0].Name != "Grace" {
		t.Errorf("outbox = %+v", pending)
	}
}

func TestContact_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp, out := srv.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "G",
		"email":   "not-an-email",
		"message": "short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	fields, ok := out["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields = %v", out["fields"])
	}
	want := map[string]string{
		"name":    "Name must be at least 2 characters long",
		"email":   "Please enter a valid email address",
		"message": "Message must be at least 10 characters long",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("fields[%q] = %v, want %q", k, fields[k], v)
		}
	}

	if pending, _ := srv.outbox.Pending(context.Background(), 0); len(pending) != 0 {
		t.Errorf("invalid submission was queued: %+v", pending)
	}
}
