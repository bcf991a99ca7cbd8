package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseBuilder_JSON(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().
		Status(http.StatusCreated).
		JSON(map[string]int{"id": 7}).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type=%q", ct)
	}
	var out map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["id"] != 7 {
		t.Fatalf("id=%d, want 7", out["id"])
	}
}

func TestResponseBuilder_PreEncodedBody(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().Body([]byte(`{"cached":true}`)).Write(w)

	if w.Body.String() != `{"cached":true}` {
		t.Fatalf("body=%q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type=%q", ct)
	}
}

func TestResponseBuilder_EmptyBodyOmitsContentType(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().Status(http.StatusNoContent).Write(w)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "" {
		t.Fatalf("content type=%q, want unset", ct)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		builder *ResponseBuilder
		status  int
	}{
		{"bad request", BadRequestError("nope"), http.StatusBadRequest},
		{"unprocessable", UnprocessableEntityError("nope"), http.StatusUnprocessableEntity},
		{"internal", InternalServerError("nope"), http.StatusInternalServerError},
		{"not found", NotFoundError("nope"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)
			if w.Code != tt.status {
				t.Fatalf("status=%d, want %d", w.Code, tt.status)
			}
			var out map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out["error"] != "nope" {
				t.Fatalf("error=%q", out["error"])
			}
		})
	}
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	if resp := RequireMethod(req, http.MethodGet); resp != nil {
		t.Fatal("matching method should return nil")
	}

	resp := RequireMethod(req, http.MethodPost, http.MethodDelete)
	if resp == nil {
		t.Fatal("expected builder for mismatched method")
	}
	w := httptest.NewRecorder()
	resp.Write(w)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d, want 405", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "POST, DELETE" {
		t.Fatalf("Allow=%q", allow)
	}
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"direct", "203.0.113.5:4321", "", "", "203.0.113.5"},
		{"trusted proxy honors xff", "127.0.0.1:80", "198.51.100.7, 10.0.0.1", "", "198.51.100.7"},
		{"trusted proxy honors xri", "10.1.2.3:80", "", "198.51.100.9", "198.51.100.9"},
		{"untrusted peer ignores headers", "203.0.113.5:80", "198.51.100.7", "", "203.0.113.5"},
		{"invalid xff falls back", "127.0.0.1:80", "not-an-ip", "", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := extractClientIP(req); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
