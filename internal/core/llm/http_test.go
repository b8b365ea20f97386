package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPProviderAsk(t *testing.T) {
	var gotBody askRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(askResponse{Response: "the answer"})
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, 5*time.Second)
	reply, err := p.Ask(context.Background(), "the question", "Assistant")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if reply != "the answer" {
		t.Errorf("reply = %q", reply)
	}
	if gotBody.Message != "the question" || gotBody.SystemPrompt != "Assistant" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestHTTPProviderNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, 5*time.Second)
	if _, err := p.Ask(context.Background(), "q", "Assistant"); err == nil {
		t.Error("Ask() error = nil for 500 response")
	}
}

func TestHTTPProviderTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(askResponse{Response: "too late"})
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, 20*time.Millisecond)
	if _, err := p.Ask(context.Background(), "q", "Assistant"); err == nil {
		t.Error("Ask() error = nil, want timeout")
	}
}

func TestHTTPProviderUnreachable(t *testing.T) {
	p := NewHTTPProvider("http://127.0.0.1:1/ask", time.Second)
	_, err := p.Ask(context.Background(), "q", "Assistant")
	if err == nil {
		t.Error("Ask() error = nil for unreachable server")
	}
	if !strings.Contains(err.Error(), "ask request failed") {
		t.Errorf("error = %v, want wrapped transport failure", err)
	}
}

func TestScriptProvider(t *testing.T) {
	p := NewScriptProvider("one", "two")

	for _, want := range []string{"one", "two"} {
		got, err := p.Ask(context.Background(), "q", "sp")
		if err != nil {
			t.Fatalf("Ask() error = %v", err)
		}
		if got != want {
			t.Errorf("Ask() = %q, want %q", got, want)
		}
	}

	// Past the script it echoes
	got, err := p.Ask(context.Background(), "echo me", "sp")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if !strings.Contains(got, "echo me") {
		t.Errorf("exhausted script reply = %q", got)
	}
}
