package summarizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/summaries" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary": "a short summary"}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", 5*time.Second)
	got, err := client.Summarize(context.Background(), "some prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a short summary" {
		t.Errorf("summary = %q, want %q", got, "a short summary")
	}
}

func TestSummarize_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error": "model overloaded"}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	_, err := client.Summarize(context.Background(), "some prompt")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should carry upstream status, got: %v", err)
	}
}

func TestSummarize_ConnectionFailure(t *testing.T) {
	client := New("http://127.0.0.1:1", "", time.Second)
	_, err := client.Summarize(context.Background(), "some prompt")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Campaign A", "Launch plan")
	if !strings.Contains(p, "Campaign A") || !strings.Contains(p, "Launch plan") {
		t.Errorf("prompt missing title or description: %q", p)
	}
}
