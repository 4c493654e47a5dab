package groq

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neocodenexus/vendorx-backend/pkg/config"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: logger.ParseLevel("error"), Output: io.Discard})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.GroqConfig{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: server.URL,
	}, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestChatCompletionSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("unexpected model %v", req["model"])
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"subject":"s","body":"b"}`}},
			},
		})
	})

	content, err := client.ChatCompletion(context.Background(), []Message{
		{Role: "user", Content: "draft a followup"},
	}, Options{JSONMode: true})
	if err != nil {
		t.Fatalf("chat completion: %v", err)
	}
	if content != `{"subject":"s","body":"b"}` {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestChatCompletionUpstreamStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestChatCompletionEmptyContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "   "}},
			},
		})
	})

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(config.GroqConfig{}, testLogger()); err == nil {
		t.Fatal("expected missing api key error")
	}
}
