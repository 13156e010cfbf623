package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerateSendsModelAndMessages(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`))
	}))
	defer server.Close()

	p, err := NewChatCompletionsProvider(server.URL, "test-key", 5*time.Second)
	if err != nil {
		t.Fatalf("NewChatCompletionsProvider: %v", err)
	}

	out, err := p.Generate(context.Background(), []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	}, GenerateOptions{Model: "test/model", MaxTokens: 128, Temperature: 0.5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "hello there" {
		t.Errorf("got %q, want %q", out, "hello there")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["model"] != "test/model" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(128) {
		t.Errorf("max_tokens = %v", gotBody["max_tokens"])
	}
	msgs, ok := gotBody["messages"].([]interface{})
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	p, err := NewChatCompletionsProvider(server.URL, "k", time.Second)
	if err != nil {
		t.Fatalf("NewChatCompletionsProvider: %v", err)
	}
	_, err = p.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerateOptions{Model: "m"})
	if err == nil {
		t.Fatal("expected error on 429")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error %q should contain API message", err)
	}
	if !strings.Contains(err.Error(), "status=429") {
		t.Errorf("error %q should contain status", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	p, _ := NewChatCompletionsProvider(server.URL, "k", time.Second)
	out, err := p.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerateOptions{Model: "m"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "" {
		t.Errorf("got %q, want empty", out)
	}
}

func TestFlattenMessageContentParts(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"type": "text", "text": "part one"},
		map[string]interface{}{"type": "text", "text": " part two"},
	}
	if got := flattenMessageContent(raw); got != "part one part two" {
		t.Errorf("flattenMessageContent = %q", got)
	}
	if got := flattenMessageContent(nil); got != "" {
		t.Errorf("flattenMessageContent(nil) = %q", got)
	}
}

func TestNewProviderValidation(t *testing.T) {
	if _, err := NewChatCompletionsProvider("", "k", time.Second); err == nil {
		t.Error("expected error for empty API base")
	}
	if _, err := NewChatCompletionsProvider("https://example.com", "", time.Second); err == nil {
		t.Error("expected error for empty API key")
	}
}
