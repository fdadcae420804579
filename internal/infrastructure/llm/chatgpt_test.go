package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"NewsSifter/internal/config"
)

func testClient(endpoint string) *ChatGPTClient {
	return NewChatGPTClient(config.ChatGPTConfig{
		Endpoint: endpoint,
		Model:    "gpt-4o-mini",
		APIKey:   "test-key",
	})
}

func TestCompleteReturnsAssistantContent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %s", got)
		}

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Model != "gpt-4o-mini" {
			t.Errorf("unexpected model: %s", payload.Model)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", payload.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  0.8\n"}}]}`))
	}))
	defer server.Close()

	got, err := testClient(server.URL).Complete(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "0.8" {
		t.Errorf("content not trimmed, got %q", got)
	}
}

func TestCompleteSurfacesAPIErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limit"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error on 429")
	}
	if !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("error should carry the body excerpt: %v", err)
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	if _, err := testClient(server.URL).Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestCompleteRequiresConfiguration(t *testing.T) {
	t.Parallel()

	client := NewChatGPTClient(config.ChatGPTConfig{Endpoint: "https://example.com", Model: "m"})
	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error when api key is missing")
	}
}
