package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCompleteMissingAPIKey(t *testing.T) {
	client := NewClient("", "http://localhost:1", "gpt-4o-mini", time.Second)
	_, err := client.Complete(context.Background(), "system", "user", 0.7, 100)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("ожидали ErrMissingAPIKey, получили %v", err)
	}
}

func TestCompleteSendsEnvelope(t *testing.T) {
	var captured ChatCompletionRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []ChatCompletionChoice{{Message: ChatMessage{Role: RoleSystem, Content: "  привет  "}}},
			Usage:   &ChatCompletionUsage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-4o-mini", time.Second)
	content, err := client.Complete(context.Background(), "sys", "usr", 0.7, 3000)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if content != "привет" {
		t.Fatalf("содержимое должно быть обрезано по пробелам, получили %q", content)
	}
	if authHeader != "Bearer test-key" {
		t.Fatalf("неверный заголовок авторизации: %q", authHeader)
	}
	if captured.Model != "gpt-4o-mini" || captured.Temperature != 0.7 || captured.MaxTokens != 3000 {
		t.Fatalf("неверное тело запроса: %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != RoleSystem || captured.Messages[1].Role != RoleUser {
		t.Fatalf("ожидали пару сообщений system/user: %+v", captured.Messages)
	}
}

func TestCompleteAPIErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "", time.Second)
	_, err := client.Complete(context.Background(), "sys", "usr", 0.7, 100)
	if err == nil || !strings.Contains(err.Error(), "Rate limit reached") {
		t.Fatalf("ожидали сообщение API в ошибке, получили %v", err)
	}
}

func TestCompleteAPIErrorBareStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "", time.Second)
	_, err := client.Complete(context.Background(), "sys", "usr", 0.7, 100)
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("ожидали код статуса в ошибке, получили %v", err)
	}
}

func TestCompleteAPIErrorWithChoicesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []ChatCompletionChoice{{Message: ChatMessage{Content: "partial text"}}},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "", time.Second)
	content, err := client.Complete(context.Background(), "sys", "usr", 0.7, 100)
	if err == nil {
		t.Fatalf("не-2xx ответ не должен считаться успехом, получили %q", content)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("ожидали код статуса в ошибке, получили %v", err)
	}
}

func TestCompleteTransportError(t *testing.T) {
	client := NewClient("test-key", "http://127.0.0.1:1", "", time.Second)
	_, err := client.Complete(context.Background(), "sys", "usr", 0.7, 100)
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("ожидали TransportError, получили %v", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "", time.Second)
	_, err := client.Complete(context.Background(), "sys", "usr", 0.7, 100)
	if err == nil {
		t.Fatalf("пустой список choices должен быть ошибкой")
	}
}
