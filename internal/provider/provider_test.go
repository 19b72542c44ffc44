package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/context-labs/uwu/internal/config"
)

func TestProviderInterface(t *testing.T) {
	var _ Provider = (*OpenAIClient)(nil)
	var _ Provider = (*AnthropicClient)(nil)
	var _ Provider = (*GeminiClient)(nil)
}

func TestNewRequiresAPIKey(t *testing.T) {
	// Keys from the surrounding environment would make these succeed
	for _, env := range []string{
		"UWU_OPENAI_API_KEY", "OPENAI_API_KEY",
		"UWU_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
		"UWU_GEMINI_API_KEY", "GEMINI_API_KEY",
		"UWU_GITHUB_TOKEN", "GITHUB_TOKEN",
	} {
		t.Setenv(env, "")
	}

	for _, name := range []config.ProviderName{
		config.ProviderOpenAI,
		config.ProviderAnthropic,
		config.ProviderGemini,
		config.ProviderGitHub,
	} {
		cfg := &config.Config{Provider: name}
		if _, err := New(cfg); err == nil {
			t.Errorf("New(%s) without key should error", name)
		}
	}
}

func TestNewLocalNeedsNoKey(t *testing.T) {
	cfg := &config.Config{Provider: config.ProviderLocal}
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New(local) error = %v", err)
	}
	if p.Name() != "local" {
		t.Errorf("Name() = %q, want local", p.Name())
	}
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := &config.Config{Provider: "telepathy"}
	if _, err := New(cfg); err == nil {
		t.Error("New() with unknown provider should error")
	}
}

func TestOpenAIComplete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "ls -la"}},
			},
		})
	}))
	defer server.Close()

	client := &OpenAIClient{
		name:    "openai",
		baseURL: server.URL,
		model:   "gpt-4o",
		apiKey:  "sk-test",
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	reply, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "ls -la" {
		t.Errorf("Complete() = %q, want ls -la", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	messages, _ := gotBody["messages"].([]interface{})
	if len(messages) != 2 {
		t.Fatalf("request carried %d messages, want 2", len(messages))
	}
	first, _ := messages[0].(map[string]interface{})
	if first["role"] != "system" || first["content"] != "system" {
		t.Errorf("first message = %v", first)
	}
}

func TestOpenAICompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "bad key"},
		})
	}))
	defer server.Close()

	client := &OpenAIClient{
		name:    "openai",
		baseURL: server.URL,
		model:   "gpt-4o",
		apiKey:  "sk-test",
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("Complete() should error on 401")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "bad key") {
		t.Errorf("error = %v, want status and message", err)
	}
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := &OpenAIClient{
		name:    "openai",
		baseURL: server.URL,
		model:   "gpt-4o",
		apiKey:  "sk-test",
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Error("Complete() with no choices should error")
	}
}

func TestAnthropicComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-ant" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != anthropicVersion {
			t.Errorf("anthropic-version = %q", got)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "df "},
				{"type": "tool_use", "text": "ignored"},
				{"type": "text", "text": "-h"},
			},
		})
	}))
	defer server.Close()

	client := &AnthropicClient{
		model:   "claude-sonnet-4-5",
		apiKey:  "sk-ant",
		baseURL: server.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	reply, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "df -h" {
		t.Errorf("Complete() = %q, want df -h", reply)
	}
}

func TestGeminiComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "g-key" {
			t.Errorf("key = %q", got)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]string{{"text": "du -sh *"}},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := &GeminiClient{
		model:   "gemini-2.0-flash",
		apiKey:  "g-key",
		baseURL: server.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	reply, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "du -sh *" {
		t.Errorf("Complete() = %q, want du -sh *", reply)
	}
}

func TestGeminiCompleteNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	client := &GeminiClient{
		model:   "gemini-2.0-flash",
		apiKey:  "g-key",
		baseURL: server.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Error("Complete() with no candidates should error")
	}
}
