// Package provider implements clients for the LLM backends that translate
// a natural language request into a shell command.
package provider

import (
	"context"
	"fmt"

	"github.com/context-labs/uwu/internal/config"
)

// Provider is an LLM backend that can answer a system+user prompt pair with
// plain text. The reply is raw model output; callers run it through the
// sanitizer before showing it to anyone.
type Provider interface {
	// Name returns the provider name (e.g. "openai", "anthropic")
	Name() string

	// Complete sends the prompts to the backend and returns the text reply
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// New creates a provider from the configuration.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(openAIOptions{
			Name:    "openai",
			BaseURL: valueOr(cfg.OpenAI.BaseURL, "https://api.openai.com/v1"),
			Model:   valueOr(cfg.OpenAI.Model, "gpt-4o"),
			APIKey:  cfg.ResolveAPIKey(config.ProviderOpenAI),
		})
	case config.ProviderAnthropic:
		return NewAnthropicClient(
			valueOr(cfg.Anthropic.Model, "claude-sonnet-4-5"),
			cfg.ResolveAPIKey(config.ProviderAnthropic),
		)
	case config.ProviderGemini:
		return NewGeminiClient(
			valueOr(cfg.Gemini.Model, "gemini-2.0-flash"),
			cfg.ResolveAPIKey(config.ProviderGemini),
		)
	case config.ProviderGitHub:
		// GitHub Models speaks the OpenAI chat completions wire format.
		return NewOpenAIClient(openAIOptions{
			Name:    "github",
			BaseURL: "https://models.inference.ai.azure.com",
			Model:   valueOr(cfg.GitHub.Model, "gpt-4o"),
			APIKey:  cfg.ResolveAPIKey(config.ProviderGitHub),
		})
	case config.ProviderLocal:
		// llama-server exposes an OpenAI-compatible endpoint; no key needed.
		return NewLocalClient(cfg.Local.BaseURL(), cfg.Local.Model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
