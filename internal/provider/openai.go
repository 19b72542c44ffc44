package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
// Besides api.openai.com it covers GitHub Models and a local llama-server,
// which both speak the same wire format.
type OpenAIClient struct {
	name    string
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

type openAIOptions struct {
	Name    string
	BaseURL string
	Model   string
	APIKey  string
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint.
func NewOpenAIClient(opts openAIOptions) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", opts.Name)
	}

	return &OpenAIClient{
		name:    opts.Name,
		baseURL: opts.BaseURL,
		model:   opts.Model,
		apiKey:  opts.APIKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// NewLocalClient creates a client for a locally hosted OpenAI-compatible
// server. Local servers don't check the Authorization header.
func NewLocalClient(baseURL, model string) (*OpenAIClient, error) {
	return &OpenAIClient{
		name:    "local",
		baseURL: baseURL,
		model:   model,
		apiKey:  "unused",
		client:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Name returns the provider name
func (o *OpenAIClient) Name() string {
	return o.name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends a chat completion request and returns the reply text
func (o *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": o.model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		o.baseURL+"/chat/completions",
		bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return "", fmt.Errorf("%s API error (status %d): %s", o.name, resp.StatusCode, errResp.Error.Message)
	}

	var result struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", o.name)
	}

	return result.Choices[0].Message.Content, nil
}
