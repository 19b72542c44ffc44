package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigDirName  = ".uwu"
	ConfigFileName = "config.json"
)

// ProviderName identifies which LLM backend answers requests
type ProviderName string

const (
	ProviderOpenAI    ProviderName = "openai"
	ProviderAnthropic ProviderName = "anthropic"
	ProviderGemini    ProviderName = "gemini"
	ProviderGitHub    ProviderName = "github"
	ProviderLocal     ProviderName = "local"
)

// ProviderNames lists every supported provider, in menu order.
var ProviderNames = []ProviderName{
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderGemini,
	ProviderGitHub,
	ProviderLocal,
}

// envKeys maps a provider to the environment variables consulted for its
// API key, in priority order. Env always wins over the config file so keys
// can stay out of ~/.uwu/config.json entirely.
var envKeys = map[ProviderName][]string{
	ProviderOpenAI:    {"UWU_OPENAI_API_KEY", "OPENAI_API_KEY"},
	ProviderAnthropic: {"UWU_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	ProviderGemini:    {"UWU_GEMINI_API_KEY", "GEMINI_API_KEY"},
	ProviderGitHub:    {"UWU_GITHUB_TOKEN", "GITHUB_TOKEN"},
}

// RemoteProviderConfig holds settings for a hosted API provider
type RemoteProviderConfig struct {
	Model   string `json:"model,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// LocalConfig holds settings for a locally hosted model server
type LocalConfig struct {
	// Command is the server binary, e.g. "llama-server"
	Command string `json:"command,omitempty"`
	// Args are extra arguments passed to the server on spawn
	Args []string `json:"args,omitempty"`
	Port int      `json:"port,omitempty"`
	// Model is sent in requests; many local servers ignore it
	Model string `json:"model,omitempty"`
}

// BaseURL returns the OpenAI-compatible endpoint of the local server.
func (l LocalConfig) BaseURL() string {
	port := l.Port
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("http://localhost:%d/v1", port)
}

// Config represents the application configuration
type Config struct {
	Provider  ProviderName         `json:"provider"`
	OpenAI    RemoteProviderConfig `json:"openai,omitempty"`
	Anthropic RemoteProviderConfig `json:"anthropic,omitempty"`
	Gemini    RemoteProviderConfig `json:"gemini,omitempty"`
	GitHub    RemoteProviderConfig `json:"github,omitempty"`
	Local     LocalConfig          `json:"local,omitempty"`
}

// ResolveAPIKey returns the API key for a provider, preferring environment
// variables over the config file. Empty string means no key is configured.
func (c *Config) ResolveAPIKey(provider ProviderName) string {
	for _, key := range envKeys[provider] {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}

	switch provider {
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderGitHub:
		return c.GitHub.APIKey
	}
	return ""
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the configuration from disk
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return nil (not an error)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to disk
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Config may hold API keys, so keep it user-only
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if a configuration file exists
func Exists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
