package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/context-labs/uwu/internal/config"
	"github.com/context-labs/uwu/internal/executor"
	"github.com/context-labs/uwu/internal/history"
	"github.com/context-labs/uwu/internal/localmodel"
	"github.com/context-labs/uwu/internal/prompt"
	"github.com/context-labs/uwu/internal/provider"
	"github.com/context-labs/uwu/internal/sanitize"
	"github.com/context-labs/uwu/internal/shellctx"
	"github.com/context-labs/uwu/internal/ui"
)

var (
	// version is set by goreleaser at build time
	version = "dev"

	// CLI flags
	debug bool
)

func main() {
	// Keys may live in a .env next to the config or in the cwd
	loadDotEnv()

	rootCmd := &cobra.Command{
		Use:     "uwu [command description]",
		Short:   "Turn plain English into a shell command",
		Long:    "uwu asks an LLM provider to translate a natural language description into a single shell command",
		Version: version,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCommand,
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	configureCmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure uwu with your preferred LLM provider",
		RunE:  runConfigure,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently translated commands",
		RunE:  runHistory,
	}

	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadDotEnv() {
	_ = godotenv.Load()
	if configDir, err := config.GetConfigDir(); err == nil {
		_ = godotenv.Load(filepath.Join(configDir, ".env"))
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	request := strings.Join(args, " ")

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Main: starting with request: %q\n", request)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg == nil {
		ui.ShowError("No configuration found. Please run 'uwu configure' first.")
		return nil
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Config: loaded (provider=%s)\n", cfg.Provider)
	}

	ctx := context.Background()

	// Local provider may need its server spawned first
	if cfg.Provider == config.ProviderLocal {
		server := localmodel.New(cfg.Local, debug)
		if !server.Running() {
			ui.ShowInfo("Starting local model server...")
			if err := server.Start(ctx); err != nil {
				return fmt.Errorf("failed to start local model server: %w", err)
			}
			defer server.Stop()
		} else if debug {
			fmt.Fprintf(os.Stderr, "[DEBUG] LocalModel: server already running\n")
		}
	}

	llm, err := provider.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Provider: using %s\n", llm.Name())
	}

	// Environment context for the system prompt
	envContext := shellctx.NewBuilder().Build()

	// Custom guideline docs, if any
	var docs []prompt.GuidelineDoc
	if docsDir, err := prompt.GetDocsDir(); err == nil {
		loaded, err := prompt.LoadDocs(docsDir)
		if err != nil {
			ui.ShowWarning(fmt.Sprintf("Skipping custom prompt docs: %v", err))
		} else {
			docs = prompt.MatchDocs(loaded, request)
			if debug && len(docs) > 0 {
				fmt.Fprintf(os.Stderr, "[DEBUG] Prompt: matched %d guideline docs\n", len(docs))
			}
		}
	}

	systemPrompt := prompt.BuildSystem(envContext, docs)

	hist, err := history.Open()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer hist.Close()

	// Track refinements for history
	refinements := []string{}

	if ui.IsInteractive() {
		ui.ShowInfo("Thinking...")
	}

	raw, err := llm.Complete(ctx, systemPrompt, prompt.Translate(request))
	if err != nil {
		return fmt.Errorf("failed to translate request: %w", err)
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Provider: raw response: %q\n", raw)
	}

	currentCommand := sanitize.Sanitize(raw)
	if currentCommand == "" {
		return fmt.Errorf("provider returned no usable command")
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Sanitize: command: %q\n", currentCommand)
	}

	// Not a terminal: print the command for the caller and get out of the way
	if !ui.IsInteractive() {
		fmt.Println(currentCommand)
		if err := hist.Add(ctx, request, currentCommand, false, refinements); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
		}
		return nil
	}

	// Interactive loop for refinement
	for {
		action, err := ui.ConfirmCommand(currentCommand)
		if err != nil {
			return fmt.Errorf("failed to get user confirmation: %w", err)
		}

		switch action {
		case ui.ActionRun:
			if err := executor.ExecuteWithDebug(currentCommand, debug); err != nil {
				ui.ShowError(fmt.Sprintf("Command failed: %v", err))
			}

			if err := hist.Add(ctx, request, currentCommand, true, refinements); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
			}
			return nil

		case ui.ActionCopy:
			if err := clipboard.WriteAll(currentCommand); err != nil {
				ui.ShowError(fmt.Sprintf("Failed to copy to clipboard: %v", err))
			} else {
				ui.ShowSuccess("Command copied to clipboard!")
			}
			// Loop continues to show the command again

		case ui.ActionRefine:
			refinement, err := ui.PromptForRefinement()
			if err != nil {
				return fmt.Errorf("failed to get refinement: %w", err)
			}

			refinements = append(refinements, refinement)

			ui.ShowInfo("Refining...")
			raw, err := llm.Complete(ctx, systemPrompt, prompt.Refine(currentCommand, refinement))
			if err != nil {
				return fmt.Errorf("failed to refine command: %w", err)
			}

			refined := sanitize.Sanitize(raw)
			if refined == "" {
				ui.ShowWarning("Provider returned no usable command, keeping the previous one")
			} else {
				currentCommand = refined
			}
			// Loop continues to show the new command

		case ui.ActionCancel:
			ui.ShowInfo("Cancelled.")

			if err := hist.Add(ctx, request, currentCommand, false, refinements); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
			}
			return nil
		}
	}
}

func runConfigure(cmd *cobra.Command, args []string) error {
	ui.ShowSection("uwu Configuration")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	options := make([]string, len(config.ProviderNames))
	for i, name := range config.ProviderNames {
		options[i] = string(name)
	}

	selected, err := ui.PromptProvider(options)
	if err != nil {
		return err
	}
	cfg.Provider = config.ProviderName(selected)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		if err := configureRemote(&cfg.OpenAI, "gpt-4o", "OpenAI", true); err != nil {
			return err
		}
	case config.ProviderAnthropic:
		if err := configureRemote(&cfg.Anthropic, "claude-sonnet-4-5", "Anthropic", false); err != nil {
			return err
		}
	case config.ProviderGemini:
		if err := configureRemote(&cfg.Gemini, "gemini-2.0-flash", "Gemini", false); err != nil {
			return err
		}
	case config.ProviderGitHub:
		if err := configureRemote(&cfg.GitHub, "gpt-4o", "GitHub Models", false); err != nil {
			return err
		}
	case config.ProviderLocal:
		if err := configureLocal(&cfg.Local); err != nil {
			return err
		}
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	configPath, _ := config.GetConfigPath()
	ui.ShowSuccess(fmt.Sprintf("Configuration saved to %s", configPath))
	ui.ShowInfo("\nYou're all set! Try running: uwu \"list all files\"")

	return nil
}

// configureRemote collects model and API key for a hosted provider
func configureRemote(pc *config.RemoteProviderConfig, defaultModel, label string, askBaseURL bool) error {
	model, err := ui.PromptInput(fmt.Sprintf("%s model:", label), valueOr(pc.Model, defaultModel))
	if err != nil {
		return err
	}
	pc.Model = model

	if askBaseURL {
		baseURL, err := ui.PromptInput("Base URL (blank for default):", pc.BaseURL)
		if err != nil {
			return err
		}
		pc.BaseURL = baseURL
	}

	useEnv, err := ui.PromptYesNo(fmt.Sprintf("Read the %s API key from the environment?", label), true)
	if err != nil {
		return err
	}
	if useEnv {
		pc.APIKey = ""
		return nil
	}

	apiKey, err := ui.PromptSecret(fmt.Sprintf("%s API key:", label))
	if err != nil {
		return err
	}
	pc.APIKey = apiKey
	return nil
}

// configureLocal collects the local server command and port
func configureLocal(lc *config.LocalConfig) error {
	command, err := ui.PromptInput("Server command:", valueOr(lc.Command, "llama-server"))
	if err != nil {
		return err
	}
	lc.Command = command

	defaultPort := "8080"
	if lc.Port != 0 {
		defaultPort = strconv.Itoa(lc.Port)
	}
	portStr, err := ui.PromptInput("Server port:", defaultPort)
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(strings.TrimSpace(portStr))
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	lc.Port = port

	model, err := ui.PromptInput("Model name (optional):", lc.Model)
	if err != nil {
		return err
	}
	lc.Model = model
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	hist, err := history.Open()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer hist.Close()

	entries, err := hist.Recent(context.Background(), 20)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		ui.ShowInfo("No history yet")
		return nil
	}

	ui.ShowSection("Recent Commands")
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	for _, entry := range entries {
		gray.Printf("%s  ", entry.Timestamp.Format("2006-01-02 15:04"))
		fmt.Printf("%q\n", entry.Request)
		if entry.Executed {
			green.Printf("    %s\n", entry.Command)
		} else {
			fmt.Printf("    %s\n", entry.Command)
		}
		for _, refinement := range entry.Refinements {
			gray.Printf("    ↳ %s\n", refinement)
		}
	}

	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
