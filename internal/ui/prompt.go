package ui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Action represents the user's choice
type Action int

const (
	ActionRun Action = iota
	ActionCopy
	ActionRefine
	ActionCancel
)

// IsInteractive reports whether stdout is a terminal. When it isn't (the
// output is piped), the command is printed bare and no prompts are shown.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ConfirmCommand shows the command and asks the user what to do
func ConfirmCommand(command string) (Action, error) {
	// Display the command with nice formatting
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Println("\nGenerated command:")
	fmt.Printf("  %s\n\n", command)

	var choice string
	prompt := &survey.Select{
		Message: "What would you like to do?",
		Options: []string{
			"Run it",
			"Copy to clipboard",
			"Refine it",
			"Cancel",
		},
	}

	if err := survey.AskOne(prompt, &choice); err != nil {
		return ActionCancel, err
	}

	switch choice {
	case "Run it":
		return ActionRun, nil
	case "Copy to clipboard":
		return ActionCopy, nil
	case "Refine it":
		return ActionRefine, nil
	default:
		return ActionCancel, nil
	}
}

// PromptForRefinement asks the user how to change the command
func PromptForRefinement() (string, error) {
	var refinement string
	prompt := &survey.Input{
		Message: "How would you like to change the command?",
	}

	if err := survey.AskOne(prompt, &refinement, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}

	return refinement, nil
}

// PromptProvider asks the user to pick an LLM provider
func PromptProvider(options []string) (string, error) {
	var provider string
	prompt := &survey.Select{
		Message: "Select an LLM provider:",
		Options: options,
	}

	if err := survey.AskOne(prompt, &provider); err != nil {
		return "", err
	}

	return provider, nil
}

// PromptInput asks for a single line of input with a default value
func PromptInput(message, defaultValue string) (string, error) {
	var value string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}

	if err := survey.AskOne(prompt, &value); err != nil {
		return "", err
	}

	return value, nil
}

// PromptSecret asks for a value without echoing it (API keys)
func PromptSecret(message string) (string, error) {
	var value string
	prompt := &survey.Password{
		Message: message,
	}

	if err := survey.AskOne(prompt, &value); err != nil {
		return "", err
	}

	return value, nil
}

// PromptYesNo asks a yes/no question
func PromptYesNo(message string, defaultValue bool) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}

	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}

	return confirmed, nil
}

// ShowSection displays a section header
func ShowSection(title string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("\n%s\n", title)
}

// ShowSuccess displays a success message
func ShowSuccess(message string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Printf("✓ %s\n", message)
}

// ShowError displays an error message
func ShowError(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Printf("✗ %s\n", message)
}

// ShowWarning displays a warning message
func ShowWarning(message string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("! %s\n", message)
}

// ShowInfo displays an info message
func ShowInfo(message string) {
	blue := color.New(color.FgBlue)
	blue.Println(message)
}
