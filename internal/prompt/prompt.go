// Package prompt builds the system and user prompts sent to a provider.
package prompt

import (
	"fmt"
	"strings"
)

// maxGuidelineDocs bounds how many custom guideline docs get appended to
// the system prompt.
const maxGuidelineDocs = 3

// BuildSystem creates the system prompt. envContext comes from the shellctx
// builder; docs are custom guideline docs matched to the request.
func BuildSystem(envContext string, docs []GuidelineDoc) string {
	var sb strings.Builder

	sb.WriteString(`You are a helpful assistant that translates natural language requests into shell commands.

Environment:
`)
	sb.WriteString(envContext)
	sb.WriteString(`

Guidelines:
1. Generate safe, correct shell commands
2. Use common Unix/Linux utilities when possible
3. Prefer portable commands over OS-specific ones when applicable
4. Do not generate destructive commands without clear intent
5. Return ONLY the command - no explanations, no markdown formatting, no code blocks
6. If the request is ambiguous, make reasonable assumptions for the most common use case

Examples:
Request: "list all files"
Response: ls -la

Request: "find all javascript files"
Response: find . -name "*.js"

Request: "show disk usage"
Response: df -h`)

	if len(docs) > maxGuidelineDocs {
		docs = docs[:maxGuidelineDocs]
	}
	for _, doc := range docs {
		sb.WriteString("\n\nAdditional guidance")
		if doc.Title != "" {
			sb.WriteString(" (" + doc.Title + ")")
		}
		sb.WriteString(":\n")
		sb.WriteString(strings.TrimSpace(doc.Content))
	}

	return sb.String()
}

// Translate creates the user prompt for the initial translation.
func Translate(request string) string {
	return fmt.Sprintf(`Convert this request into a shell command: "%s"

IMPORTANT: Respond with ONLY the command itself, nothing else. No explanations, no markdown, no code blocks. Just the raw command.`, request)
}

// Refine creates the user prompt for modifying a previously generated command.
func Refine(originalCommand, modificationRequest string) string {
	return fmt.Sprintf(`Original command: %s

Modification request: %s

IMPORTANT: Respond with ONLY the modified command itself, nothing else. No explanations, no markdown, no code blocks. Just the raw command.`, originalCommand, modificationRequest)
}
