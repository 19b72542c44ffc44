// Package sanitize turns a raw LLM reply into a single runnable shell command.
//
// Model output is messy: reasoning traces wrapped in <think> tags, markdown
// code fences, explanatory prose before and after the actual command. The
// pipeline here is three ordered stages: strip reasoning traces, extract the
// last fenced code block (or fall back to removing stray backticks), then
// scan the remaining lines backward for the first one that doesn't read like
// an English sentence.
package sanitize

import (
	"regexp"
	"strings"
)

// maxCommandLength guards against an entire unfenced paragraph being picked
// as the command when no sentence markers happen to match.
const maxCommandLength = 2000

var (
	// Matches a <think ...>...</think> span across lines, tag name
	// case-insensitive, attributes ignored. The lazy body pairs each
	// opening tag with its first closing tag, so multiple blocks are
	// removed independently and an unclosed tag never matches.
	thinkBlockPattern = regexp.MustCompile(`(?is)<\s*think\b[^>]*>.*?<\s*/\s*think\s*>`)

	// Matches a triple-backtick fenced block. An optional language tag on
	// the opening line is consumed and discarded; group 1 captures the body.
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9_+.-]*\\n)?(.*?)```")

	// A line that starts with an uppercase letter and ends in terminal
	// punctuation reads like prose, not a command.
	sentenceShapePattern = regexp.MustCompile(`^[A-Z].*[.?!]$`)

	// Words that show up in explanations far more often than in commands.
	// The list is deliberately fixed: changing it silently changes which
	// line gets picked across every provider.
	proseWordPattern = regexp.MustCompile(`(?i)\b(user|want|should|shouldn't|think|explain|error|note)\b`)
)

// Sanitize extracts a single command line from raw model output. It returns
// the empty string when the input reduces to no usable lines. The result
// never contains a newline and has no surrounding whitespace.
func Sanitize(content string) string {
	if content == "" {
		return ""
	}

	text := stripReasoning(content)

	if body, ok := lastFencedBlock(text); ok {
		text = body
	} else {
		// No fenced block: keep the text, drop stray inline backticks.
		text = strings.ReplaceAll(text, "`", "")
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	return findLastCommand(lines)
}

// stripReasoning removes every <think>...</think> block, tags included.
// Text after an opening tag that never closes is left untouched.
func stripReasoning(content string) string {
	return thinkBlockPattern.ReplaceAllString(content, "")
}

// lastFencedBlock returns the body of the last fenced code block in content.
// Models often emit an example block before the real answer, so the last one
// is treated as authoritative. The second return is false when no fenced
// block exists.
func lastFencedBlock(content string) (string, bool) {
	matches := fencedBlockPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1][1], true
}

// findLastCommand scans trimmed, non-empty lines from the end backward and
// returns the first one that does not look like a sentence and is not
// absurdly long. Responses commonly end with prose ("This will list all
// files."), so the command is often the last non-sentence line rather than
// the last line. If every line looks like a sentence, the last line wins.
func findLastCommand(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if looksLikeSentence(line) {
			continue
		}
		if len(line) > maxCommandLength {
			continue
		}
		return strings.TrimSpace(line)
	}

	return strings.TrimSpace(lines[len(lines)-1])
}

// looksLikeSentence reports whether a line reads like English prose rather
// than a shell command.
func looksLikeSentence(line string) bool {
	return sentenceShapePattern.MatchString(line) || proseWordPattern.MatchString(line)
}
