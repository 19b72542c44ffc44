// Package shellctx assembles the environment context string that gets
// embedded in the system prompt: OS, shell, working directory, and a
// bounded listing of the directory's entries.
package shellctx

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
)

// maxListedEntries caps the directory listing so a huge directory doesn't
// blow up the prompt.
const maxListedEntries = 50

// Retriever supplies one named piece of environment context.
type Retriever interface {
	// Name labels the context section, e.g. "Operating System"
	Name() string

	// GetContext returns the context value; an error skips the section
	GetContext() (string, error)
}

// Builder aggregates context from its retrievers into a prompt block.
type Builder struct {
	retrievers []Retriever
}

// NewBuilder creates a Builder with the default retrievers: OS, shell,
// working directory, and directory listing.
func NewBuilder() *Builder {
	return &Builder{
		retrievers: []Retriever{
			osRetriever{},
			shellRetriever{},
			cwdRetriever{},
			listingRetriever{},
		},
	}
}

// Build renders all retriever output as "- Name: value" lines. Retrievers
// that fail are skipped; the command should still be generated with
// whatever context is available.
func (b *Builder) Build() string {
	var sb strings.Builder
	for _, r := range b.retrievers {
		value, err := r.GetContext()
		if err != nil || strings.TrimSpace(value) == "" {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", r.Name(), strings.TrimSpace(value))
	}
	return strings.TrimRight(sb.String(), "\n")
}

type osRetriever struct{}

func (osRetriever) Name() string { return "Operating System" }

func (osRetriever) GetContext() (string, error) {
	return runtime.GOOS, nil
}

type shellRetriever struct{}

func (shellRetriever) Name() string { return "Shell" }

func (shellRetriever) GetContext() (string, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return shell, nil
}

type cwdRetriever struct{}

func (cwdRetriever) Name() string { return "Working Directory" }

func (cwdRetriever) GetContext() (string, error) {
	return os.Getwd()
}

type listingRetriever struct{}

func (listingRetriever) Name() string { return "Directory Contents" }

func (listingRetriever) GetContext() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return ListDirectory(cwd)
}

// ListDirectory returns a comma-separated listing of dir's entries, with
// directories marked by a trailing slash, capped at maxListedEntries.
func ListDirectory(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	truncated := false
	if len(names) > maxListedEntries {
		names = names[:maxListedEntries]
		truncated = true
	}

	listing := strings.Join(names, ", ")
	if truncated {
		listing += ", ..."
	}
	return listing, nil
}
