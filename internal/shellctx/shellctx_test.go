package shellctx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListDirectory(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	listing, err := ListDirectory(dir)
	if err != nil {
		t.Fatalf("ListDirectory() error = %v", err)
	}

	want := "a.txt, b.txt, sub/"
	if listing != want {
		t.Errorf("ListDirectory() = %q, want %q", listing, want)
	}
}

func TestListDirectoryTruncates(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < maxListedEntries+10; i++ {
		name := filepath.Join(dir, fmt.Sprintf("file%03d", i))
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	listing, err := ListDirectory(dir)
	if err != nil {
		t.Fatalf("ListDirectory() error = %v", err)
	}

	if !strings.HasSuffix(listing, ", ...") {
		t.Errorf("truncated listing should end with ellipsis, got %q", listing)
	}
	if got := strings.Count(listing, ","); got != maxListedEntries {
		t.Errorf("listing has %d separators, want %d", got, maxListedEntries)
	}
}

func TestListDirectoryMissing(t *testing.T) {
	if _, err := ListDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ListDirectory() on missing dir should error")
	}
}

func TestBuilderBuild(t *testing.T) {
	context := NewBuilder().Build()

	if !strings.Contains(context, "- Operating System: ") {
		t.Errorf("context missing OS section: %q", context)
	}
	if !strings.Contains(context, "- Shell: ") {
		t.Errorf("context missing shell section: %q", context)
	}
	if !strings.Contains(context, "- Working Directory: ") {
		t.Errorf("context missing cwd section: %q", context)
	}
	if strings.HasSuffix(context, "\n") {
		t.Errorf("context should not end with a newline: %q", context)
	}
}

type failingRetriever struct{}

func (failingRetriever) Name() string { return "Broken" }

func (failingRetriever) GetContext() (string, error) {
	return "", fmt.Errorf("boom")
}

func TestBuilderSkipsFailingRetriever(t *testing.T) {
	b := &Builder{retrievers: []Retriever{failingRetriever{}, osRetriever{}}}

	context := b.Build()
	if strings.Contains(context, "Broken") {
		t.Errorf("failing retriever should be skipped: %q", context)
	}
	if !strings.Contains(context, "Operating System") {
		t.Errorf("healthy retriever should still appear: %q", context)
	}
}
