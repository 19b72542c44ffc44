package prompt

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GuidelineDoc is a user-supplied markdown doc that teaches the model
// about local conventions or proprietary tools. Docs live in
// ~/.uwu/prompts/*.md with optional YAML frontmatter.
type GuidelineDoc struct {
	Filename string
	Title    string
	Keywords []string
	Priority int
	Content  string
}

// frontmatter is the YAML header of a guideline doc
type frontmatter struct {
	Title    string   `yaml:"title"`
	Keywords []string `yaml:"keywords"`
	Priority int      `yaml:"priority"`
}

// GetDocsDir returns the directory guideline docs are read from.
func GetDocsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".uwu", "prompts"), nil
}

// LoadDocs parses every .md file in dir. A missing directory is not an
// error; it just means no custom guidance.
func LoadDocs(dir string) ([]GuidelineDoc, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts directory: %w", err)
	}

	var docs []GuidelineDoc
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		doc, err := parseDoc(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// parseDoc reads a markdown file with optional YAML frontmatter.
func parseDoc(path string) (*GuidelineDoc, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	fm, content, err := parseFrontmatter(lines)
	if err != nil {
		return nil, err
	}

	return &GuidelineDoc{
		Filename: path,
		Title:    fm.Title,
		Keywords: fm.Keywords,
		Priority: fm.Priority,
		Content:  content,
	}, nil
}

// parseFrontmatter extracts the YAML header and returns it with the
// remaining content. A file without a leading "---" is all content.
func parseFrontmatter(lines []string) (frontmatter, string, error) {
	var fm frontmatter

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, strings.Join(lines, "\n"), nil
	}

	endIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			endIdx = i
			break
		}
	}
	if endIdx == -1 {
		return fm, "", fmt.Errorf("unclosed frontmatter")
	}

	header := strings.Join(lines[1:endIdx], "\n")
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, "", fmt.Errorf("failed to parse YAML: %w", err)
	}

	return fm, strings.Join(lines[endIdx+1:], "\n"), nil
}

// MatchDocs returns the docs whose keywords (or title words) appear in the
// request, highest priority first. Matching is plain case-insensitive
// keyword containment; the model does the semantic work.
func MatchDocs(docs []GuidelineDoc, request string) []GuidelineDoc {
	lowered := strings.ToLower(request)

	var matched []GuidelineDoc
	for _, doc := range docs {
		terms := append([]string{}, doc.Keywords...)
		terms = append(terms, strings.Fields(doc.Title)...)
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term != "" && strings.Contains(lowered, term) {
				matched = append(matched, doc)
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})
	return matched
}
