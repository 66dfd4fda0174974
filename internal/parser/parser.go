// Package parser extracts indexable text from corpus files.
package parser

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/sift/internal/apperr"
)

// Result holds the output of parsing one corpus file.
type Result struct {
	Title string
	Body  string
}

// Parse extracts a title and the searchable text from data, choosing the
// format from the extension of name.
func Parse(name string, data []byte) (*Result, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return parseMarkdown(data), nil
	case ".txt":
		return &Result{Body: string(data)}, nil
	case ".html", ".htm", ".xhtml", ".xml":
		return parseMarkup(data)
	default:
		return nil, fmt.Errorf("parser: %s: %w", name, apperr.ErrUnsupportedFormat)
	}
}

func parseMarkdown(data []byte) *Result {
	fm, body := splitFrontmatter(data)
	return &Result{
		Title: deriveTitle(fm, body),
		Body:  body,
	}
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	var fm map[string]any
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return nil, string(data)
	}

	afterDelim := rest[idx+1+len(delim):]
	return fm, strings.TrimLeft(string(afterDelim), "\n\r")
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]any, body string) string {
	if s, ok := fm["title"].(string); ok && s != "" {
		return s
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
