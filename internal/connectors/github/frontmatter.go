package github

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// parseFrontMatter splits a markdown file into its YAML front matter
// and body. A file without a front matter block returns nil metadata
// and the content unchanged. A block that opens but never closes, or
// that contains invalid YAML, is an error; callers skip such files.
func parseFrontMatter(content string) (map[string]any, string, error) {
	rest, ok := strings.CutPrefix(content, frontMatterDelimiter+"\n")
	if !ok {
		return nil, content, nil
	}

	end := strings.Index(rest, "\n"+frontMatterDelimiter)
	if end < 0 {
		return nil, "", fmt.Errorf("front matter block not closed")
	}

	block := rest[:end]
	body := rest[end+len("\n"+frontMatterDelimiter):]
	body = strings.TrimPrefix(body, "\n")

	meta := make(map[string]any)
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, "", fmt.Errorf("parse front matter: %w", err)
	}
	return meta, body, nil
}
