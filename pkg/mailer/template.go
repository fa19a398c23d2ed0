package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Template is a Markdown message body with YAML front matter.
type Template struct {
	Metadata map[string]any
	Body     string
}

var fence = []byte("---")

// ParseTemplate splits optional front matter delimited by "---" lines from the body.
func ParseTemplate(content []byte) (*Template, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, fence) {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, fence), "\n")
	front, body, found := bytes.Cut(rest, fence)
	if !found {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}
	body = bytes.TrimPrefix(body, []byte("\n"))

	meta := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}
	return &Template{Metadata: meta, Body: string(body)}, nil
}
