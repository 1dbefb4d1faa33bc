package post

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoFrontMatter is returned when a post does not begin with a --- block
	ErrNoFrontMatter = errors.New("post has no front matter")
	// ErrMissingTitle is returned when the front matter has no string title
	ErrMissingTitle = errors.New("post front matter has no title")
)

// Document is a blog post split into its front matter and markdown body
type Document struct {
	Metadata map[string]any
	Body     string
}

// Title returns the title from the front matter
func (d *Document) Title() (string, error) {
	title, ok := d.Metadata["title"].(string)
	if !ok || title == "" {
		return "", ErrMissingTitle
	}
	return title, nil
}

// Load reads and parses a post from disk
func Load(path string) (*Document, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading post: %w", err)
	}

	d, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return d, nil
}

var delim = []byte("---")

// Parse splits a document into YAML front matter and body. The front matter
// must open on the first line and close with a line containing only "---".
// Surrounding whitespace is trimmed from the body.
func Parse(buf []byte) (*Document, error) {
	buf = bytes.ReplaceAll(buf, []byte("\r\n"), []byte("\n"))
	lines := bytes.SplitAfter(buf, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), delim) {
		return nil, ErrNoFrontMatter
	}

	// find the closing delimiter
	end := -1
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), delim) {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("%w: missing closing delimiter", ErrNoFrontMatter)
	}

	meta := make(map[string]any)
	raw := bytes.Join(lines[1:end], nil)
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("error decoding front matter: %w", err)
	}

	body := bytes.Join(lines[end+1:], nil)
	return &Document{
		Metadata: meta,
		Body:     string(bytes.TrimSpace(body)),
	}, nil
}
