package post

import (
	"fmt"
	"strings"

	"github.com/alexflint/go-restructure"
)

// a liquid tag such as {{ site.url }} or {% include foo.html %}
type liquidTag struct {
	Open  string `\{[{%]`
	Body  string `[^{}%]*`
	Close string `[}%]\}`
}

var liquidTagPattern = restructure.MustCompile(&liquidTag{}, restructure.Options{})

// LeftoverTag is a template marker found in content that should have none
type LeftoverTag struct {
	Line int
	Text string
}

// TemplateTagError reports liquid tags that survived the transformation
type TemplateTagError struct {
	Tags []LeftoverTag
}

func (e *TemplateTagError) Error() string {
	var b strings.Builder
	b.WriteString("One or more liquid tags exist in post content")
	for _, tag := range e.Tags {
		fmt.Fprintf(&b, "\n  line %d: %s", tag.Line, tag.Text)
	}
	return b.String()
}

// CheckTemplateTags returns a *TemplateTagError if content still contains
// "{{" or "{%" anywhere
func CheckTemplateTags(content string) error {
	if !strings.Contains(content, "{{") && !strings.Contains(content, "{%") {
		return nil
	}

	var tags []LeftoverTag
	for i, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "{{") && !strings.Contains(line, "{%") {
			continue
		}

		text := strings.TrimSpace(line)
		var tag liquidTag
		if liquidTagPattern.Find(&tag, line) {
			text = tag.Open + tag.Body + tag.Close
		} else if len(text) > 60 {
			text = text[:60] + "..."
		}
		tags = append(tags, LeftoverTag{Line: i + 1, Text: text})
	}
	return &TemplateTagError{Tags: tags}
}
