// Package markdown renders post content for platforms that want HTML
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.Footnote,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(), // posts embed raw html such as <video> and <iframe>
	),
)

// ToHTML converts markdown to HTML
func ToHTML(src string) (string, error) {
	var out bytes.Buffer
	if err := md.Convert([]byte(src), &out); err != nil {
		return "", fmt.Errorf("error converting markdown to html: %w", err)
	}
	return out.String(), nil
}
