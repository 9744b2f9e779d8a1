package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// markdown converts page sources. Raw HTML in content files is passed
// through, and pipe tables are enabled; fenced code is core CommonMark.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// RenderMarkdown converts Markdown source to trusted HTML.
func RenderMarkdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(bytes.TrimSpace(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderMarkdownFile reads and converts a Markdown file.
func RenderMarkdownFile(path string) (template.HTML, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return RenderMarkdown(src)
}
