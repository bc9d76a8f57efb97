package content

import (
	"bytes"
	"errors"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/dmitrymomot/promptdesk/pkg/sanitizer"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// RenderBody converts a markdown body to sanitized HTML.
func RenderBody(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", errors.Join(ErrRender, err)
	}
	return template.HTML(sanitizer.SanitizeMarkdownHTML(buf.Bytes())), nil
}
