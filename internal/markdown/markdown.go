// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts news article bodies into HTML using goldmark.
// Raw HTML in the source is escaped, since article bodies are written by
// editors through the API and rendered on public pages.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks
		extension.Typographer, // French quotes and dashes
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(), // bodies typed in a textarea keep their line breaks
	),
)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render is ToHTML for templates: on conversion failure it falls back to
// the escaped source split into paragraphs.
func Render(source string) template.HTML {
	out, err := ToHTML(source)
	if err == nil {
		return template.HTML(out)
	}
	var b strings.Builder
	for _, p := range strings.Split(source, "\n\n") {
		b.WriteString("<p>")
		b.WriteString(template.HTMLEscapeString(strings.TrimSpace(p)))
		b.WriteString("</p>\n")
	}
	return template.HTML(b.String())
}
