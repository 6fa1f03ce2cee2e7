package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// Markdown renders markdown text to sanitized HTML. Model output often
// arrives as markdown; this tool makes it safe to embed in a page.
type Markdown struct {
	policy     *bluemonday.Policy
	extensions parser.Extensions
}

type MarkdownOption func(*Markdown)

// WithMarkdownPolicy overrides the sanitization policy.
// Default is bluemonday.UGCPolicy.
func WithMarkdownPolicy(policy *bluemonday.Policy) MarkdownOption {
	return func(m *Markdown) {
		m.policy = policy
	}
}

// NewMarkdown creates a new Markdown tool.
func NewMarkdown(opts ...MarkdownOption) *Markdown {
	m := &Markdown{
		policy:     bluemonday.UGCPolicy(),
		extensions: parser.CommonExtensions | parser.AutoHeadingIDs,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Name returns the name of the tool.
func (m *Markdown) Name() string {
	return "Markdown_Render"
}

// Description returns the description of the tool.
func (m *Markdown) Description() string {
	return "Renders markdown text to sanitized HTML. " +
		"Input should be markdown."
}

// Call renders the given markdown and returns sanitized HTML.
func (m *Markdown) Call(_ context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("markdown must not be empty")
	}

	p := parser.NewWithExtensions(m.extensions)
	doc := p.Parse([]byte(input))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	})
	rendered := markdown.Render(doc, renderer)

	return m.policy.Sanitize(string(rendered)), nil
}

// PlainText renders the given markdown and strips all markup, leaving
// only the text content.
func (m *Markdown) PlainText(input string) string {
	p := parser.NewWithExtensions(m.extensions)
	doc := p.Parse([]byte(input))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	})
	rendered := markdown.Render(doc, renderer)

	return collapseWhitespace(bluemonday.StrictPolicy().Sanitize(string(rendered)))
}
