package tool

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// WebPage fetches a URL and extracts readable text from it, suitable for
// feeding into a model prompt. Scripts, styles and markup are stripped.
type WebPage struct {
	client    *http.Client
	selector  string
	maxChars  int
	sanitizer *bluemonday.Policy
}

type WebPageOption func(*WebPage)

// WithWebPageClient sets the HTTP client used for fetching.
func WithWebPageClient(client *http.Client) WebPageOption {
	return func(w *WebPage) {
		w.client = client
	}
}

// WithWebPageSelector restricts extraction to a CSS selector
// (e.g. "article", "#content"). Default is the whole body.
func WithWebPageSelector(selector string) WebPageOption {
	return func(w *WebPage) {
		w.selector = selector
	}
}

// WithWebPageMaxChars truncates the extracted text to at most n characters.
func WithWebPageMaxChars(n int) WebPageOption {
	return func(w *WebPage) {
		if n > 0 {
			w.maxChars = n
		}
	}
}

// NewWebPage creates a new WebPage tool.
func NewWebPage(opts ...WebPageOption) *WebPage {
	w := &WebPage{
		client:    &http.Client{Timeout: 30 * time.Second},
		selector:  "body",
		maxChars:  8000,
		sanitizer: bluemonday.StrictPolicy(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Name returns the name of the tool.
func (w *WebPage) Name() string {
	return "Web_Page"
}

// Description returns the description of the tool.
func (w *WebPage) Description() string {
	return "Fetches a web page and returns its readable text content. " +
		"Input should be a URL."
}

// Call fetches the page at the given URL and returns its extracted text.
func (w *WebPage) Call(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("url must not be empty")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", input, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}

	doc.Find(w.selector).Each(func(_ int, sel *goquery.Selection) {
		sb.WriteString(sel.Text())
		sb.WriteString("\n")
	})

	text := w.sanitizer.Sanitize(sb.String())
	text = collapseWhitespace(text)

	if w.maxChars > 0 && len(text) > w.maxChars {
		text = text[:w.maxChars]
	}

	return text, nil
}

// collapseWhitespace squeezes runs of blank lines and trims each line.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
