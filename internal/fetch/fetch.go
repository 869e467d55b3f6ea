// Package fetch retrieves web pages and reduces their HTML to readable text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 20 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ContentCalendar/1.0)"

// DefaultMaxBytes caps how much of a response body is read.
const DefaultMaxBytes int64 = 2 << 20

// noiseSelector matches page chrome that never carries brand copy.
const noiseSelector = "nav, footer, script, style, noscript, svg, iframe, form, .ad, .ads, .advertisement, .sidebar, .cookie-banner, .popup"

// Page holds a fetched document and the metadata needed to describe it.
type Page struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
	Truncated   bool
}

// Error represents an error during page retrieval.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior. Zero fields take the package defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Client    *http.Client
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.UserAgent == "" {
		out.UserAgent = DefaultUserAgent
	}
	if out.MaxBytes <= 0 {
		out.MaxBytes = DefaultMaxBytes
	}
	if out.Client == nil {
		out.Client = &http.Client{Timeout: out.Timeout}
	}
	return out
}

// Get retrieves an http(s) URL that serves HTML or plain text.
// Non-200 responses and other content types are errors.
func Get(ctx context.Context, rawURL string, opts *Options) (*Page, error) {
	o := opts.withDefaults()

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", o.UserAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9")

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isTextual(contentType) {
		return nil, &Error{URL: rawURL, Message: fmt.Sprintf("unsupported content type %q", contentType)}
	}

	// one extra byte tells us whether the body was cut
	body, err := io.ReadAll(io.LimitReader(resp.Body, o.MaxBytes+1))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	truncated := int64(len(body)) > o.MaxBytes
	if truncated {
		body = body[:o.MaxBytes]
	}

	return &Page{
		URL:         rawURL,
		HTML:        string(body),
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
		Truncated:   truncated,
	}, nil
}

// isTextual reports whether a Content-Type can be reduced to text. An empty header is accepted.
func isTextual(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml", "text/plain":
		return true
	}
	return false
}

// IsPlainText reports whether the page was served as text/plain.
func (p *Page) IsPlainText() bool {
	mediaType, _, _ := mime.ParseMediaType(p.ContentType)
	return mediaType == "text/plain"
}

// Title returns the document title, falling back to the first h1.
func Title(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return collapseSpaces(title), nil
	}
	return collapseSpaces(strings.TrimSpace(doc.Find("h1").First().Text())), nil
}

// Description returns the page's meta description, preferring og:description.
func Description(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	for _, selector := range []string{`meta[property="og:description"]`, `meta[name="description"]`} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
			return collapseSpaces(strings.TrimSpace(content)), nil
		}
	}
	return "", nil
}

// ExtractMainText parses HTML and returns the readable body text, one block per line.
// Noise elements are dropped first; the first content selector that matches wins,
// otherwise the whole body is used.
func ExtractMainText(html string, contentSelectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	// block elements become their own lines so paragraphs do not run together
	main.Find("p, li, h1, h2, h3, h4, h5, h6, br, div, section, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(main.Text()), nil
}

// BrandPageSelectors returns selectors for marketing sites (home, about, product pages).
func BrandPageSelectors() []string {
	return []string{
		"main",
		"article",
		"[role='main']",
		".about",
		".about-us",
		".hero",
		".content",
		"#content",
	}
}

// cleanWhitespace trims every line, collapses inner runs of spaces and drops empty lines.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = collapseSpaces(strings.TrimSpace(line)); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
