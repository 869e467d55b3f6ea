package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/content-calendar/internal/fetch"
)

// DefaultMaxChars bounds how much page text is folded into the brand information.
const DefaultMaxChars = 6000

// ErrNoContent is returned when a page yields no readable text.
var ErrNoContent = errors.New("page has no readable text")

// BrandPage is the readable content of a brand's web page.
type BrandPage struct {
	URL         string
	Title       string
	Description string
	Text        string
	Truncated   bool
}

// BrandOptions configures FromURL.
type BrandOptions struct {
	Fetch    *fetch.Options
	MaxChars int
}

// FromURL fetches a brand's page and reduces it to cleaned text.
func FromURL(ctx context.Context, rawURL string, opts *BrandOptions) (*BrandPage, error) {
	if opts == nil {
		opts = &BrandOptions{}
	}
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	page, err := fetch.Get(ctx, rawURL, opts.Fetch)
	if err != nil {
		return nil, err
	}

	result := &BrandPage{URL: page.URL, Truncated: page.Truncated}
	var text string
	if page.IsPlainText() {
		text = page.HTML
	} else {
		if result.Title, err = fetch.Title(page.HTML); err != nil {
			return nil, err
		}
		if result.Description, err = fetch.Description(page.HTML); err != nil {
			return nil, err
		}
		if text, err = fetch.ExtractMainText(page.HTML, fetch.BrandPageSelectors()); err != nil {
			return nil, err
		}
	}

	text, cut := Truncate(CleanText(text), maxChars)
	if text == "" && result.Description == "" {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrNoContent)
	}
	result.Text = text
	result.Truncated = result.Truncated || cut
	return result, nil
}

// Section renders the page as a labelled block suitable for appending to brand information.
func (p *BrandPage) Section() string {
	var sb strings.Builder
	sb.WriteString("Website content (")
	sb.WriteString(p.URL)
	sb.WriteString("):\n")
	if p.Title != "" {
		sb.WriteString("Title: ")
		sb.WriteString(p.Title)
		sb.WriteString("\n")
	}
	if p.Description != "" {
		sb.WriteString("Description: ")
		sb.WriteString(p.Description)
		sb.WriteString("\n")
	}
	if p.Text != "" {
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// AppendTo joins the page section onto existing brand information.
func (p *BrandPage) AppendTo(brandInfo string) string {
	brandInfo = strings.TrimSpace(brandInfo)
	if brandInfo == "" {
		return p.Section()
	}
	return brandInfo + "\n\n" + p.Section()
}
