package rendering

import (
	"bytes"
	"fmt"
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/jonathan/content-calendar/internal/types"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 72rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%%; font-size: 0.9rem; }
th, td { border: 1px solid #cbd5e1; padding: 0.4rem 0.6rem; vertical-align: top; text-align: left; }
th { background: #f1f5f9; }
</style>
</head>
<body>
%s</body>
</html>
`

// DefaultTitle is the page title used when the strategy has no monthly theme.
const DefaultTitle = "Content Strategy"

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		// Raw HTML (the <br> cell breaks) is let through here and cleaned by the sanitizer.
		goldmark.WithRendererOptions(goldhtml.WithUnsafe()),
	)

	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

// RenderHTMLFragment converts the Markdown rendition to HTML and sanitizes it.
// Model text is untrusted, so anything outside the UGC policy is stripped.
func RenderHTMLFragment(strategy *types.ContentStrategy) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(RenderMarkdown(strategy)), &buf); err != nil {
		return nil, &RenderError{Format: "html", Message: "failed to convert markdown", Cause: err}
	}
	return sanitizer().SanitizeBytes(buf.Bytes()), nil
}

// RenderHTML renders a standalone HTML page for the strategy.
func RenderHTML(strategy *types.ContentStrategy) ([]byte, error) {
	body, err := RenderHTMLFragment(strategy)
	if err != nil {
		return nil, err
	}

	title := DefaultTitle
	if strategy != nil && strategy.Overview.MonthlyTheme != "" {
		title = fmt.Sprintf("%s: %s", DefaultTitle, strategy.Overview.MonthlyTheme)
	}
	return []byte(fmt.Sprintf(pageTemplate, html.EscapeString(title), body)), nil
}
