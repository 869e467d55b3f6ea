// Package ingestion prepares free-text brand inputs taken from files and web pages.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpaces = regexp.MustCompile(`[ \t]+`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings, trims every line, collapses inner runs of spaces
// and keeps at most one blank line between paragraphs. Leading indentation of list
// items is preserved so nested bullets survive.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	return strings.TrimSpace(blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	body := innerSpaces.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		indent := len(strings.TrimRight(line, " \t")) - len(strings.TrimLeft(strings.TrimRight(line, " \t"), " \t"))
		return strings.Repeat(" ", indent) + body
	}
	return body
}

func isBulletLine(trimmed string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// Truncate cuts text to at most limit runes, ending on a line boundary when one
// falls in the back half. It reports whether anything was dropped.
func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, "\n"); i >= len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut), true
}
