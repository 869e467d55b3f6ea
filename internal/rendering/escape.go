package rendering

import "strings"

// lineBreak is used in place of newlines inside table cells and list items,
// where a literal newline would end the block.
const lineBreak = "<br>"

// EscapeTableCell makes text safe to place in a single GFM table cell.
// Pipes are escaped and line breaks become <br> so multi-line post copy
// stays inside its cell.
func EscapeTableCell(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + 8)

	text = normalizeNewlines(strings.TrimSpace(text))
	for _, r := range text {
		switch r {
		case '|':
			result.WriteString(`\|`)
		case '\n':
			result.WriteString(lineBreak)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// EscapeInline keeps text on one Markdown line, e.g. a list item or a labelled field.
func EscapeInline(text string) string {
	text = normalizeNewlines(strings.TrimSpace(text))
	return strings.ReplaceAll(text, "\n", lineBreak)
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
