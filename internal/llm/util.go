// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock trims whitespace and removes a Markdown code fence around a JSON payload.
// Models occasionally fence JSON even when a JSON MIME type was requested.
// Anything that is not fenced is returned trimmed and otherwise untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	// Drop an info string such as "json" on the opening fence line
	if idx := strings.Index(body, "\n"); idx >= 0 {
		info := body[:idx]
		if len(info) < 20 && !strings.ContainsAny(info, " {[") {
			body = body[idx+1:]
		}
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}
