package strategy

import (
	"github.com/jonathan/content-calendar/internal/prompts"
	"github.com/jonathan/content-calendar/internal/types"
)

const (
	promptFile = "strategy.json"
	promptKey  = "content-strategy"
)

// BuildPrompt renders the content-strategy instruction for a form.
// Each field is placed verbatim in its own tagged section; nothing is trimmed or escaped.
func BuildPrompt(form types.FormState) string {
	template := prompts.MustGet(promptFile, promptKey)
	return prompts.Format(template, map[string]string{
		"BrandInfo":     form.BrandInfo,
		"ContentParams": form.ContentParams,
		"CurrentAssets": form.CurrentAssets,
	})
}
