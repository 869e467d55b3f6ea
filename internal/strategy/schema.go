package strategy

import (
	"sync"

	"github.com/jonathan/content-calendar/internal/llm"
	"github.com/jonathan/content-calendar/internal/schemas"
)

var (
	responseSchemaOnce sync.Once
	responseSchema     *llm.Schema
	jsonSchemaDoc      map[string]any
)

// ResponseSchema returns the structured-output schema describing a ContentStrategy.
// The returned value is shared and must not be modified.
func ResponseSchema() *llm.Schema {
	responseSchemaOnce.Do(func() {
		responseSchema = buildResponseSchema()
		jsonSchemaDoc = responseSchema.JSONSchema()
		jsonSchemaDoc["$schema"] = "http://json-schema.org/draft-07/schema#"
		jsonSchemaDoc["title"] = "ContentStrategy"
	})
	return responseSchema
}

// JSONSchema returns the JSON Schema document used to validate model responses and saved files.
// The returned map is shared and must not be modified.
func JSONSchema() map[string]any {
	ResponseSchema()
	return jsonSchemaDoc
}

var (
	validatorOnce sync.Once
	validator     *schemas.Validator
	validatorErr  error
)

// responseValidator compiles JSONSchema() once for checking model replies.
func responseValidator() (*schemas.Validator, error) {
	validatorOnce.Do(func() {
		validator, validatorErr = schemas.Compile(JSONSchema())
	})
	return validator, validatorErr
}

func buildResponseSchema() *llm.Schema {
	str := llm.String
	prop := llm.Prop

	overview := llm.Object("",
		prop("monthlyTheme", str("Overarching content theme for the month")),
		prop("keyObjectives", llm.ArrayOf(str(""), "3-4 specific goals this calendar will achieve")),
		prop("contentPillars", llm.ArrayOf(llm.Object("",
			prop("pillar", str("")),
			prop("distribution", str("")),
		), "4-5 content categories with distribution percentages")),
		prop("successMetrics", llm.ArrayOf(str(""), "KPIs to track performance")),
	)

	platform := llm.Object("",
		prop("platform", str("")),
		prop("postingFrequency", str("Number of posts per week")),
		prop("optimalPostingTimes", str("")),
		prop("contentFocus", str("")),
		prop("hashtagStrategy", str("")),
	)

	entry := llm.Object("",
		prop("date", str("")),
		prop("platform", str("")),
		prop("contentType", str("")),
		prop("topicTheme", str("")),
		prop("postCopy", str("Full copy text for the post")),
		prop("visualRequirements", str("Image/video specifications")),
		prop("hashtags", str("")),
		prop("cta", str("Call to Action")),
		prop("notes", str("Special notes for the post")),
	)

	brief := llm.Object("",
		prop("objective", str("")),
		prop("targetAudience", str("")),
		prop("keyMessage", str("")),
		prop("fullCopy", str("")),
		prop("visualConcept", str("")),
		prop("engagementStrategy", str("")),
		prop("successMetrics", str("")),
	)

	return llm.Object("Content marketing strategy with a daily content calendar",
		prop("contentStrategyOverview", overview),
		prop("platformSpecificStrategies", llm.ArrayOf(platform, "")),
		prop("contentCalendar", llm.ArrayOf(entry, "A 30-day content calendar")),
		prop("contentBriefs", llm.ArrayOf(brief, "Expanded briefs for 2-3 major posts")),
	)
}
