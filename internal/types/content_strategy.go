// Package types provides type definitions for structured data used throughout the content-calendar system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContentStrategy is the structured document returned by the model for one submission
type ContentStrategy struct {
	Overview           ContentStrategyOverview `json:"contentStrategyOverview"`
	PlatformStrategies []PlatformStrategy      `json:"platformSpecificStrategies"`
	Calendar           []CalendarEntry         `json:"contentCalendar"`
	Briefs             []ContentBrief          `json:"contentBriefs"`
}

// ContentStrategyOverview summarizes the month: theme, objectives, pillars and KPIs
type ContentStrategyOverview struct {
	MonthlyTheme   string          `json:"monthlyTheme"`
	KeyObjectives  []string        `json:"keyObjectives"`
	ContentPillars []ContentPillar `json:"contentPillars"`
	SuccessMetrics []string        `json:"successMetrics"`
}

// ContentPillar is a content category with its share of the calendar (e.g. "30%")
type ContentPillar struct {
	Pillar       string `json:"pillar"`
	Distribution string `json:"distribution"`
}

// PlatformStrategy describes how content is adapted to a single platform
type PlatformStrategy struct {
	Platform            string `json:"platform"`
	PostingFrequency    string `json:"postingFrequency"`
	OptimalPostingTimes string `json:"optimalPostingTimes"`
	ContentFocus        string `json:"contentFocus"`
	HashtagStrategy     string `json:"hashtagStrategy"`
}

// CalendarEntry is one scheduled post in the content calendar
type CalendarEntry struct {
	Date               string `json:"date"`
	Platform           string `json:"platform"`
	ContentType        string `json:"contentType"`
	TopicTheme         string `json:"topicTheme"`
	PostCopy           string `json:"postCopy"`
	VisualRequirements string `json:"visualRequirements"`
	Hashtags           string `json:"hashtags"`
	CTA                string `json:"cta"`
	Notes              string `json:"notes"`
}

// ContentBrief is an expanded brief for one of the major posts of the month
type ContentBrief struct {
	Objective          string `json:"objective"`
	TargetAudience     string `json:"targetAudience"`
	KeyMessage         string `json:"keyMessage"`
	FullCopy           string `json:"fullCopy"`
	VisualConcept      string `json:"visualConcept"`
	EngagementStrategy string `json:"engagementStrategy"`
	SuccessMetrics     string `json:"successMetrics"`
}
