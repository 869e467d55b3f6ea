package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/content-calendar/internal/types"
)

// Section headings, in document order.
const (
	HeadingOverview  = "Content Strategy Overview"
	HeadingPlatforms = "Platform-Specific Strategy"
	HeadingCalendar  = "30-Day Content Calendar"
	HeadingBriefs    = "Content Briefs for Major Posts"
)

// CalendarColumns are the calendar table headers, one per CalendarEntry field.
var CalendarColumns = []string{
	"Date", "Platform", "Content Type", "Topic/Theme", "Post Copy",
	"Visuals", "Hashtags", "CTA", "Notes",
}

// RenderMarkdown renders the strategy as a GitHub-flavoured Markdown document.
// Empty sections keep their heading so the document shape does not depend on the model output.
func RenderMarkdown(strategy *types.ContentStrategy) string {
	if strategy == nil {
		return ""
	}

	var b strings.Builder
	writeOverview(&b, strategy.Overview)
	writePlatforms(&b, strategy.PlatformStrategies)
	writeCalendar(&b, strategy.Calendar)
	writeBriefs(&b, strategy.Briefs)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeOverview(b *strings.Builder, o types.ContentStrategyOverview) {
	fmt.Fprintf(b, "## %s\n\n", HeadingOverview)

	fmt.Fprintf(b, "### Monthly Theme\n\n%s\n\n", orNone(EscapeInline(o.MonthlyTheme)))

	b.WriteString("### Key Objectives\n\n")
	writeList(b, o.KeyObjectives)

	b.WriteString("### Content Pillars\n\n")
	pillars := make([]string, 0, len(o.ContentPillars))
	for _, p := range o.ContentPillars {
		if strings.TrimSpace(p.Distribution) == "" {
			pillars = append(pillars, p.Pillar)
			continue
		}
		pillars = append(pillars, fmt.Sprintf("%s (%s)", p.Pillar, p.Distribution))
	}
	writeList(b, pillars)

	b.WriteString("### Success Metrics\n\n")
	writeList(b, o.SuccessMetrics)
}

func writePlatforms(b *strings.Builder, platforms []types.PlatformStrategy) {
	fmt.Fprintf(b, "## %s\n\n", HeadingPlatforms)
	if len(platforms) == 0 {
		b.WriteString("_None._\n\n")
		return
	}
	for _, p := range platforms {
		fmt.Fprintf(b, "### %s\n\n", orNone(EscapeInline(p.Platform)))
		writeField(b, "Frequency", p.PostingFrequency)
		writeField(b, "Optimal Times", p.OptimalPostingTimes)
		writeField(b, "Content Focus", p.ContentFocus)
		writeField(b, "Hashtag Strategy", p.HashtagStrategy)
		b.WriteString("\n")
	}
}

func writeCalendar(b *strings.Builder, entries []types.CalendarEntry) {
	fmt.Fprintf(b, "## %s\n\n", HeadingCalendar)
	if len(entries) == 0 {
		b.WriteString("_None._\n\n")
		return
	}

	b.WriteString("| " + strings.Join(CalendarColumns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(CalendarColumns)) + "\n")
	for _, e := range entries {
		cells := CalendarRow(e)
		for i := range cells {
			cells[i] = EscapeTableCell(cells[i])
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}

func writeBriefs(b *strings.Builder, briefs []types.ContentBrief) {
	fmt.Fprintf(b, "## %s\n\n", HeadingBriefs)
	if len(briefs) == 0 {
		b.WriteString("_None._\n\n")
		return
	}
	for _, br := range briefs {
		fmt.Fprintf(b, "### Brief: %s\n\n", orNone(EscapeInline(br.Objective)))
		writeField(b, "Target Audience", br.TargetAudience)
		writeField(b, "Key Message", br.KeyMessage)
		writeField(b, "Full Copy", br.FullCopy)
		writeField(b, "Visual Concept", br.VisualConcept)
		writeField(b, "Engagement Strategy", br.EngagementStrategy)
		writeField(b, "Success Metrics", br.SuccessMetrics)
		b.WriteString("\n")
	}
}

// CalendarRow returns the entry's values in CalendarColumns order.
func CalendarRow(e types.CalendarEntry) []string {
	return []string{
		e.Date, e.Platform, e.ContentType, e.TopicTheme, e.PostCopy,
		e.VisualRequirements, e.Hashtags, e.CTA, e.Notes,
	}
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("_None._\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", EscapeInline(item))
	}
	b.WriteString("\n")
}

// writeField writes a "**Label:** value" line; the trailing double space forces a hard break.
func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "**%s:** %s  \n", label, orNone(EscapeInline(value)))
}

func orNone(s string) string {
	if s == "" {
		return "_None_"
	}
	return s
}
