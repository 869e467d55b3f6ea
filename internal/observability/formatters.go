// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/content-calendar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// oneLine collapses multi-line model text so it fits a single box row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PrintRequest outputs a summary of the submission about to be sent.
func (p *Printer) PrintRequest(form types.FormState, model string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Model:          %s\n", model))
	sb.WriteString(fmt.Sprintf("Brand info:     %d chars\n", utf8.RuneCountInString(form.BrandInfo)))
	sb.WriteString(fmt.Sprintf("Content params: %d chars\n", utf8.RuneCountInString(form.ContentParams)))
	if strings.TrimSpace(form.CurrentAssets) == "" {
		sb.WriteString("Current assets: (none)")
	} else {
		sb.WriteString(fmt.Sprintf("Current assets: %d chars", utf8.RuneCountInString(form.CurrentAssets)))
	}

	p.printBox("STRATEGY REQUEST", sb.String())
}

// PrintOverview outputs the monthly theme, objectives, pillars and metrics.
func (p *Printer) PrintOverview(overview *types.ContentStrategyOverview) {
	if overview == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Theme:  %s\n", oneLine(overview.MonthlyTheme)))
	sb.WriteString("\n")

	writeList(&sb, "Key Objectives", overview.KeyObjectives, maxItemsToShow)

	if len(overview.ContentPillars) > 0 {
		sb.WriteString("Content Pillars:\n")
		for _, pillar := range overview.ContentPillars {
			sb.WriteString(fmt.Sprintf("  • %s", oneLine(pillar.Pillar)))
			if pillar.Distribution != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", pillar.Distribution))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Success Metrics", overview.SuccessMetrics, 3)

	p.printBox("CONTENT STRATEGY OVERVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlatforms outputs one block per platform strategy.
func (p *Printer) PrintPlatforms(platforms []types.PlatformStrategy) {
	if len(platforms) == 0 {
		return
	}

	var sb strings.Builder
	for i, platform := range platforms {
		sb.WriteString(fmt.Sprintf("%s\n", oneLine(platform.Platform)))
		sb.WriteString(fmt.Sprintf("  Frequency: %s\n", oneLine(platform.PostingFrequency)))
		sb.WriteString(fmt.Sprintf("  Times:     %s\n", oneLine(platform.OptimalPostingTimes)))
		sb.WriteString(fmt.Sprintf("  Focus:     %s\n", oneLine(platform.ContentFocus)))
		if i < len(platforms)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PLATFORM STRATEGIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCalendar outputs the first entries of the calendar, one line per post.
func (p *Printer) PrintCalendar(entries []types.CalendarEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total posts scheduled: %d\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := entries[i]
		sb.WriteString(fmt.Sprintf("%-8s %s · %s\n", oneLine(entry.Date), oneLine(entry.Platform), oneLine(entry.ContentType)))
		sb.WriteString(fmt.Sprintf("  %s\n", oneLine(entry.TopicTheme)))
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more posts", len(entries)-maxItemsToShow))
	}

	p.printBox("CONTENT CALENDAR", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBriefs outputs the objective and key message of each brief.
func (p *Printer) PrintBriefs(briefs []types.ContentBrief) {
	if len(briefs) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(briefs), 3)
	for i := 0; i < count; i++ {
		brief := briefs[i]
		sb.WriteString(fmt.Sprintf("• %s\n", oneLine(brief.Objective)))
		sb.WriteString(fmt.Sprintf("  Audience: %s\n", oneLine(brief.TargetAudience)))
		sb.WriteString(fmt.Sprintf("  Message:  %s\n", oneLine(brief.KeyMessage)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(briefs) > 3 {
		sb.WriteString(fmt.Sprintf("\n... and %d more briefs", len(briefs)-3))
	}

	p.printBox("CONTENT BRIEFS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStrategy outputs every section of a generated strategy.
func (p *Printer) PrintStrategy(strategy *types.ContentStrategy) {
	if strategy == nil {
		return
	}
	p.PrintOverview(&strategy.Overview)
	p.PrintPlatforms(strategy.PlatformStrategies)
	p.PrintCalendar(strategy.Calendar)
	p.PrintBriefs(strategy.Briefs)
}

// PrintFailure outputs a failed generation with the message shown to users.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintFailure(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ STRATEGY GENERATED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}
	p.printBox("⚠ GENERATION FAILED", oneLine(err.Error()))
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", oneLine(items[i])))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}
