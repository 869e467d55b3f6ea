package rendering

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-calendar/internal/types"
)

func sampleStrategy() *types.ContentStrategy {
	return &types.ContentStrategy{
		Overview: types.ContentStrategyOverview{
			MonthlyTheme:  "Spring Brew Season",
			KeyObjectives: []string{"Grow Instagram followers by 15%", "Drive in-store visits"},
			ContentPillars: []types.ContentPillar{
				{Pillar: "Education", Distribution: "40%"},
				{Pillar: "Community", Distribution: "30%"},
			},
			SuccessMetrics: []string{"Engagement rate", "Store visits"},
		},
		PlatformStrategies: []types.PlatformStrategy{
			{
				Platform:            "Instagram",
				PostingFrequency:    "5x per week",
				OptimalPostingTimes: "7am, 12pm",
				ContentFocus:        "Reels and carousels",
				HashtagStrategy:     "3 branded, 5 niche",
			},
		},
		Calendar: []types.CalendarEntry{
			{
				Date:               "Day 1",
				Platform:           "Instagram",
				ContentType:        "Reel",
				TopicTheme:         "Pour-over basics",
				PostCopy:           "Slow mornings.\nBetter coffee | Acme",
				VisualRequirements: "Overhead shot",
				Hashtags:           "#acme #pourover",
				CTA:                "Visit us",
				Notes:              "Use trending audio",
			},
		},
		Briefs: []types.ContentBrief{
			{
				Objective:          "Launch the spring menu",
				TargetAudience:     "Local professionals",
				KeyMessage:         "Fresh, seasonal, local",
				FullCopy:           "Spring is here.\nTry the lavender latte.",
				VisualConcept:      "Pastel flat lay",
				EngagementStrategy: "Ask followers to vote",
				SuccessMetrics:     "200 saves",
			},
		},
	}
}

func TestRenderMarkdown_Sections(t *testing.T) {
	md := RenderMarkdown(sampleStrategy())

	headings := []string{HeadingOverview, HeadingPlatforms, HeadingCalendar, HeadingBriefs}
	last := -1
	for _, h := range headings {
		idx := strings.Index(md, "## "+h)
		require.GreaterOrEqual(t, idx, 0, "missing heading %q", h)
		assert.Greater(t, idx, last, "heading %q out of order", h)
		last = idx
	}

	assert.Contains(t, md, "Spring Brew Season")
	assert.Contains(t, md, "- Education (40%)")
	assert.Contains(t, md, "### Instagram")
	assert.Contains(t, md, "**Frequency:** 5x per week")
	assert.Contains(t, md, "### Brief: Launch the spring menu")
	assert.Contains(t, md, "**Full Copy:** Spring is here.<br>Try the lavender latte.")
}

func TestRenderMarkdown_CalendarTable(t *testing.T) {
	md := RenderMarkdown(sampleStrategy())

	assert.Contains(t, md, "| Date | Platform | Content Type | Topic/Theme | Post Copy | Visuals | Hashtags | CTA | Notes |")
	assert.Contains(t, md, "| --- | --- | --- | --- | --- | --- | --- | --- | --- |")
	assert.Contains(t, md, `| Day 1 | Instagram | Reel | Pour-over basics | Slow mornings.<br>Better coffee \| Acme |`)
}

func TestRenderMarkdown_EmptySections(t *testing.T) {
	md := RenderMarkdown(&types.ContentStrategy{})

	assert.Contains(t, md, "## "+HeadingCalendar+"\n\n_None._")
	assert.Contains(t, md, "## "+HeadingBriefs+"\n\n_None._")
	assert.Contains(t, md, "### Monthly Theme\n\n_None_")
	assert.NotContains(t, md, "| Date |")
}

func TestRenderMarkdown_Nil(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(nil))
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	assert.Equal(t, RenderMarkdown(sampleStrategy()), RenderMarkdown(sampleStrategy()))
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML(sampleStrategy())
	require.NoError(t, err)

	out := string(page)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Content Strategy: Spring Brew Season</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Post Copy</th>")
	assert.Contains(t, out, "Slow mornings.")
	assert.Contains(t, out, "Better coffee | Acme")
	assert.NotContains(t, out, `\|`)
}

func TestRenderHTML_DefaultTitle(t *testing.T) {
	page, err := RenderHTML(&types.ContentStrategy{})
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Content Strategy</title>")
}

func TestRenderHTMLFragment_SanitizesModelText(t *testing.T) {
	s := sampleStrategy()
	s.Calendar[0].Notes = `<script>alert("x")</script>ok`
	s.Briefs[0].FullCopy = `<a href="javascript:alert(1)" onclick="alert(2)">click</a>`

	body, err := RenderHTMLFragment(s)
	require.NoError(t, err)

	out := string(body)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "click")
}

func TestRenderHTML_TitleEscaped(t *testing.T) {
	s := sampleStrategy()
	s.Overview.MonthlyTheme = "</title><script>x</script>"

	page, err := RenderHTML(s)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Content Strategy: &lt;/title&gt;&lt;script&gt;x&lt;/script&gt;</title>")
}

func TestWriteCalendarCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCalendarCSV(&buf, sampleStrategy().Calendar))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CalendarColumns, records[0])
	assert.Equal(t, "Slow mornings.\nBetter coffee | Acme", records[1][4])
	assert.Equal(t, "Use trending audio", records[1][8])
}

func TestWriteCalendarCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCalendarCSV(&buf, nil))
	assert.Equal(t, strings.Join(CalendarColumns, ",")+"\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCalendarCSV_WriteError(t *testing.T) {
	err := WriteCalendarCSV(failingWriter{}, sampleStrategy().Calendar)
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "csv", renderErr.Format)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRenderError(t *testing.T) {
	cause := errors.New("boom")
	err := &RenderError{Format: "html", Message: "failed", Cause: cause}
	assert.Equal(t, "render error (html): failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "render error: bare", (&RenderError{Message: "bare"}).Error())
}
