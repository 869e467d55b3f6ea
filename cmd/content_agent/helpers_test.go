package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jonathan/content-calendar/internal/llm"
	"github.com/jonathan/content-calendar/internal/strategy"
	"github.com/jonathan/content-calendar/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// stubClient is an llm.Client returning a canned reply
type stubClient struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (c *stubClient) GenerateJSON(_ context.Context, prompt string, _ *llm.Schema, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	return c.response, c.err
}

func (c *stubClient) GetModel(tier llm.ModelTier) string { return "stub-" + string(tier) }
func (c *stubClient) Close() error                       { return nil }

func (c *stubClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

// useStubGenerator routes newGenerator to client and records the config it was given
func useStubGenerator(t *testing.T, client *stubClient) *strategy.Config {
	t.Helper()
	var captured strategy.Config
	original := newGenerator
	newGenerator = func(_ context.Context, cfg strategy.Config) (*strategy.Generator, error) {
		captured = cfg
		return strategy.NewWithClient(client, cfg), nil
	}
	t.Cleanup(func() { newGenerator = original })
	return &captured
}

// executeCommand runs the root command with args, resetting all flags first
func executeCommand(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// clearEnv unsets the variables config.FromEnv reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "API_KEY", "CONTENT_AGENT_PROVIDER", "CONTENT_AGENT_MODEL"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sampleStrategy() *types.ContentStrategy {
	return &types.ContentStrategy{
		Overview: types.ContentStrategyOverview{
			MonthlyTheme:   "Spring Brew Season",
			KeyObjectives:  []string{"Grow followers"},
			ContentPillars: []types.ContentPillar{{Pillar: "Education", Distribution: "100%"}},
			SuccessMetrics: []string{"Engagement rate"},
		},
		PlatformStrategies: []types.PlatformStrategy{{
			Platform: "Instagram", PostingFrequency: "daily", OptimalPostingTimes: "7am",
			ContentFocus: "Reels", HashtagStrategy: "branded",
		}},
		Calendar: []types.CalendarEntry{{
			Date: "Day 1", Platform: "Instagram", ContentType: "Reel", TopicTheme: "Pour-over",
			PostCopy: "Slow mornings.", VisualRequirements: "Overhead shot", Hashtags: "#acme",
			CTA: "Visit us", Notes: "Trending audio",
		}},
		Briefs: []types.ContentBrief{{
			Objective: "Launch menu", TargetAudience: "Locals", KeyMessage: "Fresh",
			FullCopy: "Spring is here.", VisualConcept: "Flat lay", EngagementStrategy: "Polls",
			SuccessMetrics: "200 saves",
		}},
	}
}

func sampleJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(sampleStrategy())
	require.NoError(t, err)
	return string(data)
}
