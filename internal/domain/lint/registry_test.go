package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Registry: every classifier over one file, in registry order.
// =============================================================================

const reviewFixture = `/**
 * Sample component with the usual review findings.
 */

// TODO: remove this file after the review run
import { useState, useEffect } from 'react';
import type { FC } from 'react'; // unused, for the bot to flag

export function SampleReview() {
  const [count, setCount] = useState(0);

  console.log('debug count', count);

  useEffect(() => {
    setCount((c) => c + 1);
  }, []);

  // unnecessary comment on the line above
  return (
    <div>
      <p>Count: {count}</p>
    </div>
  );
}
`

func categories(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Category
	}
	return out
}

func TestAnalyze_ReviewFixture(t *testing.T) {
	f := NewSourceFile("src/components/SampleReview.tsx", reviewFixture)
	issues := Analyze(f, DefaultConfig())

	assert.Equal(t, []string{
		CatUnusedImport,
		CatConsoleLog,
		CatComment,
		CatTodoComment,
		CatAtomicDesign,
	}, categories(issues))

	byCat := make(map[string]Issue)
	for _, is := range issues {
		byCat[is.Category] = is
	}
	assert.Equal(t, 7, byCat[CatUnusedImport].Line)
	assert.Contains(t, byCat[CatUnusedImport].Message, "`FC`")
	assert.Equal(t, SevError, byCat[CatUnusedImport].Severity)
	assert.Equal(t, 12, byCat[CatConsoleLog].Line)
	assert.Equal(t, 7, byCat[CatComment].Line)
	assert.Equal(t, 18, byCat[CatComment].EndLine)
	assert.Equal(t, 5, byCat[CatTodoComment].Line)
	assert.True(t, byCat[CatAtomicDesign].FileLevel)
}

func TestAnalyze_AtMostOneIssuePerCategoryAndLinesInRange(t *testing.T) {
	for _, src := range []string{reviewFixture, sixStates, inlineTypesSrc} {
		f := NewSourceFile("src/components/X.tsx", src)
		seen := make(map[string]bool)
		for _, is := range Analyze(f, DefaultConfig()) {
			assert.False(t, seen[is.Category], "duplicate category %s", is.Category)
			seen[is.Category] = true
			assert.GreaterOrEqual(t, is.Line, 1)
			assert.LessOrEqual(t, is.Line, f.LineCount())
			if is.EndLine != 0 {
				assert.Greater(t, is.EndLine, is.Line)
				assert.LessOrEqual(t, is.EndLine, f.LineCount())
			}
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	f := NewSourceFile("src/components/SampleReview.tsx", reviewFixture)
	first := Analyze(f, DefaultConfig())
	second := Analyze(f, DefaultConfig())
	assert.Equal(t, first, second)
	assert.Equal(t, reviewFixture, f.Content, "input is not mutated")
}

func TestAnalyze_EmptyFile(t *testing.T) {
	f := NewSourceFile("src/util.ts", "")
	assert.Empty(t, Analyze(f, DefaultConfig()))
}

func TestAnalyze_DisabledAndSeverityOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []string{CatAtomicDesign, CatTodoComment}
	cfg.Severity = map[string]Severity{CatConsoleLog: SevError}

	f := NewSourceFile("src/components/SampleReview.tsx", reviewFixture)
	issues := Analyze(f, cfg)
	assert.Equal(t, []string{CatUnusedImport, CatConsoleLog, CatComment}, categories(issues))
	assert.Equal(t, SevError, issues[1].Severity)
}

// =============================================================================
// Prefilter: skipping classifiers never changes the output.
// =============================================================================

type nothingMatches struct{}

func (nothingMatches) Match(string) []string { return nil }

func TestRegistry_PrefilterSkipsTriggeredRules(t *testing.T) {
	f := NewSourceFile("src/components/SampleReview.tsx", reviewFixture)
	issues := DefaultRegistry().WithPrefilter(nothingMatches{}).Analyze(f, DefaultConfig())
	// Only rules without triggers can still run.
	assert.Equal(t, []string{CatAtomicDesign}, categories(issues))
}

func TestRegistry_TriggersAndOrder(t *testing.T) {
	reg := DefaultRegistry()
	seen := make(map[string]bool)
	for _, tr := range reg.Triggers() {
		assert.False(t, seen[tr], "duplicate trigger %q", tr)
		seen[tr] = true
	}

	rules := reg.Rules()
	require.Len(t, rules, len(AllCategories))
	for i, r := range rules {
		assert.Equal(t, AllCategories[i], r.Category)
		assert.NotNil(t, r.Check, r.Category)
		assert.NotEmpty(t, r.Label, r.Category)
	}
}
