package analytics

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(study, brk, sleep float64, stress, focus int) model.DailyEntry {
	return model.DailyEntry{
		StudyHours:  model.Float(study),
		BreakTime:   model.Float(brk),
		Sleep:       model.Float(sleep),
		StressLevel: model.Int(stress),
		Focus:       model.Int(focus),
	}
}

func repeat(e model.DailyEntry, n int) []model.DailyEntry {
	out := make([]model.DailyEntry, n)
	for i := range out {
		out[i] = e
	}
	return out
}

func messages(insights []model.Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.Message
	}
	return out
}

// =============================================================================
// GenerateInsights Tests
// =============================================================================

func TestGenerateInsightsEmpty(t *testing.T) {
	insights := GenerateInsights(nil)
	require.NotNil(t, insights)
	assert.Empty(t, insights)

	data, err := json.Marshal(insights)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestGenerateInsightsBelowMinimum(t *testing.T) {
	// Content that would trigger every rule.
	for n := 0; n < DefaultMinEntries; n++ {
		insights := GenerateInsights(repeat(entry(10, 60, 9, 1, 5), n))
		assert.Empty(t, insights, "n=%d", n)
	}
}

func TestGenerateInsightsAllPositive(t *testing.T) {
	insights := GenerateInsights(repeat(entry(7, 0, 8, 1, 5), 7))

	// Pattern insights: focus-sleep fires (7/7 >= 7h); stress-break does not (0 min breaks).
	require.Len(t, insights, 5)
	assert.Equal(t, []string{
		"You're averaging 7.0 hours of study per day. That's excellent dedication!",
		"Great job maintaining 8.0 hours of sleep on average! Good sleep supports better focus and learning.",
		"Your stress levels are well-managed (average: 1.0/5). Keep up the great work!",
		"Your focus levels are strong (average: 5.0/5). You're in a great learning zone!",
		"You focus better when you get 7+ hours of sleep. This is a great pattern to maintain!",
	}, messages(insights))

	assert.Equal(t, model.Insight{
		Type:     model.InsightStudyHours,
		Message:  "You're averaging 7.0 hours of study per day. That's excellent dedication!",
		Category: model.CategoryPositive,
		Priority: model.PriorityHigh,
	}, insights[0])
	assert.Equal(t, model.InsightSleep, insights[1].Type)
	assert.Equal(t, model.PriorityMedium, insights[2].Priority)
	assert.Equal(t, model.InsightFocus, insights[3].Type)
	assert.Equal(t, model.InsightPattern, insights[4].Type)
	assert.Equal(t, model.CategoryInsight, insights[4].Category)
}

func TestGenerateInsightsThresholdRulesOnly(t *testing.T) {
	// Focus stays neutral, so no focus rule and no focus-sleep pattern.
	e := entry(7, 0, 8, 3, 3)
	e.StressLevel = model.Int(2)
	insights := GenerateInsights(repeat(e, 7))

	assert.Equal(t, []string{
		"You're averaging 7.0 hours of study per day. That's excellent dedication!",
		"Great job maintaining 8.0 hours of sleep on average! Good sleep supports better focus and learning.",
		"Your stress levels are well-managed (average: 2.0/5). Keep up the great work!",
	}, messages(insights))
}

func TestGenerateInsightsAllSuggestions(t *testing.T) {
	insights := GenerateInsights(repeat(entry(1.5, 5, 5.5, 5, 1), 8))

	assert.Equal(t, []string{
		"You're averaging 1.5 hours of study per day. Consider gradually increasing your study time.",
		"You're averaging 5.5 hours of sleep. Consider aiming for 7-9 hours for optimal cognitive function.",
		"Your stress levels are elevated (average: 5.0/5). Consider incorporating more breaks and relaxation techniques.",
		"Your focus levels could improve (average: 1.0/5). Try studying in shorter, more focused sessions.",
	}, messages(insights))
	for _, in := range insights {
		assert.Equal(t, model.CategorySuggestion, in.Category)
	}
}

func TestGenerateInsightsNothingFires(t *testing.T) {
	insights := GenerateInsights(repeat(entry(4, 10, 7, 3, 3), 10))
	require.NotNil(t, insights)
	assert.Empty(t, insights)
}

func TestGenerateInsightsMissingFields(t *testing.T) {
	// Missing hours count as 0, missing levels as 3.
	insights := GenerateInsights(repeat(model.DailyEntry{}, 7))
	assert.Equal(t, []string{
		"You're averaging 0.0 hours of study per day. Consider gradually increasing your study time.",
		"You're averaging 0.0 hours of sleep. Consider aiming for 7-9 hours for optimal cognitive function.",
	}, messages(insights))
}

func TestGenerateInsightsRoundsHalfUp(t *testing.T) {
	// Focus sums to 34 over 8 days: 4.25 must render as 4.3, not 4.2.
	entries := append(repeat(entry(4, 20, 7, 3, 5), 2), repeat(entry(4, 20, 7, 3, 4), 6)...)

	got := messages(GenerateInsights(entries))
	assert.Contains(t, got, "Your focus levels are strong (average: 4.3/5). You're in a great learning zone!")
}

func TestRoundTenth(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4.25, "4.3"},
		{1.75, "1.8"},
		{2.125, "2.1"},
		{4.35, "4.3"}, // stored just below 4.35
		{0.15, "0.1"}, // stored just below 0.15
		{0.05, "0.1"}, // stored just above 0.05
		{7, "7.0"},
		{0, "0.0"},
		{-2.25, "-2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, fmt.Sprintf("%.1f", roundTenth(tt.in)))
		})
	}
}

func TestGenerateInsightsBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		entry model.DailyEntry
		want  []model.InsightType
	}{
		{"study_exactly_6_not_positive", entry(6, 0, 7, 3, 3), nil},
		{"study_exactly_2_not_suggestion", entry(2, 0, 7, 3, 3), nil},
		{"sleep_exactly_8_positive", entry(4, 0, 8, 3, 3), []model.InsightType{model.InsightSleep}},
		{"sleep_exactly_6_not_suggestion", entry(4, 0, 6, 3, 3), nil},
		{"stress_exactly_4_elevated", entry(4, 0, 7, 4, 3), []model.InsightType{model.InsightStress}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := GenerateInsights(repeat(tt.entry, 7))
			var types []model.InsightType
			for _, in := range insights {
				types = append(types, in.Type)
			}
			assert.Equal(t, tt.want, types)
		})
	}
}

func TestFocusSleepPattern(t *testing.T) {
	build := func(wellRested int) []model.DailyEntry {
		var entries []model.DailyEntry
		for i := 0; i < 10; i++ {
			sleep := 6.0
			if i < wellRested {
				sleep = 7.5
			}
			entries = append(entries, entry(4, 0, sleep, 3, 4))
		}
		return entries
	}
	const msg = "You focus better when you get 7+ hours of sleep. This is a great pattern to maintain!"

	assert.Contains(t, messages(GenerateInsights(build(8))), msg)
	assert.NotContains(t, messages(GenerateInsights(build(5))), msg)
	// Strictly greater than 0.7.
	assert.NotContains(t, messages(GenerateInsights(build(7))), msg)
}

func TestStressBreakPattern(t *testing.T) {
	const msg = "Taking longer breaks seems to help reduce your stress levels. Consider incorporating more break time."

	var entries []model.DailyEntry
	for i := 0; i < 10; i++ {
		brk := 10.0
		if i < 7 {
			brk = 45
		}
		entries = append(entries, entry(4, brk, 7, 2, 3))
	}
	insights := GenerateInsights(entries)
	require.NotEmpty(t, insights)
	last := insights[len(insights)-1]
	assert.Equal(t, msg, last.Message)
	assert.Equal(t, model.PriorityMedium, last.Priority)

	entries[6].BreakTime = model.Float(0)
	assert.NotContains(t, messages(GenerateInsights(entries)), msg)
}

func TestPatternsSkippedWithoutSubset(t *testing.T) {
	p := Rules().Patterns[0]
	frac, n := p.Fraction(repeat(entry(4, 0, 9, 3, 2), 7))
	assert.Equal(t, 0, n)
	assert.Equal(t, 0.0, frac)
}

func TestGenerateInsightsIdempotent(t *testing.T) {
	var entries []model.DailyEntry
	for i := 0; i < 12; i++ {
		entries = append(entries, entry(float64(i), float64(i*5), 5+float64(i%4), 1+i%5, 5-i%5))
	}

	first, err := json.Marshal(GenerateInsights(entries))
	require.NoError(t, err)
	second, err := json.Marshal(GenerateInsights(entries))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateInsightsWith(t *testing.T) {
	t.Run("custom_min_entries", func(t *testing.T) {
		entries := repeat(entry(7, 0, 8, 1, 5), 3)
		assert.Empty(t, GenerateInsights(entries))
		assert.Len(t, GenerateInsightsWith(entries, Rules(), InsightOptions{MinEntries: 3}), 5)
	})

	t.Run("custom_rule", func(t *testing.T) {
		rules := RuleSet{Thresholds: []Rule{{
			Type:     model.InsightStudyHours,
			Metric:   MetricStudyHours,
			When:     func(v float64) bool { return v >= 3 },
			Format:   "%.1f hours",
			Category: model.CategoryPositive,
			Priority: model.PriorityLow,
		}}}
		insights := GenerateInsightsWith(repeat(entry(3, 0, 0, 3, 3), 7), rules, InsightOptions{})
		require.Len(t, insights, 1)
		assert.Equal(t, "3.0 hours", insights[0].Message)
	})

	t.Run("rules_returns_copy", func(t *testing.T) {
		rules := Rules()
		rules.Thresholds[0].Format = "changed"
		assert.NotEqual(t, "changed", Rules().Thresholds[0].Format)
		assert.Len(t, Rules().Thresholds, 8)
		assert.Len(t, Rules().Patterns, 2)
	})
}
