package analytics

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/manav03panchal/studytrack/internal/model"
)

// DefaultMinEntries is the smallest window that produces insights.
const DefaultMinEntries = 7

// Metric selects one mean from an Aggregate.
type Metric func(Aggregate) float64

// Metrics used by the default rules.
var (
	MetricStudyHours Metric = func(a Aggregate) float64 { return a.StudyHours }
	MetricSleep      Metric = func(a Aggregate) float64 { return a.Sleep }
	MetricStress     Metric = func(a Aggregate) float64 { return a.Stress }
	MetricFocus      Metric = func(a Aggregate) float64 { return a.Focus }
)

// Rule is a threshold rule over a window mean. Format receives the mean as
// its only argument.
type Rule struct {
	Type     model.InsightType
	Metric   Metric
	When     func(avg float64) bool
	Format   string
	Category model.Category
	Priority model.Priority
}

// Message renders the rule's text for avg, rounded to one decimal with
// ties away from zero (4.25 renders as 4.3).
func (r Rule) Message(avg float64) string {
	return fmt.Sprintf(r.Format, roundTenth(avg))
}

// roundTenth rounds v to one decimal, ties away from zero, using the exact
// binary value of v so 0.15 (stored just below 0.15) still rounds down.
func roundTenth(v float64) float64 {
	r := new(big.Rat).SetFloat64(v)
	if r == nil {
		return v // NaN or Inf
	}
	neg := r.Sign() < 0
	r.Abs(r)
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	tenths := new(big.Int).Quo(r.Num(), r.Denom())

	out := float64(tenths.Int64()) / 10
	if neg {
		return -out
	}
	return out
}

// Pattern is a correlation rule: among entries matching Subset, if the
// fraction also matching Hit exceeds Threshold, Message is emitted. An
// empty subset never fires.
type Pattern struct {
	Type      model.InsightType
	Subset    func(*model.DailyEntry) bool
	Hit       func(*model.DailyEntry) bool
	Threshold float64
	Message   string
	Category  model.Category
	Priority  model.Priority
}

// Fraction returns the hit ratio over the subset and the subset size.
func (p Pattern) Fraction(entries []model.DailyEntry) (float64, int) {
	var subset, hits int
	for i := range entries {
		if !p.Subset(&entries[i]) {
			continue
		}
		subset++
		if p.Hit(&entries[i]) {
			hits++
		}
	}
	if subset == 0 {
		return 0, 0
	}
	return float64(hits) / float64(subset), subset
}

// RuleSet is an ordered insight table: thresholds first, then patterns.
type RuleSet struct {
	Thresholds []Rule
	Patterns   []Pattern
}

var defaultThresholds = []Rule{
	{
		Type: model.InsightStudyHours, Metric: MetricStudyHours,
		When:     func(v float64) bool { return v > 6 },
		Format:   "You're averaging %.1f hours of study per day. That's excellent dedication!",
		Category: model.CategoryPositive, Priority: model.PriorityHigh,
	},
	{
		Type: model.InsightStudyHours, Metric: MetricStudyHours,
		When:     func(v float64) bool { return v < 2 },
		Format:   "You're averaging %.1f hours of study per day. Consider gradually increasing your study time.",
		Category: model.CategorySuggestion, Priority: model.PriorityMedium,
	},
	{
		Type: model.InsightSleep, Metric: MetricSleep,
		When:     func(v float64) bool { return v >= 8 },
		Format:   "Great job maintaining %.1f hours of sleep on average! Good sleep supports better focus and learning.",
		Category: model.CategoryPositive, Priority: model.PriorityHigh,
	},
	{
		Type: model.InsightSleep, Metric: MetricSleep,
		When:     func(v float64) bool { return v < 6 },
		Format:   "You're averaging %.1f hours of sleep. Consider aiming for 7-9 hours for optimal cognitive function.",
		Category: model.CategorySuggestion, Priority: model.PriorityHigh,
	},
	{
		Type: model.InsightStress, Metric: MetricStress,
		When:     func(v float64) bool { return v <= 2 },
		Format:   "Your stress levels are well-managed (average: %.1f/5). Keep up the great work!",
		Category: model.CategoryPositive, Priority: model.PriorityMedium,
	},
	{
		Type: model.InsightStress, Metric: MetricStress,
		When:     func(v float64) bool { return v >= 4 },
		Format:   "Your stress levels are elevated (average: %.1f/5). Consider incorporating more breaks and relaxation techniques.",
		Category: model.CategorySuggestion, Priority: model.PriorityHigh,
	},
	{
		Type: model.InsightFocus, Metric: MetricFocus,
		When:     func(v float64) bool { return v >= 4 },
		Format:   "Your focus levels are strong (average: %.1f/5). You're in a great learning zone!",
		Category: model.CategoryPositive, Priority: model.PriorityMedium,
	},
	{
		Type: model.InsightFocus, Metric: MetricFocus,
		When:     func(v float64) bool { return v <= 2 },
		Format:   "Your focus levels could improve (average: %.1f/5). Try studying in shorter, more focused sessions.",
		Category: model.CategorySuggestion, Priority: model.PriorityMedium,
	},
}

var defaultPatterns = []Pattern{
	{
		Type:      model.InsightPattern,
		Subset:    func(e *model.DailyEntry) bool { return e.FocusOrNeutral() >= 4 },
		Hit:       func(e *model.DailyEntry) bool { return e.SleepOr0() >= 7 },
		Threshold: 0.7,
		Message:   "You focus better when you get 7+ hours of sleep. This is a great pattern to maintain!",
		Category:  model.CategoryInsight,
		Priority:  model.PriorityHigh,
	},
	{
		Type:      model.InsightPattern,
		Subset:    func(e *model.DailyEntry) bool { return e.StressOrNeutral() <= 2 },
		Hit:       func(e *model.DailyEntry) bool { return e.BreakTimeOr0() >= 30 },
		Threshold: 0.6,
		Message:   "Taking longer breaks seems to help reduce your stress levels. Consider incorporating more break time.",
		Category:  model.CategoryInsight,
		Priority:  model.PriorityMedium,
	},
}

// Rules returns a copy of the default insight table.
func Rules() RuleSet {
	return RuleSet{
		Thresholds: slices.Clone(defaultThresholds),
		Patterns:   slices.Clone(defaultPatterns),
	}
}

// InsightOptions tunes insight generation.
type InsightOptions struct {
	// MinEntries below which no insights are produced. Values < 1 mean DefaultMinEntries.
	MinEntries int
}

// GenerateInsights applies the default table to entries.
func GenerateInsights(entries []model.DailyEntry) []model.Insight {
	return GenerateInsightsWith(entries, Rules(), InsightOptions{})
}

// GenerateInsightsWith applies rules to entries in table order. The result
// is never nil.
func GenerateInsightsWith(entries []model.DailyEntry, rules RuleSet, opts InsightOptions) []model.Insight {
	minEntries := opts.MinEntries
	if minEntries < 1 {
		minEntries = DefaultMinEntries
	}

	insights := []model.Insight{}
	if len(entries) < minEntries {
		return insights
	}

	agg := Summarize(entries)
	for _, r := range rules.Thresholds {
		avg := r.Metric(agg)
		if !r.When(avg) {
			continue
		}
		insights = append(insights, model.Insight{
			Type:     r.Type,
			Message:  r.Message(avg),
			Category: r.Category,
			Priority: r.Priority,
		})
	}

	for _, p := range rules.Patterns {
		frac, n := p.Fraction(entries)
		if n == 0 || frac <= p.Threshold {
			continue
		}
		insights = append(insights, model.Insight{
			Type:     p.Type,
			Message:  p.Message,
			Category: p.Category,
			Priority: p.Priority,
		})
	}

	return insights
}
