package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"introscore/internal/domain"
)

func TestRuleBasedScoreKeywordPresence(t *testing.T) {
	c := domain.RubricCriterion{
		Keywords: []string{"name", "school", "hobbies", "family"},
		MaxWords: domain.MaxWordsUnbounded,
	}
	// 2 of 4 keywords present, no length bounds: 70*0.5 + 30
	got := ruleBasedScore("my name is anna and i go to school", c, 9)
	assert.InDelta(t, 65.0, got, 1e-9)
}

func TestRuleBasedScoreNoKeywords(t *testing.T) {
	c := domain.RubricCriterion{MaxWords: domain.MaxWordsUnbounded}
	// neutral 35 presence default plus full 30 length credit
	assert.InDelta(t, 65.0, ruleBasedScore("anything at all", c, 3), 1e-9)
}

func TestRuleBasedScoreLengthBands(t *testing.T) {
	c := domain.RubricCriterion{
		Keywords: []string{"hello"},
		MinWords: 20,
		MaxWords: 100,
	}
	text := "hello there"

	// within range
	assert.InDelta(t, 100.0, ruleBasedScore(text, c, 50), 1e-9)
	// exactly min_words is within range, not too short
	assert.InDelta(t, 100.0, ruleBasedScore(text, c, 20), 1e-9)
	// below min: proportional credit, 10/20 of the 30 points
	assert.InDelta(t, 85.0, ruleBasedScore(text, c, 10), 1e-9)
	// above max: flat 20 regardless of overage
	assert.InDelta(t, 90.0, ruleBasedScore(text, c, 101), 1e-9)
	assert.InDelta(t, 90.0, ruleBasedScore(text, c, 5000), 1e-9)
}

func TestRuleBasedScoreZeroMinShortfallKeepsFullCredit(t *testing.T) {
	// min_words == 0 with a bounded max: the shortfall branch is unreachable
	// for non-negative counts, and the ratio guard still awards full credit.
	c := domain.RubricCriterion{Keywords: []string{"hi"}, MinWords: 0, MaxWords: 50}
	assert.InDelta(t, 100.0, ruleBasedScore("hi", c, 0), 1e-9)
}

func TestSemanticScorePiecewise(t *testing.T) {
	cases := []struct {
		sim  float64
		want float64
	}{
		{0.0, 0},
		{0.2, 20},
		{0.39, 39},
		{0.4, 40},
		{0.55, 55},
		{0.7, 70},
		{0.85, 85},
		{1.0, 100},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, semanticScore(tc.sim), 1e-9, "sim=%v", tc.sim)
	}
}

func TestRubricDrivenScoreNeutralWithoutKeywords(t *testing.T) {
	assert.InDelta(t, 50.0, rubricDrivenScore("whatever text", nil), 1e-9)
}

func TestRubricDrivenScoreCountsRepeatedOccurrences(t *testing.T) {
	// "go" occurs 3 times: density 30; 1 of 2 keywords present: coverage 25
	got := rubricDrivenScore("go go go somewhere", []string{"go", "stay"})
	assert.InDelta(t, 55.0, got, 1e-9)
}

func TestRubricDrivenScoreDensitySaturates(t *testing.T) {
	// 6 occurrences cap the density term at 50; full coverage adds 50
	got := rubricDrivenScore("ha ha ha ha ha ha", []string{"ha"})
	assert.InDelta(t, 100.0, got, 1e-9)
}
