package scoring

import (
	"context"
	"math"
	"strings"

	"introscore/internal/domain"
	"introscore/internal/matcher"
)

// Sub-score blend weights: rule-based and semantic carry 40% each, the
// keyword density/coverage score the remaining 20%.
const (
	ruleWeight     = 0.4
	semanticWeight = 0.4
	rubricWeight   = 0.2
)

func (e *Engine) scoreCriterion(ctx context.Context, transcript, transcriptLower string, wordCount int, c domain.RubricCriterion) (domain.CriterionResult, error) {
	rule := ruleBasedScore(transcriptLower, c, wordCount)

	similarity, err := e.oracle.Similarity(ctx, transcript, c.Description)
	if err != nil {
		return domain.CriterionResult{}, &domain.OracleError{Criterion: c.Name, Err: err}
	}
	semantic := semanticScore(similarity)
	rubricDriven := rubricDrivenScore(transcriptLower, c.Keywords)

	final := ClampScore(rule*ruleWeight + semantic*semanticWeight + rubricDriven*rubricWeight)

	match := matcher.Match(transcript, c.Keywords)
	status := wordCountStatus(wordCount, c)

	return domain.CriterionResult{
		Criterion:          c.Name,
		Score:              round2(final),
		Weight:             c.Weight,
		KeywordsFound:      match.Found,
		KeywordsMissing:    match.Missing,
		MatchRate:          round2(match.MatchRate),
		SemanticSimilarity: round2(similarity),
		WordCountStatus:    status,
		Feedback:           formatFeedback(final, match, similarity, wordCount, c),
		Breakdown: domain.ScoreBreakdown{
			RuleBased:    round2(rule),
			Semantic:     round2(semantic),
			RubricDriven: round2(rubricDriven),
		},
	}, nil
}

// ruleBasedScore blends keyword presence (70 points) with length compliance
// (30 points). Criteria without keywords get a neutral 35 for presence.
func ruleBasedScore(transcriptLower string, c domain.RubricCriterion, wordCount int) float64 {
	score := 0.0

	if len(c.Keywords) > 0 {
		found := 0
		for _, kw := range c.Keywords {
			if strings.Contains(transcriptLower, strings.ToLower(kw)) {
				found++
			}
		}
		score += float64(found) / float64(len(c.Keywords)) * 70
	} else {
		score += 35
	}

	switch {
	case c.Unbounded():
		score += 30
	case wordCount >= c.MinWords && wordCount <= c.MaxWords:
		score += 30
	case wordCount < c.MinWords:
		// MinWords == 0 cannot reach this branch with a non-negative word
		// count, but the ratio is still defined as 1 to mirror the original
		// division-by-zero guard.
		ratio := 1.0
		if c.MinWords > 0 {
			ratio = float64(wordCount) / float64(c.MinWords)
		}
		score += 30 * math.Min(ratio, 1.0)
	default:
		// flat verbosity penalty, independent of the overage
		score += 20
	}

	return ClampScore(score)
}

// semanticScore rescales raw similarity onto [0,100] with a piecewise-linear
// curve that rewards strong topical alignment disproportionately.
func semanticScore(similarity float64) float64 {
	var score float64
	switch {
	case similarity >= 0.7:
		score = 70 + (similarity-0.7)*100
	case similarity >= 0.4:
		score = 40 + (similarity-0.4)*100
	default:
		score = similarity * 100
	}
	return ClampScore(score)
}

// rubricDrivenScore splits 50/50 between keyword density (total occurrences,
// saturating at five hits) and keyword coverage (distinct keywords present).
func rubricDrivenScore(transcriptLower string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 50
	}
	score := 0.0

	occurrences := 0
	present := 0
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		n := strings.Count(transcriptLower, k)
		occurrences += n
		if n > 0 {
			present++
		}
	}
	if occurrences > 0 {
		score += math.Min(50, float64(occurrences)*10)
	}
	score += float64(present) / float64(len(keywords)) * 50

	return ClampScore(score)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
