package scoring

import (
	"fmt"
	"strings"

	"introscore/internal/domain"
)

// ClampScore bounds a score to [0,100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScoreCategory maps an overall score onto a performance level.
func ScoreCategory(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Very Good"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Satisfactory"
	case score >= 50:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func wordCountStatus(wordCount int, c domain.RubricCriterion) domain.WordCountStatus {
	if c.Unbounded() {
		return domain.WordCountNoLimit
	}
	switch {
	case wordCount < c.MinWords:
		return domain.WordCountTooShort
	case wordCount > c.MaxWords:
		return domain.WordCountTooLong
	default:
		return domain.WordCountWithinRange
	}
}

// formatFeedback composes a short deterministic paragraph for one criterion:
// a qualitative band, keyword coverage, semantic alignment and, when the
// criterion has real bounds, a note about length.
func formatFeedback(score float64, match domain.KeywordMatch, similarity float64, wordCount int, c domain.RubricCriterion) string {
	var parts []string

	switch {
	case score >= 90:
		parts = append(parts, "Excellent performance.")
	case score >= 75:
		parts = append(parts, "Good performance.")
	case score >= 60:
		parts = append(parts, "Satisfactory performance.")
	case score >= 40:
		parts = append(parts, "Needs improvement.")
	default:
		parts = append(parts, "Requires significant improvement.")
	}

	if len(match.Found) > 3 {
		parts = append(parts, fmt.Sprintf("Strong keyword coverage with terms like %q, %q, and %d more.",
			match.Found[0], match.Found[1], len(match.Found)-2))
	} else if len(match.Found) > 0 {
		parts = append(parts, fmt.Sprintf("Found keywords: %s.", strings.Join(match.Found, ", ")))
	}
	if n := len(match.Missing); n > 0 {
		if n <= 3 {
			parts = append(parts, fmt.Sprintf("Consider including: %s.", strings.Join(match.Missing, ", ")))
		} else {
			parts = append(parts, fmt.Sprintf("Missing %d suggested keywords.", n))
		}
	}

	switch {
	case similarity >= 0.75:
		parts = append(parts, "Strong semantic alignment with criterion.")
	case similarity >= 0.5:
		parts = append(parts, "Moderate semantic relevance.")
	default:
		parts = append(parts, "Consider addressing this aspect more directly.")
	}

	if c.MinWords > 0 && c.MaxWords < domain.MaxWordsUnbounded {
		switch {
		case wordCount < c.MinWords:
			parts = append(parts, fmt.Sprintf("Content is brief (%d words). Consider expanding (recommended: %d+ words).", wordCount, c.MinWords))
		case wordCount > c.MaxWords:
			parts = append(parts, fmt.Sprintf("Content is lengthy (%d words). Consider being more concise (recommended: under %d words).", wordCount, c.MaxWords))
		default:
			parts = append(parts, fmt.Sprintf("Good length (%d words).", wordCount))
		}
	}

	return strings.Join(parts, " ")
}
