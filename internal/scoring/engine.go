package scoring

import (
	"context"
	"strings"

	"introscore/internal/domain"
	"introscore/internal/textproc"
)

// Transcript validation bounds, applied to the raw input before any scoring.
const (
	MinTranscriptWords = 10
	MaxTranscriptWords = 5000
)

// Engine scores transcripts against a fixed rubric using an injected
// similarity oracle. It holds no mutable state after construction and is
// safe for concurrent use.
type Engine struct {
	rubric []domain.RubricCriterion
	oracle domain.SimilarityOracle
}

// NewEngine creates a scoring engine. The rubric slice is not copied; the
// caller must not mutate it afterwards.
func NewEngine(rubric []domain.RubricCriterion, oracle domain.SimilarityOracle) *Engine {
	return &Engine{rubric: rubric, oracle: oracle}
}

// ValidateTranscript rejects empty, too-short and too-long transcripts.
// The returned error is a ValidationError.
func ValidateTranscript(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return domain.NewValidationError("transcript is empty")
	}
	wc := len(strings.Fields(raw))
	if wc < MinTranscriptWords {
		return domain.NewValidationError("transcript too short (%d words), minimum %d words required", wc, MinTranscriptWords)
	}
	if wc > MaxTranscriptWords {
		return domain.NewValidationError("transcript too long (%d words), maximum %d words allowed", wc, MaxTranscriptWords)
	}
	return nil
}

// Score validates, normalizes and scores one transcript against every rubric
// criterion, in rubric order, and aggregates a weighted overall score.
func (e *Engine) Score(ctx context.Context, raw string) (*domain.ScoreReport, error) {
	if err := ValidateTranscript(raw); err != nil {
		return nil, err
	}

	transcript := textproc.Normalize(raw)
	transcriptLower := strings.ToLower(transcript)
	quality := textproc.AnalyzeQuality(transcript)

	results := make([]domain.CriterionResult, 0, len(e.rubric))
	scores := make([]float64, 0, len(e.rubric))
	weights := make([]float64, 0, len(e.rubric))
	for _, c := range e.rubric {
		res, err := e.scoreCriterion(ctx, transcript, transcriptLower, quality.WordCount, c)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
		scores = append(scores, res.Score)
		weights = append(weights, res.Weight)
	}

	overall := round2(WeightedAverage(scores, weights))
	return &domain.ScoreReport{
		OverallScore:  overall,
		ScoreCategory: ScoreCategory(overall),
		WordCount:     quality.WordCount,
		Criteria:      results,
		TextQuality:   quality,
	}, nil
}

// BatchScore scores transcripts independently, preserving input order.
// A failing transcript yields an item with Err set and does not abort the
// rest of the batch.
func (e *Engine) BatchScore(ctx context.Context, transcripts []string) []domain.BatchItem {
	items := make([]domain.BatchItem, 0, len(transcripts))
	for i, t := range transcripts {
		report, err := e.Score(ctx, t)
		items = append(items, domain.BatchItem{Index: i, Report: report, Err: err})
	}
	return items
}

// RubricInfo returns a read-only summary of the loaded rubric.
func (e *Engine) RubricInfo() domain.RubricInfo {
	info := domain.RubricInfo{
		CriteriaCount: len(e.rubric),
		Criteria:      make([]domain.CriterionSummary, 0, len(e.rubric)),
	}
	for _, c := range e.rubric {
		info.TotalWeight += c.Weight
		info.Criteria = append(info.Criteria, domain.CriterionSummary{
			Name:         c.Name,
			Weight:       c.Weight,
			KeywordCount: len(c.Keywords),
		})
	}
	return info
}

// WeightedAverage computes the weight-normalized mean of scores. It returns
// 0 when the slices are empty, mismatched or the total weight is zero.
func WeightedAverage(scores, weights []float64) float64 {
	if len(scores) == 0 || len(scores) != len(weights) {
		return 0
	}
	totalWeight := 0.0
	weightedSum := 0.0
	for i, s := range scores {
		weightedSum += s * weights[i]
		totalWeight += weights[i]
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}
