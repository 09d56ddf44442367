package domain

// MaxWordsUnbounded is the sentinel meaning "no upper word bound".
// A criterion with MinWords == 0 and MaxWords >= MaxWordsUnbounded has no
// length requirement at all.
const MaxWordsUnbounded = 999

// RubricCriterion is a single row of the scoring rubric. Loaded once at
// startup and never mutated afterwards.
type RubricCriterion struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Weight      float64  `json:"weight"`
	MinWords    int      `json:"min_words"`
	MaxWords    int      `json:"max_words"`
}

// Unbounded reports whether the criterion carries no length requirement.
func (c RubricCriterion) Unbounded() bool {
	return c.MinWords == 0 && c.MaxWords >= MaxWordsUnbounded
}

// WordCountStatus classifies transcript length against a criterion's bounds.
type WordCountStatus string

const (
	WordCountTooShort    WordCountStatus = "too_short"
	WordCountWithinRange WordCountStatus = "within_range"
	WordCountTooLong     WordCountStatus = "too_long"
	WordCountNoLimit     WordCountStatus = "no_limit"
)

// ScoreBreakdown exposes the three sub-scores blended into a criterion score.
type ScoreBreakdown struct {
	RuleBased    float64 `json:"rule_based"`
	Semantic     float64 `json:"semantic"`
	RubricDriven float64 `json:"rubric_driven"`
}

// CriterionResult is the outcome of scoring one transcript against one
// rubric criterion. Scores are on [0,100], ratios on [0,1].
type CriterionResult struct {
	Criterion          string          `json:"criterion"`
	Score              float64         `json:"score"`
	Weight             float64         `json:"weight"`
	KeywordsFound      []string        `json:"keywords_found"`
	KeywordsMissing    []string        `json:"keywords_missing"`
	MatchRate          float64         `json:"keyword_match_rate"`
	SemanticSimilarity float64         `json:"semantic_similarity"`
	WordCountStatus    WordCountStatus `json:"word_count_status"`
	Feedback           string          `json:"feedback"`
	Breakdown          ScoreBreakdown  `json:"score_breakdown"`
}

// TextQuality holds lexical statistics for a transcript.
type TextQuality struct {
	WordCount          int     `json:"word_count"`
	SentenceCount      int     `json:"sentence_count"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	UniqueWords        int     `json:"unique_words"`
	VocabularyRichness float64 `json:"vocabulary_richness"`
}

// ScoreReport is the full result of scoring one transcript. Criteria keep
// rubric order. The report is never mutated after construction.
type ScoreReport struct {
	OverallScore  float64           `json:"overall_score"`
	ScoreCategory string            `json:"score_category"`
	WordCount     int               `json:"word_count"`
	Criteria      []CriterionResult `json:"criteria_scores"`
	TextQuality   TextQuality       `json:"text_quality"`
}

// KeywordMatch partitions a keyword list into found and missing entries,
// preserving input order.
type KeywordMatch struct {
	Found     []string `json:"found"`
	Missing   []string `json:"missing"`
	MatchRate float64  `json:"match_rate"`
}

// BatchItem pairs one transcript of a batch with its report or failure.
// Index refers to the position in the submitted batch.
type BatchItem struct {
	Index  int          `json:"index"`
	Report *ScoreReport `json:"report,omitempty"`
	Err    error        `json:"-"`
}

// CriterionSummary is the introspection view of one rubric row.
type CriterionSummary struct {
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	KeywordCount int     `json:"keyword_count"`
}

// RubricInfo is a read-only summary of the loaded rubric.
type RubricInfo struct {
	CriteriaCount int                `json:"criteria_count"`
	TotalWeight   float64            `json:"total_weight"`
	Criteria      []CriterionSummary `json:"criteria"`
}
