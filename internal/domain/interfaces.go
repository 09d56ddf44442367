package domain

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over a corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// SimilarityOracle maps a pair of texts to a semantic similarity in [0,1].
// Implementations must be safe for concurrent use once constructed.
type SimilarityOracle interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Scorer defines the operations exposed by the application core.
type Scorer interface {
	Score(ctx context.Context, transcript string) (*ScoreReport, error)
	BatchScore(ctx context.Context, transcripts []string) []BatchItem
	RubricInfo() RubricInfo
}
