package oracle

import (
	"context"
	"fmt"
	"math"

	"introscore/internal/domain"
)

// EmbedderOracle computes semantic similarity as the cosine of the two
// embedding vectors produced by a shared Embedder. Suitable for embedders
// that need no per-call preparation (remote APIs, pre-prepared vocabularies).
type EmbedderOracle struct {
	embedder domain.Embedder
}

// NewEmbedderOracle wraps an embedder into a similarity oracle.
func NewEmbedderOracle(embedder domain.Embedder) *EmbedderOracle {
	return &EmbedderOracle{embedder: embedder}
}

// Similarity embeds both texts and returns their cosine similarity in [0,1].
func (o *EmbedderOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := o.embedder.Embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embed first text: %w", err)
	}
	vb, err := o.embedder.Embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embed second text: %w", err)
	}
	return Cosine(va, vb), nil
}

// PairwiseOracle builds a fresh embedder per call and prepares it on exactly
// the two texts being compared. The per-call embedder makes the oracle pure
// and safe for concurrent use, and identical inputs always map to the same
// vector, so their similarity is 1.
type PairwiseOracle struct {
	factory func() domain.Embedder
}

// NewPairwiseOracle creates an oracle backed by the given embedder factory.
func NewPairwiseOracle(factory func() domain.Embedder) *PairwiseOracle {
	return &PairwiseOracle{factory: factory}
}

// Similarity prepares a throwaway embedder on {a, b} and returns the cosine
// similarity of the resulting vectors, clamped to [0,1].
func (o *PairwiseOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	emb := o.factory()
	if err := emb.Prepare([]string{a, b}); err != nil {
		return 0, fmt.Errorf("prepare embedder: %w", err)
	}
	va, err := emb.Embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embed first text: %w", err)
	}
	vb, err := emb.Embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embed second text: %w", err)
	}
	return Cosine(va, vb), nil
}

// Probe runs one similarity computation so a broken oracle fails at startup
// instead of at the first scoring request.
func Probe(ctx context.Context, o domain.SimilarityOracle) error {
	if _, err := o.Similarity(ctx, "introduction readiness check", "introduction readiness check"); err != nil {
		return fmt.Errorf("oracle probe: %w", err)
	}
	return nil
}

// Cosine returns the cosine similarity of two vectors clamped to [0,1].
// Zero-length or zero-norm vectors yield 0.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	dot, na, nb := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
