package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"introscore/internal/domain"
	"introscore/internal/embedding/tfidf"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	// negative similarity is clamped to 0
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	// zero vectors never divide by zero
	assert.Zero(t, Cosine([]float64{0, 0}, []float64{1, 1}))
	assert.Zero(t, Cosine(nil, nil))
}

func newTFIDFOracle() *PairwiseOracle {
	return NewPairwiseOracle(func() domain.Embedder { return tfidf.NewEmbedder() })
}

func TestPairwiseOracleIdenticalTexts(t *testing.T) {
	o := newTFIDFOracle()
	sim, err := o.Similarity(context.Background(),
		"my favorite subject is mathematics",
		"my favorite subject is mathematics")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestPairwiseOracleBounds(t *testing.T) {
	o := newTFIDFOracle()
	pairs := [][2]string{
		{"I enjoy playing football every weekend", "quality of greeting at the beginning"},
		{"hello good morning everyone", "greeting quality hello morning"},
		{"completely unrelated words here", "astronomy telescope galaxy nebula"},
	}
	for _, p := range pairs {
		sim, err := o.Similarity(context.Background(), p[0], p[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sim, 0.0)
		assert.LessOrEqual(t, sim, 1.0)
	}
}

func TestPairwiseOracleDeterministic(t *testing.T) {
	o := newTFIDFOracle()
	a := "hello my name is Sam and I love drawing"
	b := "presence of name and hobbies"
	first, err := o.Similarity(context.Background(), a, b)
	require.NoError(t, err)
	second, err := o.Similarity(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProbe(t *testing.T) {
	require.NoError(t, Probe(context.Background(), newTFIDFOracle()))
}
