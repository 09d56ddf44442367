package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"introscore/internal/domain"
)

type oracleFunc func(a, b string) (float64, error)

func (f oracleFunc) Similarity(_ context.Context, a, b string) (float64, error) { return f(a, b) }

func fixedOracle(sim float64) domain.SimilarityOracle {
	return oracleFunc(func(_, _ string) (float64, error) { return sim, nil })
}

func testRubric() []domain.RubricCriterion {
	return []domain.RubricCriterion{
		{
			Name:        "Salutation",
			Description: "Quality of greeting at the beginning",
			Keywords:    []string{"hello", "hi", "good morning"},
			Weight:      5,
			MinWords:    1,
			MaxWords:    20,
		},
		{
			Name:        "Key Information",
			Description: "Presence of name, school and interests",
			Keywords:    []string{"name", "school", "hobbies"},
			Weight:      30,
			MinWords:    20,
			MaxWords:    150,
		},
		{
			Name:        "Engagement",
			Description: "Enthusiasm and confidence",
			Weight:      15,
			MinWords:    0,
			MaxWords:    domain.MaxWordsUnbounded,
		},
	}
}

func TestScoreShortIntroStaysBelowGood(t *testing.T) {
	rubric := []domain.RubricCriterion{{
		Name:        "Overall Impression",
		Description: "General quality of the introduction",
		Weight:      1,
		MaxWords:    domain.MaxWordsUnbounded,
	}}
	engine := NewEngine(rubric, fixedOracle(0.5))

	report, err := engine.Score(context.Background(), "Hi. I'm John. I studied computer science. Looking for a job.")
	require.NoError(t, err)

	// rule 65 (neutral presence + no-limit credit), semantic 50, rubric 50
	assert.InDelta(t, 56.0, report.OverallScore, 1e-9)
	assert.Less(t, report.OverallScore, 70.0)
	assert.Equal(t, "Fair", report.ScoreCategory)
}

func TestScoreValidation(t *testing.T) {
	engine := NewEngine(testRubric(), fixedOracle(0.5))
	ctx := context.Background()

	_, err := engine.Score(ctx, "   ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "empty")

	_, err = engine.Score(ctx, "way too short")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "too short")

	long := strings.Repeat("word ", MaxTranscriptWords+1)
	_, err = engine.Score(ctx, long)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "too long")
}

func TestScoreFullPipeline(t *testing.T) {
	engine := NewEngine(testRubric(), fixedOracle(0.8))
	transcript := "Hello everyone, my name is Anna. I go to Lincoln school and my hobbies " +
		"are painting and chess. I really enjoy meeting new people and learning new things."

	report, err := engine.Score(context.Background(), transcript)
	require.NoError(t, err)
	require.Len(t, report.Criteria, 3)

	// criteria preserve rubric order
	assert.Equal(t, "Salutation", report.Criteria[0].Criterion)
	assert.Equal(t, "Key Information", report.Criteria[1].Criterion)
	assert.Equal(t, "Engagement", report.Criteria[2].Criterion)

	for _, c := range report.Criteria {
		assert.GreaterOrEqual(t, c.Score, 0.0)
		assert.LessOrEqual(t, c.Score, 100.0)
		assert.GreaterOrEqual(t, c.MatchRate, 0.0)
		assert.LessOrEqual(t, c.MatchRate, 1.0)
		for _, sub := range []float64{c.Breakdown.RuleBased, c.Breakdown.Semantic, c.Breakdown.RubricDriven} {
			assert.GreaterOrEqual(t, sub, 0.0)
			assert.LessOrEqual(t, sub, 100.0)
		}
	}

	ki := report.Criteria[1]
	assert.ElementsMatch(t, []string{"name", "school", "hobbies"}, ki.KeywordsFound)
	assert.InDelta(t, 1.0, ki.MatchRate, 1e-9)
	assert.Equal(t, domain.WordCountWithinRange, ki.WordCountStatus)

	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 100.0)
	assert.Equal(t, report.TextQuality.WordCount, report.WordCount)
}

func TestScoreIsIdempotent(t *testing.T) {
	engine := NewEngine(testRubric(), fixedOracle(0.63))
	transcript := "Good morning, my name is Ben and I am twelve years old and I love football."

	first, err := engine.Score(context.Background(), transcript)
	require.NoError(t, err)
	second, err := engine.Score(context.Background(), transcript)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreEmptyRubricYieldsZeroOverall(t *testing.T) {
	engine := NewEngine(nil, fixedOracle(0.9))
	report, err := engine.Score(context.Background(), "one two three four five six seven eight nine ten")
	require.NoError(t, err)
	assert.Zero(t, report.OverallScore)
	assert.Empty(t, report.Criteria)
}

func TestScoreOracleErrorPropagates(t *testing.T) {
	boom := errors.New("model unavailable")
	engine := NewEngine(testRubric(), oracleFunc(func(_, _ string) (float64, error) { return 0, boom }))

	_, err := engine.Score(context.Background(), "one two three four five six seven eight nine ten")
	require.Error(t, err)
	var oe *domain.OracleError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "Salutation", oe.Criterion)
	assert.ErrorIs(t, err, boom)
}

func TestBatchScoreIsolatesFailures(t *testing.T) {
	engine := NewEngine(testRubric(), fixedOracle(0.5))
	items := engine.BatchScore(context.Background(), []string{
		"too short",
		"Hello my name is Maya, I study at Rose Valley school and I love reading adventure books.",
		"",
	})

	require.Len(t, items, 3)
	assert.Equal(t, 0, items[0].Index)
	assert.Error(t, items[0].Err)
	assert.Nil(t, items[0].Report)

	assert.Equal(t, 1, items[1].Index)
	require.NoError(t, items[1].Err)
	require.NotNil(t, items[1].Report)
	assert.Greater(t, items[1].Report.OverallScore, 0.0)

	assert.Equal(t, 2, items[2].Index)
	assert.Error(t, items[2].Err)
}

func TestRubricInfo(t *testing.T) {
	engine := NewEngine(testRubric(), fixedOracle(0.5))
	info := engine.RubricInfo()

	assert.Equal(t, 3, info.CriteriaCount)
	assert.InDelta(t, 50.0, info.TotalWeight, 1e-9)
	require.Len(t, info.Criteria, 3)
	assert.Equal(t, "Salutation", info.Criteria[0].Name)
	assert.Equal(t, 3, info.Criteria[0].KeywordCount)
	assert.Equal(t, 0, info.Criteria[2].KeywordCount)
}

func TestWeightedAverageOrderIndependent(t *testing.T) {
	scores := []float64{80, 60, 90, 40}
	weights := []float64{5, 30, 10, 15}
	base := WeightedAverage(scores, weights)

	permScores := []float64{40, 90, 80, 60}
	permWeights := []float64{15, 10, 5, 30}
	assert.InDelta(t, base, WeightedAverage(permScores, permWeights), 1e-9)
}

func TestWeightedAverageDegenerateInputs(t *testing.T) {
	assert.Zero(t, WeightedAverage(nil, nil))
	assert.Zero(t, WeightedAverage([]float64{50}, []float64{0}))
	assert.Zero(t, WeightedAverage([]float64{50, 60}, []float64{1}))
}
