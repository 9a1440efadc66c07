package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightUnmarshalCamelCaseWins(t *testing.T) {
	payload := `{
		"recommendation_score": 5,
		"recommendationScore": 9,
		"buy_recommendation": "WAIT",
		"buyRecommendation": "BUY",
		"target_buyer": "snake",
		"targetBuyer": "camel",
		"average_rating": 3.8,
		"averageRating": 4.2,
		"ai_generated": false,
		"aiGenerated": true
	}`
	var ins Insight
	require.NoError(t, json.Unmarshal([]byte(payload), &ins))
	assert.Equal(t, 9.0, ins.RecommendationScore)
	assert.Equal(t, VerdictBuy, ins.BuyRecommendation)
	assert.Equal(t, "camel", ins.TargetBuyer)
	assert.Equal(t, 4.2, ins.AverageRating)
	assert.True(t, ins.AIGenerated)
}

func TestInsightUnmarshalSnakeCaseFallback(t *testing.T) {
	payload := `{
		"recommendation_score": 4,
		"buy_recommendation": "WAIT",
		"key_considerations": ["warranty"],
		"total_reviews_analyzed": 120
	}`
	var ins Insight
	require.NoError(t, json.Unmarshal([]byte(payload), &ins))
	assert.Equal(t, 4.0, ins.RecommendationScore)
	assert.Equal(t, VerdictWait, ins.BuyRecommendation)
	assert.Equal(t, []string{"warranty"}, ins.KeyConsiderations)
	assert.Equal(t, 120, ins.TotalReviewsAnalyzed)
}

func TestInsightUnmarshalMissingScoreDefaultsToSeven(t *testing.T) {
	var ins Insight
	require.NoError(t, json.Unmarshal([]byte(`{"insights": "good product"}`), &ins))
	assert.Equal(t, 7.0, ins.RecommendationScore)
	assert.Equal(t, "good product", ins.Insights)
}

func TestInsightUnmarshalZeroScoreIsMeaningful(t *testing.T) {
	// An explicit zero must not fall through to the default score.
	var ins Insight
	require.NoError(t, json.Unmarshal([]byte(`{"recommendationScore": 0}`), &ins))
	assert.Equal(t, 0.0, ins.RecommendationScore)
}

func TestDefaultInsight(t *testing.T) {
	ins := DefaultInsight("amazon")
	assert.Equal(t, 7.0, ins.RecommendationScore)
	assert.Equal(t, VerdictMaybe, ins.BuyRecommendation)
	assert.Contains(t, ins.Insights, "amazon")
	assert.NotEmpty(t, ins.Pros)
	assert.NotEmpty(t, ins.Cons)
	assert.False(t, ins.AIGenerated)

	assert.Contains(t, DefaultInsight("").Insights, "the platform")
}
