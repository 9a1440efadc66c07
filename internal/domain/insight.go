package domain

import (
	"encoding/json"
	"fmt"
)

// Insight verdict values.
const (
	VerdictBuy   = "BUY"
	VerdictMaybe = "MAYBE"
	VerdictWait  = "WAIT"
)

// DefaultInsight is the synthesized assessment shown while the backend has
// not yet analyzed a product. The platform name feeds the explanatory text.
func DefaultInsight(platform string) Insight {
	if platform == "" {
		platform = "the platform"
	}
	return Insight{
		Insights: fmt.Sprintf(
			"This product has been scraped from %s. AI insights will be available after analyzing reviews.",
			platform,
		),
		Pros: []string{
			"Competitive pricing",
			"Available on major platforms",
			"Customer reviews available",
		},
		Cons: []string{
			"AI analysis pending",
			"Limited historical data",
		},
		Recommendation:      "This is a newly tracked product. Check back later for detailed AI-powered insights.",
		RecommendationScore: 7,
		BuyRecommendation:   VerdictMaybe,
		TargetBuyer:         "General consumers",
		KeyConsiderations:   []string{"Check product reviews", "Compare prices", "Verify specifications"},
	}
}

// Insight is the normalized AI deal assessment for a product. The backend
// emits several of its fields in either camelCase or snake_case depending
// on which service produced the payload; UnmarshalJSON accepts both, with
// the camelCase spelling winning when a payload carries both.
type Insight struct {
	Insights             string   `json:"insights"`
	Pros                 []string `json:"pros"`
	Cons                 []string `json:"cons"`
	Recommendation       string   `json:"recommendation"`
	RecommendationScore  float64  `json:"recommendationScore"`
	BuyRecommendation    string   `json:"buyRecommendation,omitempty"`
	TargetBuyer          string   `json:"targetBuyer,omitempty"`
	KeyConsiderations    []string `json:"keyConsiderations,omitempty"`
	TotalReviewsAnalyzed int      `json:"totalReviewsAnalyzed,omitempty"`
	AverageRating        float64  `json:"averageRating,omitempty"`
	AIGenerated          bool     `json:"aiGenerated"`
}

func (i *Insight) UnmarshalJSON(data []byte) error {
	var raw struct {
		Insights                  string   `json:"insights"`
		Pros                      []string `json:"pros"`
		Cons                      []string `json:"cons"`
		Recommendation            string   `json:"recommendation"`
		RecommendationScore       *float64 `json:"recommendationScore"`
		RecommendationScoreSnake  *float64 `json:"recommendation_score"`
		BuyRecommendation         string   `json:"buyRecommendation"`
		BuyRecommendationSnake    string   `json:"buy_recommendation"`
		TargetBuyer               string   `json:"targetBuyer"`
		TargetBuyerSnake          string   `json:"target_buyer"`
		KeyConsiderations         []string `json:"keyConsiderations"`
		KeyConsiderationsSnake    []string `json:"key_considerations"`
		TotalReviewsAnalyzed      *int     `json:"totalReviewsAnalyzed"`
		TotalReviewsAnalyzedSnake *int     `json:"total_reviews_analyzed"`
		AverageRating             *float64 `json:"averageRating"`
		AverageRatingSnake        *float64 `json:"average_rating"`
		AIGenerated               *bool    `json:"aiGenerated"`
		AIGeneratedSnake          *bool    `json:"ai_generated"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode insight: %w", err)
	}

	i.Insights = raw.Insights
	i.Pros = raw.Pros
	i.Cons = raw.Cons
	i.Recommendation = raw.Recommendation
	i.RecommendationScore = 7
	switch {
	case raw.RecommendationScore != nil:
		i.RecommendationScore = *raw.RecommendationScore
	case raw.RecommendationScoreSnake != nil:
		i.RecommendationScore = *raw.RecommendationScoreSnake
	}
	i.BuyRecommendation = firstNonEmpty(raw.BuyRecommendation, raw.BuyRecommendationSnake)
	i.TargetBuyer = firstNonEmpty(raw.TargetBuyer, raw.TargetBuyerSnake)
	i.KeyConsiderations = raw.KeyConsiderations
	if i.KeyConsiderations == nil {
		i.KeyConsiderations = raw.KeyConsiderationsSnake
	}
	switch {
	case raw.TotalReviewsAnalyzed != nil:
		i.TotalReviewsAnalyzed = *raw.TotalReviewsAnalyzed
	case raw.TotalReviewsAnalyzedSnake != nil:
		i.TotalReviewsAnalyzed = *raw.TotalReviewsAnalyzedSnake
	}
	switch {
	case raw.AverageRating != nil:
		i.AverageRating = *raw.AverageRating
	case raw.AverageRatingSnake != nil:
		i.AverageRating = *raw.AverageRatingSnake
	}
	i.AIGenerated = false
	switch {
	case raw.AIGenerated != nil:
		i.AIGenerated = *raw.AIGenerated
	case raw.AIGeneratedSnake != nil:
		i.AIGenerated = *raw.AIGeneratedSnake
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
