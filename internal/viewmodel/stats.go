package viewmodel

import (
	"github.com/shopspring/decimal"

	"github.com/darksuryansh/PricePilot/internal/domain"
)

// RatingSummary is the reviews-weighted aggregate rating shown on the
// product page.
type RatingSummary struct {
	Average      float64 `json:"average"`
	TotalReviews int     `json:"total_reviews"`
}

// Stats summarizes per-platform quotes. Only positive prices count; when
// no platform has one, the raw record's own price and platform stand in so
// a product with data never reports a zero average.
func Stats(dp *domain.DisplayProduct, raw *domain.RawProduct) domain.PriceStats {
	type quote struct {
		platform domain.Platform
		price    float64
	}
	var quotes []quote
	for _, p := range domain.KnownPlatforms() {
		if entry := dp.Platforms[p]; entry.Price > 0 {
			quotes = append(quotes, quote{p, entry.Price})
		}
	}

	if len(quotes) == 0 {
		// Unrecognized source tags still show up in the stats banner as-is.
		fallbackPlatform, ok := domain.ParsePlatform(raw.Platform)
		if !ok {
			fallbackPlatform = domain.Platform(raw.Platform)
		}
		return domain.PriceStats{
			Lowest:          raw.CurrentPrice,
			LowestPlatform:  fallbackPlatform,
			Highest:         raw.CurrentPrice,
			HighestPlatform: fallbackPlatform,
			Average:         raw.CurrentPrice,
		}
	}

	lowest, highest := quotes[0], quotes[0]
	sum := decimal.Zero
	for _, q := range quotes {
		if q.price < lowest.price {
			lowest = q
		}
		if q.price > highest.price {
			highest = q
		}
		sum = sum.Add(decimal.NewFromFloat(q.price))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(quotes)))).Round(0).Float64()

	return domain.PriceStats{
		Lowest:          lowest.price,
		LowestPlatform:  lowest.platform,
		Highest:         highest.price,
		HighestPlatform: highest.platform,
		Average:         avg,
	}
}

// AggregateRating computes the reviews-weighted mean rating across
// platforms with both a rating and reviews, rounded to one decimal. It
// falls back to the raw record's own rating and review count when no
// platform qualifies.
func AggregateRating(dp *domain.DisplayProduct, raw *domain.RawProduct) RatingSummary {
	weighted := decimal.Zero
	totalReviews := 0
	for _, p := range domain.KnownPlatforms() {
		entry := dp.Platforms[p]
		if entry.Rating > 0 && entry.Reviews > 0 {
			weighted = weighted.Add(decimal.NewFromFloat(entry.Rating).Mul(decimal.NewFromInt(int64(entry.Reviews))))
			totalReviews += entry.Reviews
		}
	}

	if totalReviews == 0 {
		avg, _ := decimal.NewFromFloat(raw.Rating).Round(1).Float64()
		return RatingSummary{Average: avg, TotalReviews: raw.ReviewsCount}
	}

	avg, _ := weighted.Div(decimal.NewFromInt(int64(totalReviews))).Round(1).Float64()
	return RatingSummary{Average: avg, TotalReviews: totalReviews}
}
