// Package compare computes the best-deal summary for a set of live
// per-platform quotes. The summary is always derived from the rows it is
// shown next to; the backend's own best/worst fields are ignored.
package compare

import (
	"github.com/shopspring/decimal"

	"github.com/darksuryansh/PricePilot/internal/domain"
)

// Aggregate fills the summary fields of a comparison from its platform
// rows. Only available rows with a positive price participate; when none
// qualify the best/worst fields stay nil and no savings are reported. Ties
// go to the earlier row.
func Aggregate(productName string, platforms []domain.PlatformPrice) domain.ComparisonResult {
	result := domain.ComparisonResult{
		ProductName: productName,
		Platforms:   platforms,
	}

	var best, worst *domain.PlatformPrice
	for i := range platforms {
		p := &platforms[i]
		if !p.Availability || p.CurrentPrice == nil || *p.CurrentPrice <= 0 {
			continue
		}
		if best == nil || *p.CurrentPrice < *best.CurrentPrice {
			best = p
		}
		if worst == nil || *p.CurrentPrice > *worst.CurrentPrice {
			worst = p
		}
	}
	if best == nil {
		return result
	}

	bestPrice, worstPrice := *best.CurrentPrice, *worst.CurrentPrice
	result.BestPrice = &bestPrice
	result.BestPlatform = &best.Platform
	result.WorstPrice = &worstPrice
	result.WorstPlatform = &worst.Platform
	result.PriceDifference = worstPrice - bestPrice

	if worstPrice > bestPrice {
		savings, _ := decimal.NewFromFloat(result.PriceDifference).
			Div(decimal.NewFromFloat(worstPrice)).
			Mul(decimal.NewFromInt(100)).
			Round(0).
			Float64()
		result.SavingsPercentage = savings
	}
	return result
}
