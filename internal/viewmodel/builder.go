// Package viewmodel turns raw backend product records into the canonical
// display model. The transformation is pure: enrichments are optional
// inputs, never errors, and the only failure mode is a record with no
// resolvable identifier.
package viewmodel

import (
	"sort"
	"strconv"
	"strings"

	"github.com/darksuryansh/PricePilot/internal/domain"
)

// Enrichments are the optional annotations fetched alongside a product.
// A nil field means "not available yet"; the builder substitutes the
// documented default for each.
type Enrichments struct {
	History   *domain.HistoryResponse
	Insight   *domain.Insight
	Sentiment *domain.Sentiment
}

// Build produces the display model for a raw product and whatever
// enrichments arrived. It fails only when the record has no identifier.
func Build(raw *domain.RawProduct, enr Enrichments) (*domain.DisplayProduct, error) {
	id, err := raw.ResolveID()
	if err != nil {
		return nil, err
	}

	dp := &domain.DisplayProduct{
		ID:          id,
		Name:        raw.ResolveName(),
		Description: raw.ResolveDescription(),
		Image:       raw.ResolveImage(),
		Platforms:   buildPlatforms(raw),
		Features:    buildFeatures(raw),
		History:     buildHistory(raw, enr.History),
		Sentiment:   enr.Sentiment,
	}
	if enr.Insight != nil {
		dp.Insight = *enr.Insight
	} else {
		dp.Insight = domain.DefaultInsight(raw.Platform)
	}
	return dp, nil
}

// buildPlatforms starts every known platform at unavailable and overlays
// the primary record, then each cross-platform match. Later entries for
// the same platform overwrite earlier ones; the builder does not reconcile
// duplicate scrapes. Unknown platform names are dropped.
func buildPlatforms(raw *domain.RawProduct) map[domain.Platform]domain.PlatformEntry {
	platforms := make(map[domain.Platform]domain.PlatformEntry, len(domain.KnownPlatforms()))
	for _, p := range domain.KnownPlatforms() {
		platforms[p] = domain.UnavailableEntry()
	}

	overlay := func(rec *domain.RawProduct) {
		p, ok := domain.ParsePlatform(rec.Platform)
		if !ok {
			return
		}
		original := rec.OriginalPrice
		if original == 0 {
			original = rec.CurrentPrice
		}
		link := rec.URL
		if link == "" {
			link = "#"
		}
		platforms[p] = domain.PlatformEntry{
			Price:         rec.CurrentPrice,
			OriginalPrice: original,
			Rating:        rec.Rating,
			Reviews:       rec.ReviewsCount,
			Link:          link,
			Availability:  true,
		}
	}

	overlay(raw)
	for i := range raw.CrossPlatform {
		overlay(&raw.CrossPlatform[i])
	}
	return platforms
}

// buildFeatures derives the display feature list: the features array wins,
// then the specifications map, then a synthesized fallback so the panel is
// never empty.
func buildFeatures(raw *domain.RawProduct) []domain.Feature {
	if len(raw.Features) > 0 {
		return raw.Features
	}

	if len(raw.Specifications) > 0 {
		keys := make([]string, 0, len(raw.Specifications))
		for k := range raw.Specifications {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		features := make([]domain.Feature, 0, len(keys))
		for _, k := range keys {
			features = append(features, domain.Feature{Name: k, Value: domain.Stringify(raw.Specifications[k])})
		}
		return features
	}

	platform := raw.Platform
	if platform == "" {
		platform = "Unknown"
	}
	rating := "N/A"
	if raw.Rating > 0 {
		rating = strconv.FormatFloat(raw.Rating, 'f', -1, 64) + "/5"
	}
	return []domain.Feature{
		{Name: "Platform", Value: platform},
		{Name: "Price", Value: "₹" + formatPrice(raw.CurrentPrice)},
		{Name: "Rating", Value: rating},
		{Name: "Availability", Value: "In Stock"},
	}
}

// formatPrice renders a rupee amount with thousands separators, dropping
// fractional paise when the amount is whole.
func formatPrice(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
