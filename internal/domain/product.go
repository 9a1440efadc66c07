package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	apperrors "github.com/darksuryansh/PricePilot/pkg/errors"
)

// PlaceholderImage is rendered whenever a payload carries no usable image.
// The UI must never show a broken image.
const PlaceholderImage = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500"

// Fallback display strings for payloads missing the corresponding field.
const (
	FallbackName        = "Product Name Not Available"
	FallbackDescription = "No description available"
)

// RawProduct is a product record exactly as the backend ships it. Scraper
// sources disagree on field names, so several concepts appear under more
// than one key; the Resolve* methods implement the documented candidate
// order for each.
type RawProduct struct {
	MongoID            string         `json:"_id,omitempty"`
	ASIN               string         `json:"asin,omitempty"`
	ProductID          string         `json:"product_id,omitempty"`
	Name               string         `json:"name,omitempty"`
	Title              string         `json:"title,omitempty"`
	Description        string         `json:"description,omitempty"`
	ProductDescription string         `json:"product_description,omitempty"`
	Image              string         `json:"image,omitempty"`
	ImageURL           string         `json:"image_url,omitempty"`
	Images             []string       `json:"images,omitempty"`
	CurrentPrice       float64        `json:"current_price,omitempty"`
	OriginalPrice      float64        `json:"original_price,omitempty"`
	Rating             float64        `json:"rating,omitempty"`
	ReviewsCount       int            `json:"reviews_count,omitempty"`
	Platform           string         `json:"platform,omitempty"`
	URL                string         `json:"url,omitempty"`
	Features           FeatureList    `json:"features,omitempty"`
	Specifications     map[string]any `json:"specifications,omitempty"`
	ScrapedAt          string         `json:"scraped_at,omitempty"`
	CrossPlatform      []RawProduct   `json:"cross_platform_products,omitempty"`
}

// ResolveID returns the primary identifier: first non-empty of asin,
// product_id, _id. It is the merge key for cross-platform matching and all
// enrichment fetches, so an unresolvable record is a hard error.
func (p *RawProduct) ResolveID() (string, error) {
	for _, id := range []string{p.ASIN, p.ProductID, p.MongoID} {
		if id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("product record has no identifier: %w", apperrors.ErrInvalidInput)
}

// ResolveName returns the display name, preferring name over title.
func (p *RawProduct) ResolveName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Title != "" {
		return p.Title
	}
	return FallbackName
}

// ResolveDescription returns the display description.
func (p *RawProduct) ResolveDescription() string {
	if p.Description != "" {
		return p.Description
	}
	if p.ProductDescription != "" {
		return p.ProductDescription
	}
	return FallbackDescription
}

// ResolveImage returns the first usable image URL: image, image_url, the
// first non-empty entry of images, else the fixed placeholder.
func (p *RawProduct) ResolveImage() string {
	if p.Image != "" {
		return p.Image
	}
	if p.ImageURL != "" {
		return p.ImageURL
	}
	for _, img := range p.Images {
		if img != "" {
			return img
		}
	}
	return PlaceholderImage
}

// Feature is a single name/value display attribute.
type Feature struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FeatureList normalizes the backend's features array, whose entries are
// either already {name, value} shaped or single-key objects {K: V}.
type FeatureList []Feature

// UnmarshalJSON accepts both entry shapes. Single-key objects become
// {name: K, value: V}; multi-key objects without name/value take their
// first key in sorted order so the result is deterministic.
func (fl *FeatureList) UnmarshalJSON(data []byte) error {
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decode features: %w", err)
	}

	features := make([]Feature, 0, len(entries))
	for _, entry := range entries {
		if len(entry) == 0 {
			continue
		}
		name, hasName := entry["name"].(string)
		if hasName {
			features = append(features, Feature{Name: name, Value: Stringify(entry["value"])})
			continue
		}
		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		k := keys[0]
		features = append(features, Feature{Name: k, Value: Stringify(entry[k])})
	}

	*fl = features
	return nil
}

// Stringify renders an arbitrary JSON value as a display string. Numbers
// lose their trailing ".0" so integer-valued floats read naturally.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// PlatformEntry is a normalized per-platform quote on the product page.
type PlatformEntry struct {
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	Link          string  `json:"link"`
	Availability  bool    `json:"availability"`
}

// UnavailableEntry is the default quote for platforms the product was not
// found on.
func UnavailableEntry() PlatformEntry {
	return PlatformEntry{Link: "#"}
}

// DisplayProduct is the canonical view model consumed by presentation. All
// four platform keys are always present; unknown prices are zero with
// availability false.
type DisplayProduct struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Image       string                     `json:"image"`
	Platforms   map[Platform]PlatformEntry `json:"platforms"`
	Features    []Feature                  `json:"features"`
	Insight     Insight                    `json:"ai_insights"`
	History     PriceHistory               `json:"price_history"`
	Sentiment   *Sentiment                 `json:"sentiment,omitempty"`
}

// PriceStats summarizes the per-platform quotes of a DisplayProduct. It is
// derived on demand, never stored.
type PriceStats struct {
	Lowest          float64  `json:"lowest_price"`
	LowestPlatform  Platform `json:"lowest_platform"`
	Highest         float64  `json:"highest_price"`
	HighestPlatform Platform `json:"highest_platform"`
	Average         float64  `json:"average_price"`
}
