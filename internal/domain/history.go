package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// HistoryRecord is one dated set of platform quotes from the backend's
// price-history endpoint. The wire shape varies: either a flat wide record
// {date, amazon, flipkart, myntra, meesho} or a narrow record
// {date, platform, price}. UnmarshalJSON folds both into the wide form.
type HistoryRecord struct {
	Date   time.Time
	Prices map[Platform]float64
}

func (h *HistoryRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date     string  `json:"date"`
		Platform string  `json:"platform"`
		Price    float64 `json:"price"`
		Amazon   float64 `json:"amazon"`
		Flipkart float64 `json:"flipkart"`
		Myntra   float64 `json:"myntra"`
		Meesho   float64 `json:"meesho"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode history record: %w", err)
	}

	date, err := parseHistoryDate(raw.Date)
	if err != nil {
		return err
	}
	h.Date = date
	h.Prices = make(map[Platform]float64, 4)

	if raw.Platform != "" {
		if p, ok := ParsePlatform(raw.Platform); ok && raw.Price > 0 {
			h.Prices[p] = raw.Price
		}
		return nil
	}
	for p, price := range map[Platform]float64{
		PlatformAmazon:   raw.Amazon,
		PlatformFlipkart: raw.Flipkart,
		PlatformMyntra:   raw.Myntra,
		PlatformMeesho:   raw.Meesho,
	} {
		if price > 0 {
			h.Prices[p] = price
		}
	}
	return nil
}

func parseHistoryDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("history record has no date")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized history date %q", s)
}

// PricePoint is one chart sample. Prices are pointers so platforms with no
// recorded quote serialize as null, which the chart renders as a gap
// rather than zero.
type PricePoint struct {
	Label  string
	Prices map[Platform]*float64
}

// MarshalJSON flattens the point into {"date": label, "amazon": ..., ...}
// with every chart platform present.
func (p PricePoint) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(ChartPlatforms())+1)
	out["date"] = p.Label
	for _, plat := range ChartPlatforms() {
		out[string(plat)] = p.Prices[plat]
	}
	return json.Marshal(out)
}

// PriceHistory holds the three chart projections of a product's history.
type PriceHistory struct {
	Daily   []PricePoint `json:"daily"`
	Monthly []PricePoint `json:"monthly"`
	Yearly  []PricePoint `json:"yearly"`
}

// HistoryResponse is the backend's price-history payload.
type HistoryResponse struct {
	History []HistoryRecord `json:"history"`
	Stats   *BackendStats   `json:"stats,omitempty"`
}

// BackendStats is the backend's own price summary. It is used only as a
// fallback when no positive-priced quote survives local filtering.
type BackendStats struct {
	CurrentPrice        float64 `json:"current_price"`
	Lowest              float64 `json:"lowest_price"`
	Highest             float64 `json:"highest_price"`
	Average             float64 `json:"average_price"`
	PriceDropPercentage float64 `json:"price_drop_percentage"`
}
