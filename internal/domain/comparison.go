package domain

// PlatformPrice is one row of a cross-platform price comparison. Pointer
// fields distinguish "not sold here" from a zero value.
type PlatformPrice struct {
	Platform      string   `json:"platform"`
	ProductID     *string  `json:"product_id"`
	Title         *string  `json:"title"`
	Image         *string  `json:"image"`
	CurrentPrice  *float64 `json:"current_price"`
	OriginalPrice *float64 `json:"original_price"`
	Discount      float64  `json:"discount"`
	Rating        *float64 `json:"rating"`
	ReviewsCount  *int     `json:"reviews_count"`
	URL           *string  `json:"url"`
	Availability  bool     `json:"availability"`
}

// ComparisonResult is the best/worst-deal summary for a product across
// platforms. The summary fields are computed locally from Platforms so the
// banner always agrees with the table rows, whatever the backend claims.
type ComparisonResult struct {
	ProductName       string          `json:"product_name"`
	Platforms         []PlatformPrice `json:"platforms"`
	BestPrice         *float64        `json:"best_price"`
	BestPlatform      *string         `json:"best_platform"`
	WorstPrice        *float64        `json:"worst_price,omitempty"`
	WorstPlatform     *string         `json:"worst_platform,omitempty"`
	PriceDifference   float64         `json:"price_difference"`
	SavingsPercentage float64         `json:"savings_percentage"`
}

// CrossPlatformMatch is a lightweight pointer to the same product on
// another platform, returned by a scrape. The caller fetches the full
// record by ProductID.
type CrossPlatformMatch struct {
	Platform  string `json:"platform"`
	ProductID string `json:"product_id"`
	Title     string `json:"title,omitempty"`
	Price     string `json:"price,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ScrapeResult is the backend's response to a scrape-by-URL request. On
// success the caller must fetch the full product by ProductID.
type ScrapeResult struct {
	Success              bool                 `json:"success"`
	ProductID            string               `json:"product_id"`
	Platform             string               `json:"platform"`
	Message              string               `json:"message,omitempty"`
	CrossPlatformMatches []CrossPlatformMatch `json:"cross_platform_matches,omitempty"`
}
