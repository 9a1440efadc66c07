package domain

import "strings"

// Platform identifies one of the supported e-commerce sources.
type Platform string

// The closed set of supported platforms. Payloads naming anything else are
// dropped, not stored.
const (
	PlatformAmazon   Platform = "amazon"
	PlatformFlipkart Platform = "flipkart"
	PlatformMyntra   Platform = "myntra"
	PlatformMeesho   Platform = "meesho"
)

// KnownPlatforms returns all supported platforms in display order.
func KnownPlatforms() []Platform {
	return []Platform{PlatformAmazon, PlatformFlipkart, PlatformMyntra, PlatformMeesho}
}

// ChartPlatforms returns the subset of platforms plotted in price-history
// charts. Meesho quotes appear in the comparison table but not the chart.
func ChartPlatforms() []Platform {
	return []Platform{PlatformAmazon, PlatformFlipkart, PlatformMyntra}
}

// ParsePlatform normalizes a backend platform tag to a known Platform.
// The second return value is false for unknown or empty names.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformAmazon:
		return PlatformAmazon, true
	case PlatformFlipkart:
		return PlatformFlipkart, true
	case PlatformMyntra:
		return PlatformMyntra, true
	case PlatformMeesho:
		return PlatformMeesho, true
	default:
		return "", false
	}
}
