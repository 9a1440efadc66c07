package viewmodel

import (
	"github.com/darksuryansh/PricePilot/internal/domain"
)

// buildHistory projects the backend's history series into the three chart
// granularities: daily keeps the last 7 records, monthly the last 30,
// yearly all of them. When no history exists a single synthesized point is
// built from the current prices of the primary record and its matches, so
// the chart always has at least one point.
func buildHistory(raw *domain.RawProduct, resp *domain.HistoryResponse) domain.PriceHistory {
	if resp == nil || len(resp.History) == 0 {
		return fallbackHistory(raw)
	}

	records := resp.History
	return domain.PriceHistory{
		Daily:   project(tail(records, 7), dayLabel),
		Monthly: project(tail(records, 30), dayLabel),
		Yearly:  project(records, monthLabel),
	}
}

func tail(records []domain.HistoryRecord, n int) []domain.HistoryRecord {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

func dayLabel(rec domain.HistoryRecord) string   { return rec.Date.Format("Jan 2") }
func monthLabel(rec domain.HistoryRecord) string { return rec.Date.Format("Jan") }

func project(records []domain.HistoryRecord, label func(domain.HistoryRecord) string) []domain.PricePoint {
	points := make([]domain.PricePoint, 0, len(records))
	for _, rec := range records {
		prices := make(map[domain.Platform]*float64, len(domain.ChartPlatforms()))
		for _, p := range domain.ChartPlatforms() {
			// Zero means no recorded quote: the chart shows a gap, not a
			// free product.
			if price, ok := rec.Prices[p]; ok && price > 0 {
				v := price
				prices[p] = &v
			}
		}
		points = append(points, domain.PricePoint{Label: label(rec), Prices: prices})
	}
	return points
}

func fallbackHistory(raw *domain.RawProduct) domain.PriceHistory {
	prices := make(map[domain.Platform]*float64)
	add := func(rec *domain.RawProduct) {
		p, ok := domain.ParsePlatform(rec.Platform)
		if !ok || rec.CurrentPrice <= 0 {
			return
		}
		v := rec.CurrentPrice
		prices[p] = &v
	}
	add(raw)
	for i := range raw.CrossPlatform {
		add(&raw.CrossPlatform[i])
	}

	point := func(label string) []domain.PricePoint {
		return []domain.PricePoint{{Label: label, Prices: prices}}
	}
	return domain.PriceHistory{
		Daily:   point("Today"),
		Monthly: point("This Month"),
		Yearly:  point("This Year"),
	}
}
