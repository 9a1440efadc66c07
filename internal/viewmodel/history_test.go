package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darksuryansh/PricePilot/internal/domain"
)

func historyOf(days int) *domain.HistoryResponse {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	records := make([]domain.HistoryRecord, 0, days)
	for i := 0; i < days; i++ {
		records = append(records, domain.HistoryRecord{
			Date:   start.AddDate(0, 0, i),
			Prices: map[domain.Platform]float64{domain.PlatformAmazon: 1000 + float64(i)},
		})
	}
	return &domain.HistoryResponse{History: records}
}

func TestBuildHistoryProjections(t *testing.T) {
	dp, err := Build(baseProduct(), Enrichments{History: historyOf(40)})
	require.NoError(t, err)

	assert.Len(t, dp.History.Daily, 7)
	assert.Len(t, dp.History.Monthly, 30)
	assert.Len(t, dp.History.Yearly, 40)

	// Daily keeps the last 7 records, labeled "Jan 2" style.
	last := dp.History.Daily[6]
	assert.Equal(t, "Aug 9", last.Label)
	require.NotNil(t, last.Prices[domain.PlatformAmazon])
	assert.Equal(t, 1039.0, *last.Prices[domain.PlatformAmazon])

	// Yearly labels are month-only.
	assert.Equal(t, "Jul", dp.History.Yearly[0].Label)
}

func TestBuildHistoryShortSeries(t *testing.T) {
	dp, err := Build(baseProduct(), Enrichments{History: historyOf(3)})
	require.NoError(t, err)
	assert.Len(t, dp.History.Daily, 3)
	assert.Len(t, dp.History.Monthly, 3)
}

func TestBuildHistoryZeroPriceIsGap(t *testing.T) {
	resp := &domain.HistoryResponse{History: []domain.HistoryRecord{{
		Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Prices: map[domain.Platform]float64{
			domain.PlatformAmazon:   999,
			domain.PlatformFlipkart: 0,
		},
	}}}
	dp, err := Build(baseProduct(), Enrichments{History: resp})
	require.NoError(t, err)

	point := dp.History.Daily[0]
	require.NotNil(t, point.Prices[domain.PlatformAmazon])
	assert.Nil(t, point.Prices[domain.PlatformFlipkart])
	assert.Nil(t, point.Prices[domain.PlatformMyntra])
}

func TestBuildHistoryFallbackSinglePoint(t *testing.T) {
	raw := baseProduct()
	raw.CurrentPrice = 500

	dp, err := Build(raw, Enrichments{})
	require.NoError(t, err)

	for _, tc := range []struct {
		series []domain.PricePoint
		label  string
	}{
		{dp.History.Daily, "Today"},
		{dp.History.Monthly, "This Month"},
		{dp.History.Yearly, "This Year"},
	} {
		t.Run(tc.label, func(t *testing.T) {
			require.Len(t, tc.series, 1)
			point := tc.series[0]
			assert.Equal(t, tc.label, point.Label)
			require.NotNil(t, point.Prices[domain.PlatformAmazon])
			assert.Equal(t, 500.0, *point.Prices[domain.PlatformAmazon])
			assert.Nil(t, point.Prices[domain.PlatformFlipkart])
			assert.Nil(t, point.Prices[domain.PlatformMyntra])
		})
	}
}

func TestBuildHistoryFallbackIncludesCrossPlatform(t *testing.T) {
	raw := baseProduct()
	raw.CrossPlatform = []domain.RawProduct{
		{Platform: "flipkart", CurrentPrice: 4650},
	}
	dp, err := Build(raw, Enrichments{})
	require.NoError(t, err)

	point := dp.History.Daily[0]
	require.NotNil(t, point.Prices[domain.PlatformFlipkart])
	assert.Equal(t, 4650.0, *point.Prices[domain.PlatformFlipkart])
}

func TestBuildHistoryEmptyResponseFallsBack(t *testing.T) {
	dp, err := Build(baseProduct(), Enrichments{History: &domain.HistoryResponse{}})
	require.NoError(t, err)
	require.Len(t, dp.History.Daily, 1)
	assert.Equal(t, "Today", dp.History.Daily[0].Label)
}
