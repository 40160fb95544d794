package marketdata

import (
	"context"
	"errors"
	"testing"

	"stocksense/internal/domain"
	"stocksense/pkg/yahoofinance"

	"github.com/stretchr/testify/require"
)

type stubQuote struct {
	details map[string]any
	err     error
}

func (s stubQuote) GetStockDetails(context.Context, string) (map[string]any, error) {
	return s.details, s.err
}

type stubStats struct {
	stats *yahoofinance.KeyStatistics
	err   error
}

func (s stubStats) GetKeyStatistics(context.Context, string) (*yahoofinance.KeyStatistics, error) {
	return s.stats, s.err
}

func TestYahooFundamentals(t *testing.T) {
	quote := stubQuote{details: map[string]any{
		"pe_ratio":   27.5,
		"forward_pe": 22.1,
		"pb_ratio":   2.05,
		"market_cap": 1.6e13,
	}}
	stats := stubStats{stats: &yahoofinance.KeyStatistics{
		DebtToEquity:   domain.Float64Ptr(41.5),
		ReturnOnEquity: domain.Float64Ptr(0.0894),
		ProfitMargin:   domain.Float64Ptr(0.0812),
		RevenueGrowth:  domain.Float64Ptr(0.127),
		CurrentRatio:   domain.Float64Ptr(1.18),
		QuickRatio:     domain.Float64Ptr(0.74),
		Beta:           domain.Float64Ptr(0.43),
	}}

	t.Run("scales statistics into analyzer units", func(t *testing.T) {
		f := YahooFundamentals{Quote: quote, Summary: stats}
		ratios, err := f.Fundamentals(context.Background(), "RELIANCE")
		require.NoError(t, err)

		require.InDelta(t, 27.5, *ratios.PERatio, 0.001)
		require.InDelta(t, 2.05, *ratios.PBRatio, 0.001)
		// percent from Yahoo becomes a plain ratio
		require.InDelta(t, 0.415, *ratios.DebtToEquity, 0.0001)
		// fractions from Yahoo become percents
		require.InDelta(t, 8.94, *ratios.ROE, 0.001)
		require.InDelta(t, 8.12, *ratios.ProfitMargin, 0.001)
		require.InDelta(t, 12.7, *ratios.RevenueGrowth, 0.001)
		require.InDelta(t, 1.18, *ratios.CurrentRatio, 0.001)
		require.InDelta(t, 0.74, *ratios.QuickRatio, 0.001)
		require.InDelta(t, 0.43, *ratios.Beta, 0.001)
	})

	t.Run("statistics alone still serve", func(t *testing.T) {
		f := YahooFundamentals{
			Quote:   stubQuote{err: errors.New("quote down")},
			Summary: stats,
		}
		ratios, err := f.Fundamentals(context.Background(), "RELIANCE")
		require.NoError(t, err)
		require.Nil(t, ratios.PERatio)
		require.NotNil(t, ratios.Beta)
	})

	t.Run("quote alone still serves", func(t *testing.T) {
		f := YahooFundamentals{
			Quote:   quote,
			Summary: stubStats{err: errors.New("summary down")},
		}
		ratios, err := f.Fundamentals(context.Background(), "RELIANCE")
		require.NoError(t, err)
		require.NotNil(t, ratios.PERatio)
		require.Nil(t, ratios.Beta)
	})

	t.Run("both halves down is an error", func(t *testing.T) {
		f := YahooFundamentals{
			Quote:   stubQuote{err: errors.New("quote down")},
			Summary: stubStats{err: errors.New("summary down")},
		}
		_, err := f.Fundamentals(context.Background(), "RELIANCE")
		require.Error(t, err)
	})
}
