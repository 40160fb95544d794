package marketdata

import (
	"context"
	"fmt"

	"stocksense/internal/domain"
	"stocksense/pkg/screener"
	"stocksense/pkg/yahoofinance"
)

// ScreenerFundamentals adapts the screener.in scraper. Screener is the
// primary ratio source; it knows Indian companies better than Yahoo does.
type ScreenerFundamentals struct {
	Client screener.Client
}

func (ScreenerFundamentals) SourceName() string { return "Screener.in" }

func (f ScreenerFundamentals) Fundamentals(ctx context.Context, symbol string) (domain.FundamentalRatios, error) {
	company, err := f.Client.GetCompanyRatios(ctx, symbol)
	if err != nil {
		return domain.FundamentalRatios{}, err
	}

	ratios := domain.FundamentalRatios{
		PERatio:       company.StockPE,
		ROE:           company.ROE,
		DividendYield: company.DividendYield,
	}
	if company.MarketCap != nil {
		// screener reports crores
		ratios.MarketCap = domain.Float64Ptr(*company.MarketCap * 1e7)
	}
	if company.CurrentPrice != nil && company.BookValue != nil && *company.BookValue > 0 {
		ratios.PBRatio = domain.Float64Ptr(*company.CurrentPrice / *company.BookValue)
	}
	return ratios, nil
}

type yahooQuoteClient interface {
	GetStockDetails(ctx context.Context, symbol string) (map[string]any, error)
}

type yahooStatsClient interface {
	GetKeyStatistics(ctx context.Context, symbol string) (*yahoofinance.KeyStatistics, error)
}

// YahooFundamentals combines two Yahoo feeds: the quote payload the consensus
// engine already sees (valuation multiples) and the quoteSummary statistics
// (debt, liquidity, margins, growth, beta). Either half may fail on its own;
// the adapter errors only when both do.
type YahooFundamentals struct {
	Quote   yahooQuoteClient
	Summary yahooStatsClient
}

func (YahooFundamentals) SourceName() string { return "YahooFinance" }

func (f YahooFundamentals) Fundamentals(ctx context.Context, symbol string) (domain.FundamentalRatios, error) {
	ratios := domain.FundamentalRatios{}

	details, detailsErr := f.Quote.GetStockDetails(ctx, symbol)
	if detailsErr == nil {
		ratios.PERatio = detailFloat(details, "pe_ratio")
		ratios.ForwardPE = detailFloat(details, "forward_pe")
		ratios.PBRatio = detailFloat(details, "pb_ratio")
		ratios.MarketCap = detailFloat(details, "market_cap")
	}

	stats, statsErr := f.Summary.GetKeyStatistics(ctx, symbol)
	if statsErr == nil {
		if stats.DebtToEquity != nil {
			// quoteSummary reports debt/equity as a percent
			ratios.DebtToEquity = domain.Float64Ptr(*stats.DebtToEquity / 100)
		}
		ratios.ROE = asPercent(stats.ReturnOnEquity)
		ratios.ProfitMargin = asPercent(stats.ProfitMargin)
		ratios.RevenueGrowth = asPercent(stats.RevenueGrowth)
		ratios.CurrentRatio = stats.CurrentRatio
		ratios.QuickRatio = stats.QuickRatio
		ratios.Beta = stats.Beta
	}

	if detailsErr != nil && statsErr != nil {
		return domain.FundamentalRatios{}, fmt.Errorf("quote: %v; statistics: %v", detailsErr, statsErr)
	}
	return ratios, nil
}

// asPercent scales a Yahoo fraction (0.0894) to the percent form (8.94) the
// analyzers expect.
func asPercent(f *float64) *float64 {
	if f == nil {
		return nil
	}
	return domain.Float64Ptr(*f * 100)
}

func detailFloat(details map[string]any, key string) *float64 {
	v, ok := details[key]
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok || f == 0 {
		return nil
	}
	return &f
}
