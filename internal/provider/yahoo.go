package provider

import (
	"context"
	"fmt"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
)

// YahooClient adapts Yahoo Finance. NSE symbols need the ".NS" suffix on the
// wire; callers pass bare symbols and the adapter handles the mapping.
type YahooClient struct{}

func NewYahooClient() *YahooClient { return &YahooClient{} }

func (c *YahooClient) SourceName() string { return "YahooFinance" }

func yahooTicker(symbol string) string {
	return symbol + ".NS"
}

func (c *YahooClient) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	q, err := Call(ctx, func() (*finance.Equity, error) {
		return equity.Get(yahooTicker(symbol))
	})
	if err != nil {
		return 0, fmt.Errorf("yahoo quote failed for %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return 0, fmt.Errorf("yahoo returned no price for %s", symbol)
	}
	return q.RegularMarketPrice, nil
}

func (c *YahooClient) GetStockDetails(ctx context.Context, symbol string) (map[string]any, error) {
	q, err := Call(ctx, func() (*finance.Equity, error) {
		return equity.Get(yahooTicker(symbol))
	})
	if err != nil {
		return map[string]any{}, fmt.Errorf("yahoo details failed for %s: %w", symbol, err)
	}
	if q == nil {
		return map[string]any{}, fmt.Errorf("yahoo returned nothing for %s", symbol)
	}

	return map[string]any{
		"currentPrice":  q.RegularMarketPrice,
		"previousClose": q.RegularMarketPreviousClose,
		"volume":        float64(q.RegularMarketVolume),
		"market_cap":    float64(q.MarketCap),
		"pe_ratio":      q.TrailingPE,
		"forward_pe":    q.ForwardPE,
		"pb_ratio":      q.PriceToBook,
		"book_value":    q.BookValue,
		"eps":           q.EpsTrailingTwelveMonths,
		"high_52w":      q.FiftyTwoWeekHigh,
		"low_52w":       q.FiftyTwoWeekLow,
		"name":          q.ShortName,
	}, nil
}
