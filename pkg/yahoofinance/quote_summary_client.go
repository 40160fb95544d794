// Package yahoofinance fetches the quoteSummary statistics Yahoo exposes
// beside the quote feed. The quote itself carries valuation multiples, but
// the balance-sheet and margin ratios only appear in the financialData and
// defaultKeyStatistics quoteSummary modules.
package yahoofinance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Client struct {
	HttpClient *http.Client
	BaseURL    string
	UserAgent  string
	// Suffix maps NSE symbols onto Yahoo tickers, normally ".NS".
	Suffix string
}

// KeyStatistics holds the ratios in Yahoo's native units: DebtToEquity is a
// percent, ReturnOnEquity, ProfitMargin and RevenueGrowth are fractions.
// Fields Yahoo does not report for a symbol stay nil.
type KeyStatistics struct {
	DebtToEquity   *float64
	ReturnOnEquity *float64
	ProfitMargin   *float64
	RevenueGrowth  *float64
	CurrentRatio   *float64
	QuickRatio     *float64
	Beta           *float64
}

// quoteSummary wraps every number as {"raw": x, "fmt": "..."}; only raw is
// needed here.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData struct {
				DebtToEquity   rawValue `json:"debtToEquity"`
				ReturnOnEquity rawValue `json:"returnOnEquity"`
				ProfitMargins  rawValue `json:"profitMargins"`
				RevenueGrowth  rawValue `json:"revenueGrowth"`
				CurrentRatio   rawValue `json:"currentRatio"`
				QuickRatio     rawValue `json:"quickRatio"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				Beta rawValue `json:"beta"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (c Client) GetKeyStatistics(ctx context.Context, symbol string) (*KeyStatistics, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s%s", c.BaseURL, url.PathEscape(symbol), c.Suffix)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("modules", "financialData,defaultKeyStatistics")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", c.UserAgent)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		return nil, fmt.Errorf("quoteSummary returned status code %d for %s", response.StatusCode, symbol)
	}

	payload := quoteSummaryResponse{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode quoteSummary for %s: %w", symbol, err)
	}
	if e := payload.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("quoteSummary error for %s: %s: %s", symbol, e.Code, e.Description)
	}
	if len(payload.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary has no result for %s", symbol)
	}

	r := payload.QuoteSummary.Result[0]
	return &KeyStatistics{
		DebtToEquity:   r.FinancialData.DebtToEquity.Raw,
		ReturnOnEquity: r.FinancialData.ReturnOnEquity.Raw,
		ProfitMargin:   r.FinancialData.ProfitMargins.Raw,
		RevenueGrowth:  r.FinancialData.RevenueGrowth.Raw,
		CurrentRatio:   r.FinancialData.CurrentRatio.Raw,
		QuickRatio:     r.FinancialData.QuickRatio.Raw,
		Beta:           r.DefaultKeyStatistics.Beta.Raw,
	}, nil
}
