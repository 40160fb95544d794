package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// brokenTickers consistently fail upstream with parsing errors; skipping
// them early forces the consensus engine onto the other sources instead of
// burning a timeout per lookup.
var brokenTickers = map[string]struct{}{
	"PPAP": {}, "BANKA": {}, "CAPITALSFB": {}, "21STCENMGM": {},
	"20MICRONS": {}, "3PLAND": {}, "A2ZINFRA": {}, "AAATECH": {},
	"AAKASH": {}, "AARON": {}, "AARTISURF": {}, "AARVI": {},
	"ANUHPHR": {}, "BALPHARMA": {}, "BIOFILCHEM": {}, "ASAL": {},
	"HONAUT": {}, "OMAXAUTO": {}, "AARTECH": {},
}

type NSEClient struct {
	HttpClient *http.Client
	BaseURL    string
}

func NewNSEClient(timeout time.Duration) *NSEClient {
	return &NSEClient{
		HttpClient: &http.Client{Timeout: timeout},
		BaseURL:    "https://www.nseindia.com",
	}
}

func (c *NSEClient) SourceName() string { return "NSE" }

type nseQuoteResponse struct {
	Info struct {
		CompanyName string `json:"companyName"`
		Industry    string `json:"industry"`
	} `json:"info"`
	PriceInfo struct {
		LastPrice     float64 `json:"lastPrice"`
		PreviousClose float64 `json:"previousClose"`
		Open          float64 `json:"open"`
		IntraDayHighLow struct {
			Max float64 `json:"max"`
			Min float64 `json:"min"`
		} `json:"intraDayHighLow"`
	} `json:"priceInfo"`
}

func (c *NSEClient) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	details, err := c.GetStockDetails(ctx, symbol)
	if err != nil {
		return 0, err
	}
	price, _ := details["lastPrice"].(float64)
	if price <= 0 {
		return 0, fmt.Errorf("nse returned no price for %s", symbol)
	}
	return price, nil
}

func (c *NSEClient) GetStockDetails(ctx context.Context, symbol string) (map[string]any, error) {
	if _, broken := brokenTickers[symbol]; broken {
		return map[string]any{}, fmt.Errorf("symbol %s is on the nse skip list", symbol)
	}

	u := fmt.Sprintf("%s/api/quote-equity?symbol=%s", c.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return map[string]any{}, fmt.Errorf("failed to construct nse request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return map[string]any{}, fmt.Errorf("nse request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return map[string]any{}, fmt.Errorf("nse returned status %d for %s", resp.StatusCode, symbol)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return map[string]any{}, fmt.Errorf("failed to read nse response: %w", err)
	}

	parsed := nseQuoteResponse{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return map[string]any{}, fmt.Errorf("failed to parse nse response for %s: %w", symbol, err)
	}

	details := map[string]any{
		"lastPrice":     parsed.PriceInfo.LastPrice,
		"previousClose": parsed.PriceInfo.PreviousClose,
		"open":          parsed.PriceInfo.Open,
		"dayHigh":       parsed.PriceInfo.IntraDayHighLow.Max,
		"dayLow":        parsed.PriceInfo.IntraDayHighLow.Min,
		"companyName":   parsed.Info.CompanyName,
		"industry":      parsed.Info.Industry,
	}
	if parsed.PriceInfo.PreviousClose > 0 {
		change := parsed.PriceInfo.LastPrice - parsed.PriceInfo.PreviousClose
		details["change"] = change
		details["pChange"] = change / parsed.PriceInfo.PreviousClose * 100
	}
	return details, nil
}
