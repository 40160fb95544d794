package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// GoogleClient scrapes the Google Finance quote page. Google exposes no
// price API, so this adapter is the lowest-weight source: its only job is to
// break ties when the two structured sources disagree.
type GoogleClient struct {
	HttpClient *http.Client
	BaseURL    string
}

func NewGoogleClient(timeout time.Duration) *GoogleClient {
	return &GoogleClient{
		HttpClient: &http.Client{Timeout: timeout},
		BaseURL:    "https://www.google.com/finance/quote",
	}
}

func (c *GoogleClient) SourceName() string { return "GoogleFinance" }

// the quote page renders the headline price inside this class
var googlePriceRe = regexp.MustCompile(`class="YMlKec fxKbKc">([^<]+)<`)

func (c *GoogleClient) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/%s:NSE", c.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to construct google finance request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("google finance request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("google finance returned status %d for %s", resp.StatusCode, symbol)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read google finance response: %w", err)
	}

	match := googlePriceRe.FindSubmatch(body)
	if match == nil {
		return 0, fmt.Errorf("no price found on google finance page for %s", symbol)
	}

	text := strings.TrimSpace(string(match[1]))
	text = strings.TrimPrefix(text, "₹")
	text = strings.ReplaceAll(text, ",", "")
	price, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable google finance price %q for %s: %w", text, symbol, err)
	}
	return price, nil
}

func (c *GoogleClient) GetStockDetails(ctx context.Context, symbol string) (map[string]any, error) {
	price, err := c.GetLatestPrice(ctx, symbol)
	if err != nil {
		return map[string]any{}, err
	}
	return map[string]any{
		"price":  price,
		"source": c.SourceName(),
	}, nil
}
