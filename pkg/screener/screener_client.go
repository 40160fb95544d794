// Package screener scrapes company fundamentals from screener.in. There is
// no public API; the top-ratios block on the company page carries the
// headline numbers (market cap, P/E, book value, ROE, dividend yield).
package screener

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Client struct {
	HttpClient *http.Client
	BaseURL    string
	UserAgent  string
}

// CompanyRatios are the parsed top-ratios values. Pointer fields are nil
// when the page does not list them; smaller companies often omit several.
type CompanyRatios struct {
	MarketCap     *float64 // in crores
	CurrentPrice  *float64
	High52W       *float64
	Low52W        *float64
	StockPE       *float64
	BookValue     *float64
	DividendYield *float64
	ROCE          *float64
	ROE           *float64
	FaceValue     *float64
}

// GetCompanyRatios fetches the company page for symbol and parses the
// top-ratios list. Standalone pages 404 for some consolidated-only listings,
// so a failed first fetch retries the consolidated variant.
func (c Client) GetCompanyRatios(ctx context.Context, symbol string) (*CompanyRatios, error) {
	body, err := c.fetchPage(ctx, fmt.Sprintf("%s/company/%s/", c.BaseURL, symbol))
	if err != nil {
		body, err = c.fetchPage(ctx, fmt.Sprintf("%s/company/%s/consolidated/", c.BaseURL, symbol))
		if err != nil {
			return nil, err
		}
	}
	return parseTopRatios(body)
}

func (c Client) fetchPage(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if response.StatusCode != 200 {
		response.Body.Close()
		return nil, fmt.Errorf("screener returned status code %d for %s", response.StatusCode, url)
	}
	return response.Body, nil
}

func parseTopRatios(body io.ReadCloser) (*CompanyRatios, error) {
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse screener page: %w", err)
	}

	values := map[string]string{}
	doc.Find("ul#top-ratios li").Each(func(_ int, li *goquery.Selection) {
		name := strings.TrimSpace(li.Find("span.name").First().Text())
		value := strings.TrimSpace(li.Find("span.value").First().Text())
		if name != "" && value != "" {
			values[strings.ToLower(name)] = value
		}
	})
	if len(values) == 0 {
		return nil, fmt.Errorf("screener page has no top-ratios block")
	}

	ratios := &CompanyRatios{
		MarketCap:     parseNumber(values["market cap"]),
		CurrentPrice:  parseNumber(values["current price"]),
		StockPE:       parseNumber(values["stock p/e"]),
		BookValue:     parseNumber(values["book value"]),
		DividendYield: parseNumber(values["dividend yield"]),
		ROCE:          parseNumber(values["roce"]),
		ROE:           parseNumber(values["roe"]),
		FaceValue:     parseNumber(values["face value"]),
	}
	if hl, ok := values["high / low"]; ok {
		parts := strings.SplitN(hl, "/", 2)
		if len(parts) == 2 {
			ratios.High52W = parseNumber(parts[0])
			ratios.Low52W = parseNumber(parts[1])
		}
	}
	return ratios, nil
}

// parseNumber strips the formatting screener uses on ratio values: thousand
// separators, currency and percent markers, and unit suffixes like "Cr.".
func parseNumber(raw string) *float64 {
	cleaned := strings.NewReplacer(",", "", "₹", "", "%", "", "Cr.", "", "Cr", "").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}
