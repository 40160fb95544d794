// Package googlenews fetches headlines for a symbol from the Google News RSS
// search feed. RSS is a fixed XML shape, so encoding/xml covers it without an
// HTML parser.
package googlenews

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"stocksense/internal/domain"
)

type Client struct {
	HttpClient *http.Client
	FeedURL    string
	MaxItems   int
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Source  string `xml:"source"`
}

// GetNews returns up to MaxItems headlines for symbol, most recent first.
// The query is pinned to the Indian edition so NSE tickers resolve to the
// right companies.
func (c Client) GetNews(ctx context.Context, symbol string) ([]domain.NewsItem, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s share price news india", symbol))
	params.Set("hl", "en-IN")
	params.Set("gl", "IN")
	params.Set("ceid", "IN:en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FeedURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return nil, fmt.Errorf("news feed returned status code %d", response.StatusCode)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	items := feed.Channel.Items
	if c.MaxItems > 0 && len(items) > c.MaxItems {
		items = items[:c.MaxItems]
	}

	news := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		source := item.Source
		if source == "" {
			source = "Google News"
		}
		news = append(news, domain.NewsItem{
			Title:   item.Title,
			Link:    item.Link,
			PubDate: item.PubDate,
			Source:  source,
		})
	}
	return news, nil
}
