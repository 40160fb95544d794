package yahoofinance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const summaryPayload = `{
  "quoteSummary": {
    "result": [
      {
        "financialData": {
          "debtToEquity": {"raw": 41.5, "fmt": "41.50%"},
          "returnOnEquity": {"raw": 0.0894, "fmt": "8.94%"},
          "profitMargins": {"raw": 0.0812, "fmt": "8.12%"},
          "revenueGrowth": {"raw": 0.127, "fmt": "12.70%"},
          "currentRatio": {"raw": 1.18, "fmt": "1.18"},
          "quickRatio": {"raw": 0.74, "fmt": "0.74"}
        },
        "defaultKeyStatistics": {
          "beta": {"raw": 0.43, "fmt": "0.43"}
        }
      }
    ],
    "error": null
  }
}`

func TestGetKeyStatistics(t *testing.T) {
	t.Run("parses both modules", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v10/finance/quoteSummary/RELIANCE.NS", r.URL.Path)
			require.Equal(t, "financialData,defaultKeyStatistics", r.URL.Query().Get("modules"))
			w.Write([]byte(summaryPayload))
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseURL: srv.URL, UserAgent: "test", Suffix: ".NS"}
		stats, err := c.GetKeyStatistics(context.Background(), "RELIANCE")
		require.NoError(t, err)

		require.InDelta(t, 41.5, *stats.DebtToEquity, 0.001)
		require.InDelta(t, 0.0894, *stats.ReturnOnEquity, 0.0001)
		require.InDelta(t, 0.0812, *stats.ProfitMargin, 0.0001)
		require.InDelta(t, 0.127, *stats.RevenueGrowth, 0.0001)
		require.InDelta(t, 1.18, *stats.CurrentRatio, 0.001)
		require.InDelta(t, 0.74, *stats.QuickRatio, 0.001)
		require.InDelta(t, 0.43, *stats.Beta, 0.001)
	})

	t.Run("missing fields stay nil", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quoteSummary":{"result":[{"financialData":{"currentRatio":{"raw":2.1}},"defaultKeyStatistics":{}}],"error":null}}`))
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseURL: srv.URL, UserAgent: "test", Suffix: ".NS"}
		stats, err := c.GetKeyStatistics(context.Background(), "TCS")
		require.NoError(t, err)

		require.InDelta(t, 2.1, *stats.CurrentRatio, 0.001)
		require.Nil(t, stats.DebtToEquity)
		require.Nil(t, stats.Beta)
	})

	t.Run("payload error surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for ticker symbol: NOSUCH.NS"}}}`))
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseURL: srv.URL, UserAgent: "test", Suffix: ".NS"}
		_, err := c.GetKeyStatistics(context.Background(), "NOSUCH")
		require.ErrorContains(t, err, "Not Found")
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseURL: srv.URL, UserAgent: "test", Suffix: ".NS"}
		_, err := c.GetKeyStatistics(context.Background(), "INFY")
		require.ErrorContains(t, err, "status code 429")
	})
}
