package screener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const companyPage = `<html><body>
<ul id="top-ratios">
  <li><span class="name">Market Cap</span><span class="value">₹ 16,54,321 Cr.</span></li>
  <li><span class="name">Current Price</span><span class="value">₹ 2,448</span></li>
  <li><span class="name">High / Low</span><span class="value">₹ 3,024 / 2,220</span></li>
  <li><span class="name">Stock P/E</span><span class="value">27.5</span></li>
  <li><span class="name">Book Value</span><span class="value">₹ 1,196</span></li>
  <li><span class="name">Dividend Yield</span><span class="value">0.41 %</span></li>
  <li><span class="name">ROCE</span><span class="value">9.61 %</span></li>
  <li><span class="name">ROE</span><span class="value">8.94 %</span></li>
  <li><span class="name">Face Value</span><span class="value">₹ 10.0</span></li>
</ul>
</body></html>`

func TestGetCompanyRatios(t *testing.T) {
	t.Run("parses top ratios", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/company/RELIANCE/", r.URL.Path)
			w.Write([]byte(companyPage))
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseURL: srv.URL, UserAgent: "test"}
		ratios, err := c.GetCompanyRatios(context.Background(), "RELIANCE")
		require.NoError(t, err)

		require.NotNil(t, ratios.MarketCap)
		require.InDelta(t, 1654321, *ratios.MarketCap, 0.001)
		require.InDelta(t, 2448, *ratios.CurrentPrice, 0.001)
		require.InDelta(t, 27.5, *ratios.StockPE, 0.001)
		require.InDelta(t, 1196, *ratios.BookValue, 0.001)
		require.InDelta(t, 0.41, *ratios.DividendYield, 0.001)
		require.InDelta(t, 8.94, *ratios.ROE, 0.001)
		require.InDelta(t, 3024, *ratios.High52W, 0.001)
		require.InDelta(t, 2220, *ratios.Low52W, 0.001)
	})

	t.Run("falls back to consolidated page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/company/TATASTEEL/" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			require.Equal(t, "/company/TATASTEEL/consolidated/", r.URL.Path)
			w.Write([]byte(companyPage))
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseURL: srv.URL, UserAgent: "test"}
		ratios, err := c.GetCompanyRatios(context.Background(), "TATASTEEL")
		require.NoError(t, err)
		require.NotNil(t, ratios.StockPE)
	})

	t.Run("page without ratios block is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html><body>captcha</body></html>"))
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseURL: srv.URL, UserAgent: "test"}
		_, err := c.GetCompanyRatios(context.Background(), "NOPE")
		require.Error(t, err)
	})
}

func TestParseNumber(t *testing.T) {
	require.Nil(t, parseNumber(""))
	require.Nil(t, parseNumber("N/A"))
	require.InDelta(t, 1234.5, *parseNumber("₹ 1,234.5 Cr."), 0.001)
	require.InDelta(t, 0.5, *parseNumber("0.50 %"), 0.001)
}
