package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stocksense/internal/domain"
	"stocksense/internal/marketdata"
	"stocksense/internal/util"

	"github.com/gin-gonic/gin"
)

func (m *ApiHandler) consensusPrice(c *gin.Context) {
	symbol, err := symbolParam(c)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	result := m.Consensus.GetConsensusPrice(c.Request.Context(), symbol)
	c.JSON(200, consensusResponse(symbol, result))
}

// consensusResponse decorates the raw consensus result with display strings
// so CLI and frontend consumers do not re-implement INR formatting.
func consensusResponse(symbol string, result domain.ConsensusResult) gin.H {
	return gin.H{
		"symbol":             symbol,
		"data":               result,
		"price_formatted":    util.FormatINR(result.Price),
		"variance_formatted": util.FormatPercent(result.VariancePct),
	}
}

func (m *ApiHandler) stockDetails(c *gin.Context) {
	symbol, err := symbolParam(c)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	details, err := m.MarketData.GetAggregatedDetails(c.Request.Context(), symbol)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, details)
}

func (m *ApiHandler) comprehensiveAnalysis(c *gin.Context) {
	symbol, err := symbolParam(c)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	bundle, err := m.MarketData.GetComprehensiveAnalysis(c.Request.Context(), symbol)
	if errors.Is(err, marketdata.ErrSymbolUnavailable) {
		returnErrorJsonCode(err, c, 404)
		return
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, bundle)
}

func (m *ApiHandler) searchStocks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		returnErrorJsonCode(fmt.Errorf("missing query parameter q"), c, 400)
		return
	}

	results, err := m.Universe.Search(c.Request.Context(), query)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, gin.H{
		"query":   query,
		"results": results,
	})
}

func (m *ApiHandler) marketStatus(c *gin.Context) {
	now := time.Now()
	c.JSON(200, gin.H{
		"open":      m.Session.IsOpen(now),
		"next_open": m.Session.NextOpen(now),
		"timezone":  m.Session.Location.String(),
	})
}

func symbolParam(c *gin.Context) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		return "", fmt.Errorf("missing symbol")
	}
	return symbol, nil
}
