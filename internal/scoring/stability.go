package scoring

import (
	"fmt"

	"stocksense/internal/domain"
)

// StabilityEngine scores how steady a stock is: volatility 30, balance-sheet
// quality 30, market position 20, growth consistency 20.
type StabilityEngine struct{}

func (StabilityEngine) Score(bars []domain.OHLCVBar, ratios domain.FundamentalRatios) domain.Score {
	volScore, volValue := stabilityVolatility(bars)
	fundScore := stabilityFundamentals(ratios)
	mktScore := stabilityMarket(ratios)
	growthScore := stabilityGrowth(ratios)

	total := volScore + fundScore + mktScore + growthScore
	return domain.Score{
		Total: domain.Clamp100(total),
		Breakdown: map[string]domain.FactorScore{
			"volatility":      factor(volValue, volScore, 30),
			"fundamentals":    factor(fmt.Sprintf("de=%.2f cr=%.2f", domain.ValueOr(ratios.DebtToEquity, 1.0), domain.ValueOr(ratios.CurrentRatio, 1.0)), fundScore, 30),
			"market_position": factor(marketCapLabel(ratios.MarketCap), mktScore, 20),
			"growth":          factor(pct(domain.ValueOr(ratios.RevenueGrowth, 0)), growthScore, 20),
		},
		Label: stabilityLabel(total),
	}
}

// stabilityVolatility maps annualized volatility inversely over a [10%,50%]
// band: under 10% scores the full 30, over 50% scores 0. Short histories get
// the band midpoint rather than an error.
func stabilityVolatility(bars []domain.OHLCVBar) (float64, string) {
	vol, ok := annualizedVolatility(bars)
	if !ok {
		return 15, "N/A"
	}
	score := clampRange(30*(1-(vol-10)/40), 0, 30)
	return score, pct(vol)
}

func stabilityFundamentals(r domain.FundamentalRatios) float64 {
	score := 0.0

	de := domain.ValueOr(r.DebtToEquity, 1.0)
	switch {
	case de < 0.5:
		score += 10
	case de < 1.0:
		score += 7
	case de < 2.0:
		score += 4
	}

	cr := domain.ValueOr(r.CurrentRatio, 1.0)
	switch {
	case cr > 2.0:
		score += 10
	case cr > 1.5:
		score += 7
	case cr > 1.0:
		score += 5
	}

	roe := domain.ValueOr(r.ROE, 0)
	switch {
	case roe > 20:
		score += 10
	case roe > 15:
		score += 8
	case roe > 10:
		score += 5
	}

	return score
}

func stabilityMarket(r domain.FundamentalRatios) float64 {
	score := 0.0
	mcap := domain.ValueOr(r.MarketCap, 0)
	switch {
	case mcap > 1_000_000_000_000:
		score += 10
	case mcap > 500_000_000_000:
		score += 7
	case mcap > 100_000_000_000:
		score += 4
	}
	// listed-equity liquidity baseline
	score += 5
	return score
}

func stabilityGrowth(r domain.FundamentalRatios) float64 {
	score := 10.0
	if domain.ValueOr(r.RevenueGrowth, 0) > 15 {
		score += 5
	}
	return score
}

func stabilityLabel(total float64) string {
	switch {
	case total >= 80:
		return "HIGH_STABILITY"
	case total >= 60:
		return "MEDIUM_STABILITY"
	case total >= 40:
		return "MODERATE_STABILITY"
	default:
		return "LOW_STABILITY"
	}
}

func marketCapLabel(mcap *float64) string {
	if mcap == nil {
		return "N/A"
	}
	// reported in crores for readability
	return fmt.Sprintf("%.0f Cr", *mcap/10_000_000)
}
