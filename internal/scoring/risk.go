package scoring

import (
	"fmt"
	"strings"

	"stocksense/internal/domain"
)

// RiskEngine scores downside exposure, higher meaning riskier: volatility 40,
// drawdown 30, balance-sheet risk 30. Level cuts at 60 (HIGH) and 30
// (MEDIUM).
type RiskEngine struct{}

func (RiskEngine) Score(bars []domain.OHLCVBar, ratios domain.FundamentalRatios) domain.Score {
	volScore, volValue := riskVolatility(bars)
	ddScore, ddValue := riskDrawdown(bars)
	fundScore, fundValue := riskFundamentals(ratios)

	total := volScore + ddScore + fundScore
	return domain.Score{
		Total: domain.Clamp100(total),
		Breakdown: map[string]domain.FactorScore{
			"volatility_risk":  factor(volValue, volScore, 40),
			"drawdown_risk":    factor(ddValue, ddScore, 30),
			"fundamental_risk": factor(fundValue, fundScore, 30),
		},
		Label: riskLevel(total),
	}
}

// riskVolatility is proportional over a 40% band: annualized volatility at
// or above 40% takes the full 40 points.
func riskVolatility(bars []domain.OHLCVBar) (float64, string) {
	vol, ok := annualizedVolatility(bars)
	if !ok {
		return 20, "N/A"
	}
	return clampRange(vol, 0, 40), pct(vol)
}

// riskDrawdown is proportional over a 50% band: a -50% historical drawdown
// takes the full 30 points.
func riskDrawdown(bars []domain.OHLCVBar) (float64, string) {
	dd, ok := maxDrawdown(bars)
	if !ok {
		return 15, "N/A"
	}
	score := clampRange(-dd/50*30, 0, 30)
	return score, pct(dd)
}

func riskFundamentals(r domain.FundamentalRatios) (float64, string) {
	score := 0.0
	issues := []string{}

	de := domain.ValueOr(r.DebtToEquity, 0)
	switch {
	case de > 2.0:
		score += 15
		issues = append(issues, "high debt")
	case de > 1.0:
		score += 8
	}

	beta := domain.ValueOr(r.Beta, 1.0)
	switch {
	case beta > 1.5:
		score += 15
		issues = append(issues, "high beta")
	case beta > 1.2:
		score += 8
	}

	value := "safe"
	if len(issues) > 0 {
		value = strings.Join(issues, ", ")
	} else if score > 0 {
		value = fmt.Sprintf("de=%.2f beta=%.2f", de, beta)
	}
	return clampRange(score, 0, 30), value
}

func riskLevel(total float64) string {
	switch {
	case total >= 60:
		return "HIGH"
	case total >= 30:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
