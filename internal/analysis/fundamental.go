package analysis

import (
	"fmt"

	"stocksense/internal/domain"
)

type FundamentalAnalyzer struct{}

// Analyze buckets the ratio bag into a health score and three qualitative
// assessments. Missing ratios fall back to neutral defaults, so the result
// is always well-formed.
func (FundamentalAnalyzer) Analyze(r domain.FundamentalRatios) domain.FundamentalReport {
	pe := domain.ValueOr(r.PERatio, 0)
	pb := domain.ValueOr(r.PBRatio, 0)
	de := domain.ValueOr(r.DebtToEquity, 1.0)
	roe := domain.ValueOr(r.ROE, 0)
	margin := domain.ValueOr(r.ProfitMargin, 0)
	growth := domain.ValueOr(r.RevenueGrowth, 0)
	cr := domain.ValueOr(r.CurrentRatio, 1.0)

	return domain.FundamentalReport{
		HealthScore:     healthScore(pe, pb, de, roe, cr),
		Valuation:       assessValuation(pe, pb, r.ForwardPE),
		FinancialHealth: assessFinancialHealth(de, roe, margin, cr),
		GrowthPotential: assessGrowth(growth),
		KeyMetrics: map[string]string{
			"pe_ratio":       fmt.Sprintf("%.2f", pe),
			"pb_ratio":       fmt.Sprintf("%.2f", pb),
			"debt_equity":    fmt.Sprintf("%.2f", de),
			"roe":            fmt.Sprintf("%.2f%%", roe),
			"profit_margin":  fmt.Sprintf("%.2f%%", margin),
			"revenue_growth": fmt.Sprintf("%.2f%%", growth),
			"current_ratio":  fmt.Sprintf("%.2f", cr),
		},
	}
}

// healthScore starts at a 40-point baseline and adds bounded bonuses per
// bucket. The bucket maxima sum to exactly 60, so a flawless balance sheet
// lands on 100 without needing the clamp.
func healthScore(pe, pb, de, roe, cr float64) int {
	score := 40.0

	switch {
	case pe > 0 && pe < 15:
		score += 15
	case pe >= 15 && pe < 25:
		score += 10
	case pe >= 25 && pe < 40:
		score += 5
	}

	switch {
	case pb > 0 && pb < 2:
		score += 10
	case pb >= 2 && pb < 4:
		score += 5
	}

	switch {
	case de < 0.5:
		score += 15
	case de < 1.0:
		score += 10
	case de < 2.0:
		score += 5
	}

	switch {
	case roe > 20:
		score += 10
	case roe > 15:
		score += 7
	case roe > 10:
		score += 4
	}

	// liquidity bonus
	switch {
	case cr > 2.0:
		score += 10
	case cr > 1.5:
		score += 7
	case cr > 1.0:
		score += 4
	}

	return domain.Clamp100(score)
}

func assessValuation(pe, pb float64, forwardPE *float64) domain.Assessment {
	var a domain.Assessment
	switch {
	case pe < 15 && pb < 2:
		a = domain.Assessment{Level: "UNDERVALUED", Description: "Trading below historical averages"}
	case pe > 40 || pb > 5:
		a = domain.Assessment{Level: "OVERVALUED", Description: "Premium valuation"}
	default:
		a = domain.Assessment{Level: "FAIR", Description: "Reasonably valued"}
	}

	if forwardPE != nil && pe > 0 {
		if *forwardPE < pe {
			a.Description += "; forward PE suggests improving earnings"
		} else if *forwardPE > pe {
			a.Description += "; forward PE suggests softening earnings"
		}
	}
	return a
}

func assessFinancialHealth(de, roe, margin, cr float64) domain.Assessment {
	switch {
	case de < 0.5 && roe > 15 && margin > 10:
		return domain.Assessment{Level: "STRONG", Description: "Excellent financial position"}
	case de > 2 || roe < 5 || margin < 0 || cr < 1:
		return domain.Assessment{Level: "WEAK", Description: "Financial concerns present"}
	default:
		return domain.Assessment{Level: "MODERATE", Description: "Stable financial health"}
	}
}

func assessGrowth(revenueGrowth float64) domain.Assessment {
	switch {
	case revenueGrowth > 20:
		return domain.Assessment{Level: "HIGH", Description: "Strong growth trajectory"}
	case revenueGrowth > 10:
		return domain.Assessment{Level: "MODERATE", Description: "Steady growth"}
	case revenueGrowth > 0:
		return domain.Assessment{Level: "LOW", Description: "Slow growth"}
	default:
		return domain.Assessment{Level: "DECLINING", Description: "Revenue contraction"}
	}
}
