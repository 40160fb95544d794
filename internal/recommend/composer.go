package recommend

import (
	"fmt"

	"stocksense/internal/config"
	"stocksense/internal/domain"
)

// Compose folds the three engine scores and the fundamental health score
// into a single action. The composite is a weighted sum with risk inverted;
// action is a step function of the composite, refined by the timing signal
// at the STRONG_BUY and ACCUMULATE boundaries.
func Compose(stability, timing, risk domain.Score, fundamental *domain.FundamentalReport, weights config.CompositeConfig) domain.Recommendation {
	health := 50.0
	valuation := "FAIR"
	if fundamental != nil {
		health = float64(fundamental.HealthScore)
		valuation = fundamental.Valuation.Level
	}

	composite := float64(stability.Total)*weights.StabilityWeight +
		float64(timing.Total)*weights.TimingWeight +
		float64(100-risk.Total)*weights.RiskWeight +
		health*weights.FundamentalWeight

	timingSignal := timing.Label

	var (
		action     domain.Action
		confidence domain.Confidence
		reasoning  string
	)
	switch {
	case composite >= 75 && timingSignal == "BUY":
		action = domain.ActionStrongBuy
		confidence = domain.ConfidenceHigh
		reasoning = "Excellent fundamentals, perfect entry timing, low risk."
	case composite >= 65:
		action = domain.ActionBuy
		confidence = domain.ConfidenceMedium
		reasoning = "Solid fundamentals with favorable risk-reward."
	case composite >= 55:
		confidence = domain.ConfidenceMedium
		if timingSignal == "BUY" {
			action = domain.ActionAccumulate
			reasoning = "Good long-term value, consider adding on dips."
		} else {
			action = domain.ActionHold
			reasoning = "Stable stock, but wait for better momentum to add more."
		}
	case composite >= 40:
		action = domain.ActionHold
		confidence = domain.ConfidenceLow
		reasoning = "Mixed signals. If you own it, continue holding; otherwise wait."
	case composite >= 25:
		action = domain.ActionReduce
		confidence = domain.ConfidenceMedium
		reasoning = "Weakening fundamentals or trend. Consider trimming position."
	default:
		action = domain.ActionSell
		confidence = domain.ConfidenceHigh
		reasoning = "Multiple red flags detected. High risk."
	}

	return domain.Recommendation{
		Action:         action,
		Confidence:     confidence,
		CompositeScore: domain.Clamp100(composite),
		Reasoning:      reasoning,
		KeyFactors: map[string]string{
			"stability":    fmt.Sprintf("%d/100", stability.Total),
			"timing":       timingSignal,
			"risk":         risk.Label,
			"fundamentals": valuation,
		},
	}
}
