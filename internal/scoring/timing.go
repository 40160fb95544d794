package scoring

import (
	"fmt"

	"stocksense/internal/domain"

	"github.com/montanaflynn/stats"
)

// TimingEngine scores entry quality: technical posture 40, valuation 30,
// momentum 20, sentiment placeholder 10. Signal cuts at 70 (BUY) and 40
// (NEUTRAL); below that the engine says WAIT.
type TimingEngine struct{}

func (TimingEngine) Score(bars []domain.OHLCVBar, ratios domain.FundamentalRatios) domain.Score {
	techScore, techValue := timingTechnicals(bars)
	valScore := timingValuation(ratios)
	momScore, momValue := timingMomentum(bars)
	sentScore := 5.0 // fixed until a timing-aware sentiment feed exists

	total := techScore + valScore + momScore + sentScore
	return domain.Score{
		Total: domain.Clamp100(total),
		Breakdown: map[string]domain.FactorScore{
			"technical": factor(techValue, techScore, 40),
			"valuation": factor(fmt.Sprintf("pe=%.2f pb=%.2f", domain.ValueOr(ratios.PERatio, 0), domain.ValueOr(ratios.PBRatio, 0)), valScore, 30),
			"momentum":  factor(momValue, momScore, 20),
			"sentiment": factor("placeholder", sentScore, 10),
		},
		Label: timingSignal(total),
	}
}

func timingTechnicals(bars []domain.OHLCVBar) (float64, string) {
	if len(bars) < 200 {
		return 20, "N/A"
	}

	closes := domain.Closes(bars)
	current := closes[len(closes)-1]
	ma50, _ := stats.Mean(closes[len(closes)-50:])
	ma200, _ := stats.Mean(closes[len(closes)-200:])

	score := 0.0
	if current > ma50 {
		score += 15
	}
	if current > ma200 {
		score += 15
	}

	rsi := rsi14(closes)
	switch {
	case rsi < 30:
		score += 10 // oversold entry
	case rsi <= 50:
		score += 10 // healthy pullback zone
	case rsi > 70:
		score -= 5
	}

	return clampRange(score, 0, 40), fmt.Sprintf("ma50=%.2f ma200=%.2f rsi=%.1f", ma50, ma200, rsi)
}

func timingValuation(r domain.FundamentalRatios) float64 {
	score := 15.0

	pe := domain.ValueOr(r.PERatio, 0)
	switch {
	case pe > 0 && pe < 20:
		score += 10
	case pe > 50:
		score -= 5
	}

	pb := domain.ValueOr(r.PBRatio, 0)
	if pb > 0 && pb < 3 {
		score += 5
	}

	return clampRange(score, 0, 30)
}

func timingMomentum(bars []domain.OHLCVBar) (float64, string) {
	if len(bars) < 30 {
		return 10, "N/A"
	}

	closes := domain.Closes(bars)
	prev := closes[len(closes)-20]
	if prev == 0 {
		return 10, "N/A"
	}
	ret1m := (closes[len(closes)-1] - prev) / prev

	score := 10.0
	if ret1m > 0 {
		score += 10
	}
	return score, fmt.Sprintf("%.1f%% 1m", ret1m*100)
}

func timingSignal(total float64) string {
	switch {
	case total >= 70:
		return "BUY"
	case total >= 40:
		return "NEUTRAL"
	default:
		return "WAIT"
	}
}

// rsi14 is the rolling-mean RSI over the last 14 deltas.
func rsi14(closes []float64) float64 {
	const period = 14
	if len(closes) <= period {
		return 50
	}

	gains := 0.0
	losses := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}
	if losses == 0 {
		return 100
	}
	rs := gains / losses
	return 100 - (100 / (1 + rs))
}
