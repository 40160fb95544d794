// Package scoring holds the three independent weighted engines: stability
// (higher = steadier), timing (higher = better entry), and risk (higher =
// riskier). Every sub-score is individually bounded so totals stay inside
// [0,100] no matter how broken the inputs are.
package scoring

import (
	"fmt"
	"math"

	"stocksense/internal/domain"

	"github.com/montanaflynn/stats"
)

const tradingDaysPerYear = 252

// annualizedVolatility returns the annualized stdev of daily returns as a
// percentage, and false when the history is too short to say anything.
func annualizedVolatility(bars []domain.OHLCVBar) (float64, bool) {
	if len(bars) < 20 {
		return 0, false
	}

	closes := domain.Closes(bars)
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	if len(returns) == 0 {
		return 0, false
	}

	std, err := stats.StandardDeviation(returns)
	if err != nil {
		return 0, false
	}
	return std * math.Sqrt(tradingDaysPerYear) * 100, true
}

// maxDrawdown returns the deepest peak-to-trough decline as a negative
// percentage (e.g. -30.5).
func maxDrawdown(bars []domain.OHLCVBar) (float64, bool) {
	if len(bars) == 0 {
		return 0, false
	}

	peak := bars[0].Close
	worst := 0.0
	for _, b := range bars {
		if b.Close > peak {
			peak = b.Close
		}
		if peak > 0 {
			dd := (b.Close - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst * 100, true
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func factor(value string, contribution float64, max int) domain.FactorScore {
	return domain.FactorScore{
		Value:        value,
		Contribution: roundInt(contribution),
		Max:          max,
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
