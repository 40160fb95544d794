// Package analysis turns raw market data into structured reports: technical
// indicators from OHLCV history, a fundamental health read from the ratio
// bag, and keyword-polarity sentiment over headlines.
package analysis

import (
	"errors"
	"fmt"

	"stocksense/internal/domain"

	"github.com/montanaflynn/stats"
)

// ErrInsufficientData is returned when a history is too short to compute the
// full indicator set. Callers must check it before trusting any report field.
var ErrInsufficientData = errors.New("insufficient history for technical analysis")

const minTechnicalBars = 50

type TechnicalAnalyzer struct{}

// Analyze computes the full indicator set from an ascending OHLCV history.
// Fewer than 50 bars is a hard error with no partial result; indicators that
// need more bars than given (MA200, trend cross) degrade individually.
func (TechnicalAnalyzer) Analyze(bars []domain.OHLCVBar) (*domain.TechnicalReport, error) {
	if len(bars) < minTechnicalBars {
		return nil, fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientData, len(bars), minTechnicalBars)
	}

	closes := domain.Closes(bars)
	current := closes[len(closes)-1]

	report := &domain.TechnicalReport{
		CurrentPrice:      current,
		MovingAverages:    movingAverages(closes),
		RSI:               rsi(closes, 14),
		MACD:              macd(closes),
		Bollinger:         bollinger(closes, 20),
		SupportResistance: supportResistance(bars),
		Volume:            volumeProfile(bars),
		Trend:             trend(closes),
	}
	report.Signal = overallSignal(report)
	return report, nil
}

func movingAverages(closes []float64) map[string]domain.MovingAverage {
	current := closes[len(closes)-1]
	out := map[string]domain.MovingAverage{}
	for _, period := range []int{20, 50, 200} {
		key := fmt.Sprintf("ma%d", period)
		if len(closes) < period {
			out[key] = domain.MovingAverage{Value: nil, Signal: "N/A"}
			continue
		}
		ma := mean(closes[len(closes)-period:])
		signal := "BELOW"
		if current > ma {
			signal = "ABOVE"
		}
		out[key] = domain.MovingAverage{Value: domain.Float64Ptr(ma), Signal: signal}
	}
	return out
}

func rsi(closes []float64, period int) domain.RSIReport {
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

	var value float64
	if losses == 0 {
		value = 100
	} else {
		rs := gains / losses
		value = 100 - (100 / (1 + rs))
	}

	signal := "NEUTRAL"
	switch {
	case value < 30:
		signal = "OVERSOLD"
	case value > 70:
		signal = "OVERBOUGHT"
	}
	return domain.RSIReport{Value: value, Signal: signal}
}

func macd(closes []float64) domain.MACDReport {
	ema12 := emaSeries(closes, 12)
	ema26 := emaSeries(closes, 26)
	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = ema12[i] - ema26[i]
	}
	signalLine := emaSeries(macdLine, 9)

	last := len(closes) - 1
	hist := macdLine[last] - signalLine[last]
	signal := "SELL"
	if hist > 0 {
		signal = "BUY"
	}
	return domain.MACDReport{
		MACD:       macdLine[last],
		SignalLine: signalLine[last],
		Histogram:  hist,
		Signal:     signal,
	}
}

func bollinger(closes []float64, period int) domain.BollingerReport {
	window := closes[len(closes)-period:]
	middle := mean(window)
	std, _ := stats.StandardDeviationSample(window)
	upper := middle + 2*std
	lower := middle - 2*std

	current := closes[len(closes)-1]
	signal := "NEUTRAL"
	switch {
	case current > upper:
		signal = "OVERBOUGHT"
	case current < lower:
		signal = "OVERSOLD"
	}
	return domain.BollingerReport{Upper: upper, Middle: middle, Lower: lower, Signal: signal}
}

// supportResistance derives classic pivot levels from the last 20 bars.
func supportResistance(bars []domain.OHLCVBar) domain.SupportResistance {
	window := bars[len(bars)-20:]
	high := window[0].High
	low := window[0].Low
	for _, b := range window {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	close := bars[len(bars)-1].Close

	pivot := (high + low + close) / 3
	return domain.SupportResistance{
		Support:    2*pivot - high,
		Resistance: 2*pivot - low,
		Pivot:      pivot,
	}
}

func volumeProfile(bars []domain.OHLCVBar) domain.VolumeReport {
	window := bars[len(bars)-20:]
	total := 0.0
	for _, b := range window {
		total += b.Volume
	}
	avg := total / float64(len(window))
	if avg == 0 {
		return domain.VolumeReport{Ratio: 0, Signal: "LOW_LIQUIDITY"}
	}

	ratio := bars[len(bars)-1].Volume / avg
	signal := "NORMAL"
	switch {
	case ratio > 2.0:
		signal = "HIGH_VOLUME_SPIKE"
	case ratio > 1.5:
		signal = "ACCUMULATION"
	case ratio < 0.5:
		signal = "LOW_LIQUIDITY"
	}
	return domain.VolumeReport{Ratio: ratio, Signal: signal}
}

// trend reads the 50/200-MA relationship and flags a crossover between the
// last two observations. Needs a full 200-bar window at both points, so 201
// bars for cross detection; exactly 200 bars can still report the standing
// trend.
func trend(closes []float64) domain.TrendReport {
	if len(closes) < 200 {
		return domain.TrendReport{Status: "INSUFFICIENT_DATA"}
	}

	ma50 := mean(closes[len(closes)-50:])
	ma200 := mean(closes[len(closes)-200:])
	report := domain.TrendReport{
		MA50:  domain.Float64Ptr(ma50),
		MA200: domain.Float64Ptr(ma200),
	}

	if len(closes) > 200 {
		prev := closes[:len(closes)-1]
		prevMA50 := mean(prev[len(prev)-50:])
		prevMA200 := mean(prev[len(prev)-200:])
		switch {
		case prevMA50 <= prevMA200 && ma50 > ma200:
			report.Status = "GOLDEN_CROSS_BULLISH"
			return report
		case prevMA50 >= prevMA200 && ma50 < ma200:
			report.Status = "DEATH_CROSS_BEARISH"
			return report
		}
	}

	if ma50 > ma200 {
		report.Status = "BULLISH_TREND"
	} else {
		report.Status = "BEARISH_TREND"
	}
	return report
}

// overallSignal runs a majority vote: MA50 position and MACD and Bollinger
// each count once, RSI counts double, and a volume spike adds one vote to
// whichever side is already ahead.
func overallSignal(r *domain.TechnicalReport) string {
	buy := 0
	sell := 0

	if r.MovingAverages["ma50"].Signal == "ABOVE" {
		buy++
	} else {
		sell++
	}

	switch r.RSI.Signal {
	case "OVERSOLD":
		buy += 2
	case "OVERBOUGHT":
		sell += 2
	}

	if r.MACD.Signal == "BUY" {
		buy++
	} else {
		sell++
	}

	switch r.Bollinger.Signal {
	case "OVERSOLD":
		buy++
	case "OVERBOUGHT":
		sell++
	}

	if r.Volume.Signal == "HIGH_VOLUME_SPIKE" || r.Volume.Signal == "ACCUMULATION" {
		if buy > sell {
			buy++
		} else if sell > buy {
			sell++
		}
	}

	switch {
	case buy > sell:
		return "BUY"
	case sell > buy:
		return "SELL"
	default:
		return "NEUTRAL"
	}
}

func mean(values []float64) float64 {
	m, _ := stats.Mean(values)
	return m
}

// emaSeries is the standard exponential moving average recursion seeded with
// the first value, smoothing factor 2/(span+1).
func emaSeries(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
