package recommend

import (
	"context"
	"fmt"
	"strings"

	"stocksense/internal/config"
	"stocksense/internal/domain"

	"go.uber.org/zap"
)

type CompareEngine struct {
	analyzer Analyzer
	cfg      config.RankerConfig
	log      *zap.SugaredLogger
}

func NewCompareEngine(analyzer Analyzer, cfg config.RankerConfig, log *zap.SugaredLogger) *CompareEngine {
	return &CompareEngine{analyzer: analyzer, cfg: cfg, log: log}
}

// ComparisonEntry is one symbol's standardized metric row.
type ComparisonEntry struct {
	Price          float64       `json:"price"`
	CompositeScore int           `json:"composite_score"`
	Action         domain.Action `json:"action"`
	StabilityScore int           `json:"stability_score"`
	StabilityLabel string        `json:"stability_label"`
	TimingScore    int           `json:"timing_score"`
	TimingSignal   string        `json:"timing_signal"`
	RiskScore      int           `json:"risk_score"`
	RiskLevel      string        `json:"risk_level"`
	Valuation      string        `json:"valuation"`
	HealthScore    int           `json:"health_score"`
	MarketCap      *float64      `json:"market_cap,omitempty"`
	PERatio        *float64      `json:"pe_ratio,omitempty"`
	ROE            *float64      `json:"roe,omitempty"`
	DebtToEquity   *float64      `json:"debt_to_equity,omitempty"`
	EquityToDebt   *float64      `json:"equity_to_debt,omitempty"`
	DividendYield  *float64      `json:"dividend_yield,omitempty"`
}

type ComparisonResult struct {
	Comparison map[string]ComparisonEntry `json:"comparison"`
	Winners    map[string]string          `json:"winners"`
	Summary    string                     `json:"summary"`
}

// Compare analyzes up to the configured symbol cap side by side and names a
// winner per category. Symbols that fail analysis are dropped; the engine
// errors only when none survive.
func (e *CompareEngine) Compare(ctx context.Context, symbols []string) (*ComparisonResult, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols to compare")
	}
	if len(symbols) > e.cfg.CompareLimit {
		symbols = symbols[:e.cfg.CompareLimit]
	}

	listings := make([]domain.Listing, len(symbols))
	for i, s := range symbols {
		listings[i] = domain.Listing{Symbol: strings.ToUpper(strings.TrimSpace(s))}
	}

	results := analyzeBatch(ctx, e.analyzer, listings, e.cfg.Concurrency, e.log)
	if len(results) == 0 {
		return nil, fmt.Errorf("compare %v: %w", symbols, ErrEmptyBatch)
	}

	comparison := map[string]ComparisonEntry{}
	for _, res := range results {
		comparison[res.bundle.Symbol] = entryFromBundle(res.bundle)
	}

	winners := determineWinners(comparison)
	return &ComparisonResult{
		Comparison: comparison,
		Winners:    winners,
		Summary:    comparisonSummary(winners, comparison),
	}, nil
}

func entryFromBundle(b *domain.AnalysisBundle) ComparisonEntry {
	entry := ComparisonEntry{
		Price:          b.Price,
		CompositeScore: b.Recommendation.CompositeScore,
		Action:         b.Recommendation.Action,
		StabilityScore: b.Scores.Stability.Total,
		StabilityLabel: b.Scores.Stability.Label,
		TimingScore:    b.Scores.Timing.Total,
		TimingSignal:   b.Scores.Timing.Label,
		RiskScore:      b.Scores.Risk.Total,
		RiskLevel:      b.Scores.Risk.Label,
		Valuation:      "FAIR",
		HealthScore:    50,
		MarketCap:      b.Ratios.MarketCap,
		PERatio:        b.Ratios.PERatio,
		ROE:            b.Ratios.ROE,
		DebtToEquity:   b.Ratios.DebtToEquity,
		DividendYield:  b.Ratios.DividendYield,
	}
	if b.Fundamental != nil {
		entry.Valuation = b.Fundamental.Valuation.Level
		entry.HealthScore = b.Fundamental.HealthScore
	}
	if de := b.Ratios.DebtToEquity; de != nil && *de > 0 {
		entry.EquityToDebt = domain.Float64Ptr(1 / *de)
	}
	return entry
}

func determineWinners(data map[string]ComparisonEntry) map[string]string {
	winners := map[string]string{}

	winners["best_overall"] = maxBy(data, func(e ComparisonEntry) float64 { return float64(e.CompositeScore) })
	winners["most_stable"] = maxBy(data, func(e ComparisonEntry) float64 { return float64(e.StabilityScore) })
	winners["lowest_risk"] = maxBy(data, func(e ComparisonEntry) float64 { return -float64(e.RiskScore) })

	// best value prefers an undervalued name, health score breaks ties
	undervalued := map[string]ComparisonEntry{}
	for sym, e := range data {
		if e.Valuation == "UNDERVALUED" {
			undervalued[sym] = e
		}
	}
	if len(undervalued) > 0 {
		winners["best_value"] = maxBy(undervalued, func(e ComparisonEntry) float64 { return float64(e.HealthScore) })
	} else {
		winners["best_value"] = maxBy(data, func(e ComparisonEntry) float64 { return float64(e.HealthScore) })
	}

	leveraged := map[string]ComparisonEntry{}
	for sym, e := range data {
		if e.EquityToDebt != nil {
			leveraged[sym] = e
		}
	}
	if len(leveraged) > 0 {
		winners["best_equity_to_debt"] = maxBy(leveraged, func(e ComparisonEntry) float64 { return *e.EquityToDebt })
	}

	return winners
}

// maxBy returns the key with the highest score; ties break lexicographically
// so the result is deterministic over map iteration.
func maxBy(data map[string]ComparisonEntry, score func(ComparisonEntry) float64) string {
	best := ""
	bestScore := 0.0
	for sym, e := range data {
		s := score(e)
		if best == "" || s > bestScore || (s == bestScore && sym < best) {
			best = sym
			bestScore = s
		}
	}
	return best
}

func comparisonSummary(winners map[string]string, data map[string]ComparisonEntry) string {
	best := winners["best_overall"]
	if best == "" {
		return "Unable to generate summary."
	}
	bestEntry := data[best]

	parts := []string{fmt.Sprintf(
		"%s is the top pick with a %s rating and composite score of %d/100. It's currently %s with %s risk.",
		best, bestEntry.Action, bestEntry.CompositeScore,
		strings.ToLower(bestEntry.Valuation), strings.ToLower(bestEntry.RiskLevel),
	)}

	if stable := winners["most_stable"]; stable != "" && stable != best {
		parts = append(parts, fmt.Sprintf(
			"%s offers the highest stability (score: %d), making it ideal for conservative investors.",
			stable, data[stable].StabilityScore,
		))
	}
	if value := winners["best_value"]; value != "" && data[value].Valuation == "UNDERVALUED" {
		parts = append(parts, fmt.Sprintf("%s presents the best value opportunity, currently undervalued.", value))
	}
	if lowRisk := winners["lowest_risk"]; lowRisk != "" && lowRisk != best {
		parts = append(parts, fmt.Sprintf("%s has the lowest risk profile (risk score: %d).", lowRisk, data[lowRisk].RiskScore))
	}

	return strings.Join(parts, " ")
}
