// Package recommend composes per-symbol scores into an action label and runs
// the batch rankers: sector picks, general recommendations, and side-by-side
// comparison. Rankers fan the analysis pipeline out over many symbols under
// a fixed concurrency cap and tolerate per-symbol failure.
package recommend

import (
	"context"
	"errors"
	"sync"

	"stocksense/internal/domain"

	"go.uber.org/zap"
)

// ErrEmptyBatch is returned when a ranker could not analyze a single symbol
// in its batch. Individual failures are skipped; only a fully empty batch is
// an error.
var ErrEmptyBatch = errors.New("no symbols could be analyzed")

// Analyzer runs the full per-symbol pipeline. Implemented by the market data
// service; rankers only need these two calls.
type Analyzer interface {
	GetComprehensiveAnalysis(ctx context.Context, symbol string) (*domain.AnalysisBundle, error)
	GetAggregatedDetails(ctx context.Context, symbol string) (*domain.AggregatedDetails, error)
}

// Criteria selects how a ranker reweights the four score inputs.
type Criteria string

const (
	CriteriaBalanced  Criteria = "balanced"
	CriteriaStability Criteria = "stability"
	CriteriaGrowth    Criteria = "growth"
	CriteriaValue     Criteria = "value"
)

type batchResult struct {
	listing domain.Listing
	bundle  *domain.AnalysisBundle
	err     error
}

// analyzeBatch runs the full analysis for every listing with at most
// concurrency in flight. Results come back unordered; failed symbols carry
// their error and are filtered by the caller.
func analyzeBatch(ctx context.Context, analyzer Analyzer, listings []domain.Listing, concurrency int, log *zap.SugaredLogger) []batchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	inputCh := make(chan domain.Listing, len(listings))
	resultCh := make(chan batchResult, len(listings))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for listing := range inputCh {
				select {
				case <-ctx.Done():
					resultCh <- batchResult{listing: listing, err: ctx.Err()}
					continue
				default:
				}
				bundle, err := analyzer.GetComprehensiveAnalysis(ctx, listing.Symbol)
				resultCh <- batchResult{listing: listing, bundle: bundle, err: err}
			}
		}()
	}

	for _, l := range listings {
		inputCh <- l
	}
	close(inputCh)
	wg.Wait()
	close(resultCh)

	results := make([]batchResult, 0, len(listings))
	for r := range resultCh {
		if r.err != nil {
			log.Warnw("symbol analysis failed", "symbol", r.listing.Symbol, "error", r.err)
			continue
		}
		results = append(results, r)
	}
	return results
}

// criteriaScore reweights the four score inputs per criteria, with additive
// bonuses for growth and valuation labels.
func criteriaScore(bundle *domain.AnalysisBundle, criteria Criteria) float64 {
	stability := float64(bundle.Scores.Stability.Total)
	timing := float64(bundle.Scores.Timing.Total)
	inverseRisk := float64(100 - bundle.Scores.Risk.Total)

	health := 50.0
	growthLevel := "LOW"
	valuationLevel := "FAIR"
	if bundle.Fundamental != nil {
		health = float64(bundle.Fundamental.HealthScore)
		growthLevel = bundle.Fundamental.GrowthPotential.Level
		valuationLevel = bundle.Fundamental.Valuation.Level
	}

	switch criteria {
	case CriteriaStability:
		return stability*0.6 + inverseRisk*0.3 + health*0.1

	case CriteriaGrowth:
		bonus := map[string]float64{"HIGH": 30, "MODERATE": 15, "LOW": 0, "DECLINING": -20}[growthLevel]
		return timing*0.5 + stability*0.3 + inverseRisk*0.2 + bonus

	case CriteriaValue:
		bonus := map[string]float64{"UNDERVALUED": 25, "FAIR": 10, "OVERVALUED": -15}[valuationLevel]
		return health*0.4 + stability*0.3 + inverseRisk*0.3 + bonus

	default:
		return stability*0.4 + timing*0.3 + inverseRisk*0.3
	}
}

// pickFromBundle flattens a bundle into a ranked pick. Sector is the
// diversification key: the listing's industry when known.
func pickFromBundle(listing domain.Listing, bundle *domain.AnalysisBundle, composite float64) domain.RankedPick {
	sector := listing.Industry
	if sector == "" {
		sector = "GENERAL"
	}

	health := "FAIR"
	if bundle.Fundamental != nil {
		health = bundle.Fundamental.Valuation.Level
	}

	name := listing.Name
	if name == "" {
		name = listing.Symbol
	}

	return domain.RankedPick{
		Symbol:            bundle.Symbol,
		Name:              name,
		Sector:            sector,
		Price:             bundle.Price,
		CompositeScore:    composite,
		StabilityScore:    bundle.Scores.Stability.Total,
		TimingSignal:      bundle.Scores.Timing.Label,
		RiskLevel:         bundle.Scores.Risk.Label,
		Action:            bundle.Recommendation.Action,
		Confidence:        bundle.Recommendation.Confidence,
		Reasoning:         bundle.Recommendation.Reasoning,
		Highlights:        highlights(bundle),
		FundamentalHealth: health,
		NewsSentiment:     bundle.News.Sentiment,
	}
}

func highlights(bundle *domain.AnalysisBundle) []string {
	out := []string{}

	if bundle.Scores.Stability.Total >= 75 {
		out = append(out, "High stability")
	}
	if bundle.Scores.Timing.Label == "BUY" {
		out = append(out, "Strong buy signal")
	}
	if bundle.Scores.Risk.Label == "LOW" {
		out = append(out, "Low risk profile")
	}
	if bundle.Fundamental != nil {
		if bundle.Fundamental.Valuation.Level == "UNDERVALUED" {
			out = append(out, "Currently undervalued")
		}
		if bundle.Fundamental.GrowthPotential.Level == "HIGH" {
			out = append(out, "High growth potential")
		}
	}
	if bundle.News.Sentiment == "POSITIVE" {
		out = append(out, "Positive news sentiment")
	}

	if len(out) > 4 {
		out = out[:4]
	}
	return out
}

// diversify walks picks in descending score order, taking at most
// maxPerSector from any one sector until limit is filled. If the cap leaves
// the list short, remaining slots are filled from the skipped candidates in
// score order.
func diversify(sorted []domain.RankedPick, maxPerSector, limit int) []domain.RankedPick {
	out := make([]domain.RankedPick, 0, limit)
	counts := map[string]int{}
	skipped := []domain.RankedPick{}

	for _, p := range sorted {
		if len(out) >= limit {
			break
		}
		if counts[p.Sector] >= maxPerSector {
			skipped = append(skipped, p)
			continue
		}
		out = append(out, p)
		counts[p.Sector]++
	}

	for _, p := range skipped {
		if len(out) >= limit {
			break
		}
		out = append(out, p)
	}
	return out
}
