package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stocksense/internal/config"
	"stocksense/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UniverseSource lists the candidate equity universe for general screening.
type UniverseSource interface {
	Listings(ctx context.Context) ([]domain.Listing, error)
}

type RiskProfile string

const (
	ProfileConservative RiskProfile = "conservative"
	ProfileBalanced     RiskProfile = "balanced"
	ProfileAggressive   RiskProfile = "aggressive"
)

type Horizon string

const (
	HorizonShort  Horizon = "short"
	HorizonMedium Horizon = "medium"
	HorizonLong   Horizon = "long"
)

type GeneralRequest struct {
	Budget      decimal.Decimal
	RiskProfile RiskProfile
	Horizon     Horizon
	Limit       int
	Preferences []string
}

type GeneralRecommendations struct {
	Recommendations []domain.RankedPick      `json:"recommendations"`
	TotalBudget     decimal.Decimal          `json:"total_budget"`
	AllocatedAmount decimal.Decimal          `json:"allocated_amount"`
	Summary         PortfolioSummary         `json:"portfolio_summary"`
	RiskProfile     RiskProfile              `json:"risk_profile"`
	Horizon         Horizon                  `json:"horizon"`
	Diversification DiversificationBreakdown `json:"diversification"`
}

type PortfolioSummary struct {
	AverageScore       float64        `json:"average_score"`
	RiskDistribution   map[string]int `json:"risk_distribution"`
	Strategy           string         `json:"strategy"`
	ExpectedVolatility string         `json:"expected_volatility"`
	RebalanceFrequency string         `json:"rebalance_frequency"`
}

type DiversificationBreakdown struct {
	Sectors              map[string]int `json:"sectors"`
	TotalSectors         int            `json:"total_sectors"`
	DiversificationScore float64        `json:"diversification_score"`
}

type GeneralRanker struct {
	analyzer Analyzer
	universe UniverseSource
	cfg      config.RankerConfig
	log      *zap.SugaredLogger
}

func NewGeneralRanker(analyzer Analyzer, universe UniverseSource, cfg config.RankerConfig, log *zap.SugaredLogger) *GeneralRanker {
	return &GeneralRanker{analyzer: analyzer, universe: universe, cfg: cfg, log: log}
}

// Recommend screens the equity universe for a budget and risk profile:
// affordability filter, concurrent analysis, profile-weighted scoring, the
// per-sector diversification cap, then allocation math over the final picks.
func (r *GeneralRanker) Recommend(ctx context.Context, req GeneralRequest) (*GeneralRecommendations, error) {
	if req.Limit <= 0 {
		req.Limit = r.cfg.DefaultPicks
	}
	if req.Budget.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("budget must be positive, got %s", req.Budget)
	}

	listings, err := r.universe.Listings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load equity universe: %w", err)
	}
	listings = universeForProfile(listings, req.RiskProfile)
	if len(listings) == 0 {
		return nil, fmt.Errorf("equity universe is empty")
	}

	affordable := r.filterAffordable(ctx, listings, req.Budget)
	if len(affordable) == 0 {
		return nil, fmt.Errorf("no stocks available within budget %s", req.Budget)
	}
	if len(affordable) > r.cfg.GeneralChecks {
		affordable = affordable[:r.cfg.GeneralChecks]
	}
	r.log.Infow("screening universe", "affordable", len(affordable), "profile", req.RiskProfile)

	results := analyzeBatch(ctx, r.analyzer, affordable, r.cfg.Concurrency, r.log)
	if len(results) == 0 {
		return nil, ErrEmptyBatch
	}

	picks := make([]domain.RankedPick, 0, len(results))
	for _, res := range results {
		score := r.profileScore(res.listing, res.bundle, req)
		picks = append(picks, pickFromBundle(res.listing, res.bundle, score))
	}
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].CompositeScore > picks[j].CompositeScore
	})

	final := diversify(picks, r.cfg.MaxPerSector, req.Limit)
	final = allocate(final, req.Budget, req.RiskProfile)

	allocated := decimal.Zero
	for _, p := range final {
		allocated = allocated.Add(p.AllocationAmount)
	}

	return &GeneralRecommendations{
		Recommendations: final,
		TotalBudget:     req.Budget,
		AllocatedAmount: allocated,
		Summary:         portfolioSummary(final, req.RiskProfile, req.Horizon),
		RiskProfile:     req.RiskProfile,
		Horizon:         req.Horizon,
		Diversification: diversificationBreakdown(final),
	}, nil
}

// universeForProfile caps the candidate count per profile: conservative
// stays within the large-cap head of the list, aggressive reaches further
// down into mid caps.
func universeForProfile(listings []domain.Listing, profile RiskProfile) []domain.Listing {
	size := 150
	switch profile {
	case ProfileConservative:
		size = 100
	case ProfileAggressive:
		size = 200
	}
	if len(listings) > size {
		return listings[:size]
	}
	return listings
}

// filterAffordable keeps symbols where one share costs at most 20% of the
// budget, so every pick can hold a meaningful position. Price checks run
// through the cheap aggregated snapshot, bounded by the usual concurrency
// cap.
func (r *GeneralRanker) filterAffordable(ctx context.Context, listings []domain.Listing, budget decimal.Decimal) []domain.Listing {
	maxPrice, _ := budget.Mul(decimal.NewFromFloat(0.2)).Float64()

	checkLimit := 2 * r.cfg.GeneralChecks
	if len(listings) > checkLimit {
		listings = listings[:checkLimit]
	}

	concurrency := r.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	inputCh := make(chan int, len(listings))
	keep := make([]bool, len(listings))

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range inputCh {
				details, err := r.analyzer.GetAggregatedDetails(ctx, listings[i].Symbol)
				if err != nil {
					continue
				}
				price := details.MarketData.Price
				keep[i] = price > 0 && price <= maxPrice
			}
		}()
	}
	for i := range listings {
		inputCh <- i
	}
	close(inputCh)
	wg.Wait()

	affordable := []domain.Listing{}
	for i, ok := range keep {
		if ok {
			affordable = append(affordable, listings[i])
		}
	}
	return affordable
}

func (r *GeneralRanker) profileScore(listing domain.Listing, bundle *domain.AnalysisBundle, req GeneralRequest) float64 {
	stability := float64(bundle.Scores.Stability.Total)
	timing := float64(bundle.Scores.Timing.Total)
	inverseRisk := float64(100 - bundle.Scores.Risk.Total)

	health := 50.0
	growthLevel := "LOW"
	if bundle.Fundamental != nil {
		health = float64(bundle.Fundamental.HealthScore)
		growthLevel = bundle.Fundamental.GrowthPotential.Level
	}

	var composite float64
	switch req.RiskProfile {
	case ProfileConservative:
		composite = stability*0.5 + inverseRisk*0.3 + health*0.2
	case ProfileAggressive:
		growth := map[string]float64{"HIGH": 80, "MODERATE": 60, "LOW": 40, "DECLINING": 20}[growthLevel]
		composite = growth*0.4 + timing*0.3 + stability*0.2 + health*0.1
	default:
		composite = stability*0.3 + timing*0.25 + inverseRisk*0.25 + health*0.2
	}

	for _, pref := range req.Preferences {
		if pref != "" && strings.Contains(strings.ToUpper(listing.Industry), strings.ToUpper(pref)) {
			composite += 10
			break
		}
	}

	if composite > 100 {
		composite = 100
	}
	return composite
}

// allocate distributes the budget over the final picks: conservative splits
// equally, aggressive puts 80% into the top 3, everything else weights by
// composite score. Share counts are floored at the pick's price.
func allocate(picks []domain.RankedPick, budget decimal.Decimal, profile RiskProfile) []domain.RankedPick {
	if len(picks) == 0 {
		return picks
	}
	n := decimal.NewFromInt(int64(len(picks)))
	hundred := decimal.NewFromInt(100)

	switch profile {
	case ProfileConservative:
		per := budget.Div(n)
		for i := range picks {
			setAllocation(&picks[i], per, budget, hundred)
		}

	case ProfileAggressive:
		topShare := budget.Mul(decimal.NewFromFloat(0.8)).Div(decimal.NewFromInt(3))
		restCount := len(picks) - 3
		if restCount < 1 {
			restCount = 1
		}
		restShare := budget.Mul(decimal.NewFromFloat(0.2)).Div(decimal.NewFromInt(int64(restCount)))
		for i := range picks {
			if i < 3 {
				setAllocation(&picks[i], topShare, budget, hundred)
			} else {
				setAllocation(&picks[i], restShare, budget, hundred)
			}
		}

	default:
		totalScore := 0.0
		for _, p := range picks {
			totalScore += p.CompositeScore
		}
		for i := range picks {
			var amount decimal.Decimal
			if totalScore > 0 {
				amount = budget.Mul(decimal.NewFromFloat(picks[i].CompositeScore / totalScore))
			} else {
				amount = budget.Div(n)
			}
			setAllocation(&picks[i], amount, budget, hundred)
		}
	}
	return picks
}

func setAllocation(p *domain.RankedPick, amount, budget, hundred decimal.Decimal) {
	p.AllocationAmount = amount.Round(2)
	pctValue, _ := amount.Div(budget).Mul(hundred).Round(1).Float64()
	p.AllocationPercent = pctValue
	if p.Price > 0 {
		p.SuggestedShares = amount.Div(decimal.NewFromFloat(p.Price)).IntPart()
	}
}

func portfolioSummary(picks []domain.RankedPick, profile RiskProfile, horizon Horizon) PortfolioSummary {
	total := 0.0
	riskDist := map[string]int{}
	for _, p := range picks {
		total += p.CompositeScore
		riskDist[p.RiskLevel]++
	}
	avg := 0.0
	if len(picks) > 0 {
		avg = total / float64(len(picks))
	}

	return PortfolioSummary{
		AverageScore:       avg,
		RiskDistribution:   riskDist,
		Strategy:           strategyDescription(profile, horizon),
		ExpectedVolatility: expectedVolatility(profile),
		RebalanceFrequency: rebalanceFrequency(horizon),
	}
}

func diversificationBreakdown(picks []domain.RankedPick) DiversificationBreakdown {
	sectors := map[string]int{}
	for _, p := range picks {
		sectors[p.Sector]++
	}

	score := 0.0
	if len(picks) > 0 {
		score = float64(len(sectors)) / float64(len(picks)) * 100
		if score > 100 {
			score = 100
		}
	}
	return DiversificationBreakdown{
		Sectors:              sectors,
		TotalSectors:         len(sectors),
		DiversificationScore: score,
	}
}

func strategyDescription(profile RiskProfile, horizon Horizon) string {
	strategies := map[RiskProfile]map[Horizon]string{
		ProfileConservative: {
			HorizonShort:  "Stable blue-chips for capital preservation",
			HorizonMedium: "Large-cap quality stocks with steady dividends",
			HorizonLong:   "Market leaders with proven track records",
		},
		ProfileBalanced: {
			HorizonShort:  "Mix of stability and growth opportunities",
			HorizonMedium: "Diversified portfolio across sectors",
			HorizonLong:   "Growth stocks with solid fundamentals",
		},
		ProfileAggressive: {
			HorizonShort:  "High-momentum stocks for quick gains",
			HorizonMedium: "Growth stocks with strong potential",
			HorizonLong:   "Emerging leaders and high-growth companies",
		},
	}
	if s, ok := strategies[profile][horizon]; ok {
		return s
	}
	return "Diversified investment portfolio"
}

func expectedVolatility(profile RiskProfile) string {
	switch profile {
	case ProfileConservative:
		return "LOW (5-10% annual fluctuation)"
	case ProfileAggressive:
		return "HIGH (20-35% annual fluctuation)"
	default:
		return "MODERATE (10-20% annual fluctuation)"
	}
}

func rebalanceFrequency(horizon Horizon) string {
	switch horizon {
	case HorizonShort:
		return "Monthly"
	case HorizonLong:
		return "Half-yearly"
	default:
		return "Quarterly"
	}
}
